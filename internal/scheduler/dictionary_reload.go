package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/spellshare/internal/dictionary"
	"github.com/MrSnakeDoc/spellshare/internal/logger"
	"github.com/MrSnakeDoc/spellshare/internal/metrics"
)

// DictionaryReloader periodically reloads the dictionaries manifest into the registry
type DictionaryReloader struct {
	loader        *dictionary.Loader
	registry      *dictionary.Registry
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewDictionaryReloader creates a new dictionary reloader
func NewDictionaryReloader(
	manifestFile string,
	registry *dictionary.Registry,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *DictionaryReloader {
	return &DictionaryReloader{
		loader:        dictionary.NewLoader(manifestFile),
		registry:      registry,
		logger:        log.With(logger.String("component", "dictionary_reloader")),
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the dictionaries once, then keeps reloading them on every tick
// or manual trigger. A failing initial load is returned: the service cannot
// check anything without dictionaries.
func (dr *DictionaryReloader) Start(ctx context.Context) error {
	if err := dr.Reload(ctx); err != nil {
		return fmt.Errorf("initial dictionary load failed: %w", err)
	}

	ticker := time.NewTicker(dr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := dr.Reload(ctx); err != nil {
					dr.logger.Error("failed to reload dictionaries", logger.Error(err))
				}
			case <-dr.manualTrigger:
				dr.logger.Info("manual reload triggered")
				if err := dr.Reload(ctx); err != nil {
					dr.logger.Error("failed to reload dictionaries", logger.Error(err))
				}
			case <-dr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (dr *DictionaryReloader) Stop() {
	close(dr.stopCh)
}

// Reload reads the manifest and swaps the registry content.
// On failure the previously loaded dictionaries stay in place.
func (dr *DictionaryReloader) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	dicts, err := dr.loader.LoadAll()
	if err != nil {
		metrics.DictionaryReloads.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to load %s: %w", dr.loader.Path(), err)
	}

	dr.registry.Replace(dicts)
	metrics.DictionaryReloads.WithLabelValues("success").Inc()

	codes := make([]string, 0, len(dicts))
	words := 0
	for _, info := range dr.registry.Languages() {
		codes = append(codes, string(info.Code))
		words += info.Words
	}

	dr.logger.Info("dictionaries loaded",
		logger.Strings("languages", codes),
		logger.Int("words", words),
		logger.Duration("took", time.Since(start)))

	return nil
}
