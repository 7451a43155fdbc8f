package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/spellshare/internal/dictionary"
	"github.com/MrSnakeDoc/spellshare/internal/domain"
	"github.com/MrSnakeDoc/spellshare/internal/logger"
	redisstore "github.com/MrSnakeDoc/spellshare/internal/store/redis"
)

func writeManifest(t *testing.T, words string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "en.dic"), []byte(words), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	manifest := filepath.Join(dir, "dictionaries.yaml")
	content := "languages:\n  en:\n    name: English\n    words: en.dic\n"
	if err := os.WriteFile(manifest, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return manifest
}

func TestDictionaryReloader_Reload(t *testing.T) {
	manifest := writeManifest(t, "hello\nworld\n")
	registry := dictionary.NewRegistry()
	dr := NewDictionaryReloader(manifest, registry, logger.NewNop(), time.Hour, make(chan struct{}))

	if err := dr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	ok, err := registry.IsCorrect("hello", domain.LanguageEnglish)
	if err != nil || !ok {
		t.Errorf("expected hello to be known after reload, got ok=%v err=%v", ok, err)
	}

	// A broken manifest keeps the previous dictionaries.
	if err := os.WriteFile(manifest, []byte("languages: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := dr.Reload(context.Background()); err == nil {
		t.Error("expected reload of a broken manifest to fail")
	}
	if registry.Len() != 1 {
		t.Errorf("expected previous dictionaries to stay loaded, got %d", registry.Len())
	}
}

func TestDictionaryReloader_StartFailsWithoutManifest(t *testing.T) {
	registry := dictionary.NewRegistry()
	dr := NewDictionaryReloader(filepath.Join(t.TempDir(), "missing.yaml"), registry, logger.NewNop(), time.Hour, make(chan struct{}))

	if err := dr.Start(context.Background()); err == nil {
		t.Fatal("expected Start to fail when the manifest is missing")
	}
}

func TestDictionaryReloader_ManualTrigger(t *testing.T) {
	manifest := writeManifest(t, "hello\n")
	registry := dictionary.NewRegistry()
	trigger := make(chan struct{}, 1)
	dr := NewDictionaryReloader(manifest, registry, logger.NewNop(), time.Hour, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := dr.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer dr.Stop()

	if err := os.WriteFile(filepath.Join(filepath.Dir(manifest), "en.dic"), []byte("hello\nspelling\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	trigger <- struct{}{}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ok, _ := registry.IsCorrect("spelling", domain.LanguageEnglish); ok {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("manual trigger did not reload the dictionaries")
}

func TestShareJanitor_Prune(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()
	store := redisstore.NewStore(client)
	ctx := context.Background()

	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	expirations := map[string]time.Duration{
		"long-gone":  -72 * time.Hour,
		"just-gone":  -time.Hour,
		"still-live": 3 * time.Hour,
	}
	for id, d := range expirations {
		rec := &domain.CheckResult{ID: id, OriginalText: id, CorrectedMarkup: []string{}, Language: domain.LanguageEnglish, CreatedAt: now.Add(-96 * time.Hour)}
		if err := store.Save(ctx, rec); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		expireAt := now.Add(d)
		if _, err := store.Share(ctx, id, func(r *domain.CheckResult) error { return r.Share(expireAt) }); err != nil {
			t.Fatalf("Share failed: %v", err)
		}
	}

	j := NewShareJanitor(store, logger.NewNop(), time.Hour, 24*time.Hour)
	j.now = func() time.Time { return now }

	removed, err := j.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 entry pruned, got %d", removed)
	}

	members, err := mr.ZMembers(redisstore.KeyExpiringChecks)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 2 {
		t.Errorf("expected 2 entries left in the expiring index, got %v", members)
	}

	// Pruned records stay readable.
	if _, err := store.Get(ctx, "long-gone"); err != nil {
		t.Errorf("pruned record should still exist: %v", err)
	}
}

type failingPruner struct{}

func (failingPruner) PruneExpiredIndex(context.Context, time.Time) (int64, error) {
	return 0, errors.New("redis down")
}

func TestShareJanitor_PruneError(t *testing.T) {
	j := NewShareJanitor(failingPruner{}, logger.NewNop(), time.Hour, 0)
	if j.grace != DefaultJanitorGrace {
		t.Errorf("expected default grace, got %v", j.grace)
	}
	if _, err := j.Prune(context.Background()); err == nil {
		t.Error("expected prune error to be returned")
	}
	// Start swallows the initial failure and keeps running.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := j.Start(ctx); err != nil {
		t.Errorf("Start should not fail on prune errors: %v", err)
	}
	j.Stop()
}
