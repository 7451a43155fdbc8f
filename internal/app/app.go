package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/spellshare/internal/checks"
	"github.com/MrSnakeDoc/spellshare/internal/config"
	"github.com/MrSnakeDoc/spellshare/internal/dictionary"
	"github.com/MrSnakeDoc/spellshare/internal/httpserver"
	"github.com/MrSnakeDoc/spellshare/internal/httpserver/deps"
	"github.com/MrSnakeDoc/spellshare/internal/logger"
	"github.com/MrSnakeDoc/spellshare/internal/redis"
	"github.com/MrSnakeDoc/spellshare/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/spellshare/internal/store/redis"
	"github.com/MrSnakeDoc/spellshare/internal/utils"
	"github.com/MrSnakeDoc/spellshare/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	reloader    *scheduler.DictionaryReloader
	janitor     *scheduler.ShareJanitor
}

func New(ctx context.Context) (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog).Named("spellshare")

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Info("connecting to redis", logger.String("addr", cfg.RedisAddr))
	redisClient, err := redis.New(ctx, redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	store := redisstore.NewStore(redisClient)
	registry := dictionary.NewRegistry()

	svc := checks.NewService(store, registry, loggerClient, checks.Options{
		MaxTextLength: cfg.MaxTextLength,
	})

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewDictionaryReloader(
		cfg.DictionaryFile,
		registry,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	janitor := scheduler.NewShareJanitor(
		store,
		loggerClient,
		cfg.JanitorInterval,
		cfg.JanitorGrace,
	)

	d := deps.Deps{
		Logger:             loggerClient,
		StartTime:          time.Now(),
		Version:            version.Version,
		Commit:             version.Commit,
		BuildDate:          version.BuildDate,
		GoVersion:          version.GoVersion,
		TimeNow:            time.Now,
		AllowedHosts:       cfg.AllowedHosts,
		AllowedCIDRS:       cfg.AllowedCIDRS,
		TrustProxy:         cfg.TrustProxy,
		PublicURL:          cfg.PublicURL,
		CORSOrigins:        cfg.CORSOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		RateLimitBurst:     cfg.RateLimitBurst,
		Checks:             svc,
		Dictionaries:       registry,
		Store:              store,
		ReloadTrigger:      reloadTrigger,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		reloader:    reloader,
		janitor:     janitor,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("starting", logger.String("build", version.String()), logger.String("listen", a.cfg.ListenPort))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer utils.CloseLogged(a.redisClient, "redis", a.logger)

	// Dictionaries must be loaded before the first check can run
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start dictionary reloader: %w", err)
	}
	defer a.reloader.Stop()
	a.logger.Info("dictionary reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	if err := a.janitor.Start(ctx); err != nil {
		return fmt.Errorf("failed to start share janitor: %w", err)
	}
	defer a.janitor.Stop()
	a.logger.Info("share janitor started",
		logger.Duration("interval", a.cfg.JanitorInterval),
		logger.Duration("grace", a.cfg.JanitorGrace))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("spellshare stopped cleanly")
	return nil
}

// Logger exposes the application logger so main can flush it.
func (a *App) Logger() logger.Logger { return a.logger }
