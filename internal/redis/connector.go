// Package redis opens the Redis connection the record store runs on.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/spellshare/internal/logger"
)

// urgentWindow is how close to the deadline retries start logging at error level.
const urgentWindow = 10 * time.Second

// ConnectOptions defines the client settings and the startup retry policy.
type ConnectOptions struct {
	Addr           string        // Redis address (ex: "localhost:6379")
	User           string        // Optional username
	Password       string        // Optional password
	RedisDB        int           // Redis DB number
	DialTimeout    time.Duration // Redis dial timeout
	ReadTimeout    time.Duration // Redis read timeout
	WriteTimeout   time.Duration // Redis write timeout
	PoolSize       int           // Redis connection pool size
	ConnectTimeout time.Duration // Total time allowed for connection attempts (ex: 30s)
	RetryInterval  time.Duration // Initial wait between retries (ex: 2s, doubles each attempt)
	MaxWait        time.Duration // max wait between retries (ex: 10s)
	PingTimeout    time.Duration // timeout for each ping attempt (ex: 2s)
	WarnThreshold  int           // attempts logged at warn level before switching to error
}

func (o ConnectOptions) validate() error {
	switch {
	case o.ConnectTimeout <= 0:
		return fmt.Errorf("ConnectTimeout must be > 0, got %v", o.ConnectTimeout)
	case o.RetryInterval <= 0:
		return fmt.Errorf("RetryInterval must be > 0, got %v", o.RetryInterval)
	case o.MaxWait <= 0:
		return fmt.Errorf("MaxWait must be > 0, got %v", o.MaxWait)
	case o.PingTimeout <= 0:
		return fmt.Errorf("PingTimeout must be > 0, got %v", o.PingTimeout)
	case o.WarnThreshold < 0:
		return fmt.Errorf("WarnThreshold must be >= 0, got %d", o.WarnThreshold)
	}
	return nil
}

// backoff doubles the wait after every attempt, capped at max.
type backoff struct {
	wait time.Duration
	max  time.Duration
}

func (b *backoff) next() time.Duration {
	w := b.wait
	b.wait = min(b.wait*2, b.max)
	return w
}

// New creates a Redis client and blocks until it answers a ping.
// It keeps retrying with exponential backoff until ConnectTimeout is reached
// or ctx is cancelled. The client is closed when no connection could be
// established.
func New(ctx context.Context, opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	if err := opts.validate(); err != nil {
		log.Error("invalid redis options", logger.Error(err))
		return nil, fmt.Errorf("invalid redis options: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.User,
		Password:     opts.Password,
		DB:           opts.RedisDB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
	})

	c := connector{
		client: client,
		opts:   opts,
		log:    log.With(logger.String("component", "redis"), logger.String("addr", opts.Addr)),
	}
	if err := c.connect(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

type connector struct {
	client *redis.Client
	opts   ConnectOptions
	log    logger.Logger
}

func (c *connector) connect(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, c.opts.ConnectTimeout)
	defer cancel()

	c.log.Info("waiting for redis", logger.Duration("timeout", c.opts.ConnectTimeout))

	start := time.Now()
	b := backoff{wait: c.opts.RetryInterval, max: c.opts.MaxWait}

	for attempt := 1; ; attempt++ {
		err := c.ping(ctx)
		if err == nil {
			c.connected(attempt, time.Since(start))
			return nil
		}

		wait := b.next()
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			if parent.Err() != nil {
				return fmt.Errorf("redis connection to %s cancelled after %d attempts: %w", c.opts.Addr, attempt, parent.Err())
			}
			c.log.Error("redis unavailable, giving up",
				logger.Int("attempts", attempt),
				logger.Duration("timeout", c.opts.ConnectTimeout),
				logger.Error(err))
			return fmt.Errorf("redis unavailable at %s after %d attempts (timeout: %v): %w",
				c.opts.Addr, attempt, c.opts.ConnectTimeout, err)
		case <-timer.C:
			c.retrying(attempt, timeLeft(ctx), wait, err)
		}
	}
}

func (c *connector) ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, c.opts.PingTimeout)
	defer cancel()
	return c.client.Ping(pingCtx).Err()
}

func (c *connector) connected(attempts int, elapsed time.Duration) {
	if attempts == 1 {
		c.log.Info("connected to redis")
		return
	}
	c.log.Warn("connected to redis after retry",
		logger.Int("attempts", attempts),
		logger.Duration("elapsed", elapsed))
}

func (c *connector) retrying(attempt int, remaining, waited time.Duration, err error) {
	fields := []logger.Field{
		logger.Int("attempt", attempt),
		logger.Duration("remaining", remaining),
		logger.Duration("waited", waited),
		logger.Error(err),
	}
	if remaining > urgentWindow && attempt <= c.opts.WarnThreshold {
		c.log.Warn("redis connection failed, retrying", fields...)
		return
	}
	c.log.Error("redis still unavailable, retrying", fields...)
}

// timeLeft returns the remaining time before context deadline.
func timeLeft(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	return time.Until(deadline)
}
