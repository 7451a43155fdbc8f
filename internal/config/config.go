package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	PublicURL       string        // base URL used to build share links (ex: https://spell.domain.ext)
	DictionaryFile  string        // path to the dictionaries manifest (yaml)
	ReloadInterval  time.Duration // interval to reload dictionaries (default: 24h)
	JanitorInterval time.Duration // interval to prune the expiring index (default: 1h)
	JanitorGrace    time.Duration // how long expired entries stay indexed (default: 24h)
	MaxTextLength   int           // max characters per check (default: 10000)

	RateLimitPerMinute int      // requests per minute per client on /api (0 = disabled)
	RateLimitBurst     int      // burst size per client
	CORSOrigins        []string // allowed CORS origins (default: *)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict admin endpoints to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	loadDotEnv(getenv("SPELLSHARE_ENV_FILE", ".env"))

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SPELLSHARE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SPELLSHARE_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SPELLSHARE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SPELLSHARE_PRETTY_LOG", true),

		// Checks and sharing
		PublicURL:       strings.TrimRight(getenv("SPELLSHARE_PUBLIC_URL", "http://localhost:8080"), "/"),
		DictionaryFile:  getenv("SPELLSHARE_DICTIONARY_FILE", "/app/dictionaries.yaml"),
		ReloadInterval:  mustDuration("SPELLSHARE_RELOAD_INTERVAL", 24*time.Hour),
		JanitorInterval: mustDuration("SPELLSHARE_JANITOR_INTERVAL", time.Hour),
		JanitorGrace:    mustDuration("SPELLSHARE_JANITOR_GRACE", 24*time.Hour),
		MaxTextLength:   getenvInt("SPELLSHARE_MAX_TEXT_LENGTH", 10000),

		// HTTP surface
		RateLimitPerMinute: getenvInt("SPELLSHARE_RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:     getenvInt("SPELLSHARE_RATE_LIMIT_BURST", 20),
		CORSOrigins:        splitAndTrim(getenv("SPELLSHARE_CORS_ORIGINS", "*")),

		// Redis settings
		RedisAddr:             requireEnv("SPELLSHARE_REDIS_ADDR"),
		RedisUser:             getenv("SPELLSHARE_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("SPELLSHARE_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("SPELLSHARE_REDIS_PASSWORD", ""),
		RedisDB:               requireEnvInt("SPELLSHARE_REDIS_DB"),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("SPELLSHARE_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("SPELLSHARE_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("SPELLSHARE_TRUST_PROXY", true),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: SPELLSHARE_REDIS_PASSWORD is required when SPELLSHARE_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cfgCopy := *c
	cfgCopy.RedisPassword = "***REDACTED***"
	if c.RedisUser != "" {
		cfgCopy.RedisUser = "***REDACTED***"
	}
	return cfgCopy
}

// loadDotEnv loads variables from path without overriding the environment.
// A missing file is not an error.
func loadDotEnv(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[WARN] failed to load %s: %v\n", path, err)
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
