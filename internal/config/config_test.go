package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestRequireEnvInt(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		expected  int
		wantPanic bool
	}{
		{
			name:      "valid integer",
			key:       "TEST_INT",
			value:     "42",
			expected:  42,
			wantPanic: false,
		},
		{
			name:      "invalid integer",
			key:       "TEST_INT_INVALID",
			value:     "not_a_number",
			wantPanic: true,
		},
		{
			name:      "missing variable",
			key:       "TEST_INT_MISSING",
			value:     "",
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnvInt() should have panicked")
					}
				}()
			}

			result := requireEnvInt(tt.key)
			if !tt.wantPanic && result != tt.expected {
				t.Errorf("requireEnvInt() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{
			name:     "single value",
			value:    "value1",
			expected: []string{"value1"},
		},
		{
			name:     "multiple values",
			value:    "value1, value2 ,value3",
			expected: []string{"value1", "value2", "value3"},
		},
		{
			name:     "quoted values and blanks",
			value:    `"a", 'b', ,`,
			expected: []string{"a", "b"},
		},
		{
			name:     "empty",
			value:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.value)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndTrim() = %v, want %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("SPELLSHARE_ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	t.Setenv("SPELLSHARE_REDIS_ADDR", "localhost:6379")
	t.Setenv("SPELLSHARE_REDIS_DB", "2")
	t.Setenv("SPELLSHARE_REDIS_PASSWORD_REQUIRED", "false")
	t.Setenv("SPELLSHARE_PUBLIC_URL", "https://spell.example.com/")
	t.Setenv("SPELLSHARE_JANITOR_GRACE", "2h")
	t.Setenv("SPELLSHARE_CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := Load()

	if cfg.RedisAddr != "localhost:6379" || cfg.RedisDB != 2 {
		t.Errorf("redis settings = %s/%d", cfg.RedisAddr, cfg.RedisDB)
	}
	if cfg.PublicURL != "https://spell.example.com" {
		t.Errorf("PublicURL = %q, trailing slash should be trimmed", cfg.PublicURL)
	}
	if cfg.JanitorGrace != 2*time.Hour {
		t.Errorf("JanitorGrace = %v, want 2h", cfg.JanitorGrace)
	}
	if cfg.ReloadInterval != 24*time.Hour {
		t.Errorf("ReloadInterval = %v, want default 24h", cfg.ReloadInterval)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.AllowedHosts != nil {
		t.Errorf("AllowedHosts = %v, want nil", cfg.AllowedHosts)
	}
}

func TestLoadRequiresRedisPassword(t *testing.T) {
	t.Setenv("SPELLSHARE_ENV_FILE", "")
	t.Setenv("SPELLSHARE_REDIS_ADDR", "localhost:6379")
	t.Setenv("SPELLSHARE_REDIS_DB", "0")
	t.Setenv("SPELLSHARE_REDIS_PASSWORD_REQUIRED", "true")
	t.Setenv("SPELLSHARE_REDIS_PASSWORD", "")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should have panicked without a redis password")
		}
	}()
	Load()
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("SPELLSHARE_TEST_DOTENV=from-file\n"), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("SPELLSHARE_TEST_DOTENV", "")
	if err := os.Unsetenv("SPELLSHARE_TEST_DOTENV"); err != nil {
		t.Fatalf("failed to unset env var: %v", err)
	}

	loadDotEnv(path)
	if got := os.Getenv("SPELLSHARE_TEST_DOTENV"); got != "from-file" {
		t.Errorf("SPELLSHARE_TEST_DOTENV = %q, want from-file", got)
	}

	// Existing variables win over the file.
	t.Setenv("SPELLSHARE_TEST_DOTENV", "from-env")
	loadDotEnv(path)
	if got := os.Getenv("SPELLSHARE_TEST_DOTENV"); got != "from-env" {
		t.Errorf("SPELLSHARE_TEST_DOTENV = %q, want from-env", got)
	}
}

func TestRedacted(t *testing.T) {
	cfg := &Config{RedisUser: "admin", RedisPassword: "secret"}
	r := cfg.Redacted()
	if r.RedisPassword == "secret" || r.RedisUser == "admin" {
		t.Errorf("Redacted() leaked credentials: %+v", r)
	}
	if cfg.RedisPassword != "secret" {
		t.Errorf("Redacted() must not modify the original")
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{
			name:     "true value",
			key:      "TEST_BOOL",
			value:    "true",
			def:      false,
			expected: true,
		},
		{
			name:     "false value",
			key:      "TEST_BOOL_FALSE",
			value:    "false",
			def:      true,
			expected: false,
		},
		{
			name:     "invalid value uses default",
			key:      "TEST_BOOL_INVALID",
			value:    "invalid",
			def:      true,
			expected: true,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_BOOL_MISSING",
			value:    "",
			def:      false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}
