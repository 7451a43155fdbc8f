package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/spellshare/internal/checks"
	"github.com/MrSnakeDoc/spellshare/internal/dictionary"
	"github.com/MrSnakeDoc/spellshare/internal/logger"
)

// Pinger reports whether the record store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger             logger.Logger
	StartTime          time.Time
	Version            string
	Commit             string
	BuildDate          string
	GoVersion          string
	TimeNow            func() time.Time     // for testing, defaults to time.Now
	AllowedHosts       []string             // Host headers allowed to access admin endpoints
	AllowedCIDRS       []string             // IPs allowed to access readyz/infra/reload/metrics
	TrustProxy         bool                 // true if running behind a trusted reverse proxy (e.g., cloudflared)
	PublicURL          string               // base URL of share links, no trailing slash
	CORSOrigins        []string             // allowed CORS origins on /api
	RateLimitPerMinute int                  // per-client refill on /api, 0 disables limiting
	RateLimitBurst     int                  // per-client burst on /api
	Checks             *checks.Service      // check runs and record lifecycle
	Dictionaries       *dictionary.Registry // loaded dictionaries
	Store              Pinger               // record store health
	ReloadTrigger      chan struct{}        // Channel to trigger manual dictionary reload
}

// Now returns the deps clock, falling back to time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
