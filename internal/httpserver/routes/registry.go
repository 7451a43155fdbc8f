package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/spellshare/internal/httpserver/deps"
	"github.com/MrSnakeDoc/spellshare/internal/httpserver/mw"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	reg Registrar
	mws []Middleware
}

var (
	registry    []entry
	apiRegistry []entry
)

// Register a root-level registrar with optional per-route middlewares.
func Register(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{reg: reg, mws: mws})
}

// RegisterAPI registers a registrar mounted under /api, behind CORS, rate
// limiting and caller identity.
func RegisterAPI(reg Registrar, mws ...Middleware) {
	apiRegistry = append(apiRegistry, entry{reg: reg, mws: mws})
}

// Called once from server.New()
func RegisterAll(r chi.Router, d deps.Deps) {
	apply(r, registry, d)

	r.Route("/api", func(api chi.Router) {
		api.Use(mw.CORS(d.CORSOrigins))
		if d.RateLimitPerMinute > 0 {
			api.Use(mw.RateLimit(mw.RateLimitConfig{
				Burst:             d.RateLimitBurst,
				RefillPerIPPerMin: d.RateLimitPerMinute,
				MaxEntries:        10000,
				TrustProxy:        d.TrustProxy,
			}))
		}
		api.Use(mw.Owner)
		apply(api, apiRegistry, d)
	})
}

func apply(r chi.Router, entries []entry, d deps.Deps) {
	for _, e := range entries {
		if len(e.mws) == 0 {
			e.reg(r, d)
			continue
		}
		sub := r.With(e.mws...) // apply per-route middlewares
		e.reg(sub, d)
	}
}
