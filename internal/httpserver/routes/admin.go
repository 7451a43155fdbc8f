package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/spellshare/internal/httpserver/deps"
	"github.com/MrSnakeDoc/spellshare/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/spellshare/internal/httpserver/mw"
	"github.com/MrSnakeDoc/spellshare/internal/metrics"
)

func init() { Register(registerAdmin) }

// Operator endpoints, reachable only from the allowed CIDRs.
func registerAdmin(r chi.Router, d deps.Deps) {
	admin := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))

	admin.Get("/readyz", handlers.Readyz(d))
	admin.Get("/infra", handlers.Infra(d))
	admin.Handle("/metrics", metrics.Handler())
	admin.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Post("/reload", handlers.Reload(d))
}
