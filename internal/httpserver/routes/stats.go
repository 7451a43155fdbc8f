package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/spellshare/internal/httpserver/deps"
	"github.com/MrSnakeDoc/spellshare/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerStats) }

func registerStats(r chi.Router, d deps.Deps) {
	r.Get("/stats/expiring", handlers.ExpiringStats(d))
	r.Get("/languages", handlers.Languages(d))
}
