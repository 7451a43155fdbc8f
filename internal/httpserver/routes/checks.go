package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/spellshare/internal/httpserver/deps"
	"github.com/MrSnakeDoc/spellshare/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerChecks) }

func registerChecks(r chi.Router, d deps.Deps) {
	r.Post("/checks", handlers.CreateCheck(d))
	r.Get("/checks", handlers.ListChecks(d))
	r.Get("/checks/random", handlers.RandomCheck(d))
	r.Get("/checks/random-expiring", handlers.RandomExpiringCheck(d))
	r.Get("/checks/longest-error-free", handlers.LongestErrorFreeCheck(d))
	r.Get("/checks/{id}", handlers.GetCheck(d))
	r.Post("/checks/{id}/share", handlers.ShareCheck(d))
	r.Delete("/checks/{id}", handlers.DeleteCheck(d))
}
