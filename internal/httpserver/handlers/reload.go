package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/spellshare/internal/httpserver/deps"
	"github.com/MrSnakeDoc/spellshare/internal/logger"
	"github.com/MrSnakeDoc/spellshare/internal/utils"
)

type reloadResponse struct {
	Triggered bool   `json:"triggered"`
	Message   string `json:"message"`
}

// Reload triggers a manual dictionary reload. A reload already queued
// answers 429.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := utils.ClientIP(r, d.TrustProxy)

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual dictionary reload triggered via endpoint",
				logger.String("client_ip", ip))
			writeJSON(w, http.StatusAccepted, reloadResponse{Triggered: true, Message: "reload triggered"})
		default:
			d.Logger.Warn("dictionary reload already pending",
				logger.String("client_ip", ip))
			writeJSON(w, http.StatusTooManyRequests, reloadResponse{Triggered: false, Message: "reload already pending, please wait"})
		}
	}
}
