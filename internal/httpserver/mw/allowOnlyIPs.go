package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/spellshare/internal/logger"
	"github.com/MrSnakeDoc/spellshare/internal/utils"
)

// AllowOnlyCIDRS allows only specific IPs/CIDRs on admin endpoints. If the
// list is empty, it does NOT filter (passthrough).
// trustProxy should be true when running behind a trusted reverse proxy/tunnel (e.g., cloudflared).
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		log.Debug("AllowOnlyCIDRS: empty matcher, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	log.Debug("AllowOnlyCIDRS: initialized",
		logger.Int("rules", len(allowed)),
		logger.Bool("trust_proxy", trustProxy))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !m.Allow(ip) {
				log.Warn("client IP rejected",
					logger.String("ip", ip),
					logger.String("path", r.URL.Path))
				writeStatus(w, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
