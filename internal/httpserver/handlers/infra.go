package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/spellshare/internal/dictionary"
	"github.com/MrSnakeDoc/spellshare/internal/httpserver/deps"
)

var errStoreNotConfigured = errors.New("store not configured")

type componentStatus struct {
	OK         bool              `json:"ok"`
	Languages  []dictionary.Info `json:"languages,omitempty"`
	LastReload string            `json:"last_reload,omitempty"`
	Impact     string            `json:"impact,omitempty"`
	Error      string            `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of every component the service depends on.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"dictionaries": dictionaryStatus(d.Dictionaries),
			"redis":        storeStatus(r, d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

// determineMode is "critical" without dictionaries (nothing can be checked),
// "degraded" without the store (checks are computed but not kept), and
// "operational" otherwise.
func determineMode(components map[string]componentStatus) string {
	if c, ok := components["dictionaries"]; ok && !c.OK {
		return "critical"
	}
	if c, ok := components["redis"]; ok && !c.OK {
		return "degraded"
	}
	return "operational"
}

func dictionaryStatus(reg *dictionary.Registry) componentStatus {
	lastReload := "never"
	if t := reg.LastReload(); !t.IsZero() {
		lastReload = t.UTC().Format(time.RFC3339)
	}

	langs := reg.Languages()
	if len(langs) == 0 {
		return componentStatus{
			OK:         false,
			LastReload: lastReload,
			Impact:     "checks-disabled",
			Error:      "no dictionary loaded",
		}
	}
	return componentStatus{OK: true, Languages: langs, LastReload: lastReload}
}

func storeStatus(r *http.Request, d deps.Deps) componentStatus {
	if err := pingStore(r.Context(), d); err != nil {
		return componentStatus{
			OK:     false,
			Impact: "records-unavailable",
			Error:  err.Error(),
		}
	}
	return componentStatus{OK: true}
}
