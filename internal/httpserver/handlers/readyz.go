package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/spellshare/internal/httpserver/deps"
)

const probeTimeout = 2 * time.Second

type readyzResponse struct {
	Ready        bool `json:"ready"`
	Store        bool `json:"store"`
	Dictionaries int  `json:"dictionaries"`
}

// Readyz reports ready once the store answers and at least one dictionary
// is loaded.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeOK := pingStore(r.Context(), d) == nil
		dicts := d.Dictionaries.Len()

		resp := readyzResponse{
			Ready:        storeOK && dicts > 0,
			Store:        storeOK,
			Dictionaries: dicts,
		}

		status := http.StatusOK
		if !resp.Ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}

func pingStore(ctx context.Context, d deps.Deps) error {
	if d.Store == nil {
		return errStoreNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	return d.Store.Ping(ctx)
}
