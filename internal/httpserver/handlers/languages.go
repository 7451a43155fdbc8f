package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/spellshare/internal/dictionary"
	"github.com/MrSnakeDoc/spellshare/internal/httpserver/deps"
)

type languagesResponse struct {
	Languages []dictionary.Info `json:"languages"`
}

// Languages lists the loaded dictionaries.
func Languages(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		langs := d.Dictionaries.Languages()
		if langs == nil {
			langs = []dictionary.Info{}
		}
		writeJSON(w, http.StatusOK, languagesResponse{Languages: langs})
	}
}
