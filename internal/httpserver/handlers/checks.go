package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/spellshare/internal/checks"
	"github.com/MrSnakeDoc/spellshare/internal/domain"
	"github.com/MrSnakeDoc/spellshare/internal/httpserver/deps"
	"github.com/MrSnakeDoc/spellshare/internal/httpserver/mw"
	"github.com/MrSnakeDoc/spellshare/internal/logger"
)

type createCheckRequest struct {
	Text     string `json:"text" validate:"required"`
	Language string `json:"language" validate:"required"`
}

type shareCheckRequest struct {
	ExpiresIn string `json:"expires_in" validate:"required,oneof=1h 3d 7d 1m 3m"`
}

// persistFailedResponse carries a computed result whose save failed, so the
// client can keep it and retry.
type persistFailedResponse struct {
	Error string       `json:"error"`
	Check *checks.View `json:"check"`
}

type listChecksResponse struct {
	Checks []*domain.CheckResult `json:"checks"`
	Count  int                   `json:"count"`
}

type shareCheckResponse struct {
	Check    *domain.CheckResult `json:"check"`
	Link     string              `json:"link"`
	ExpireAt time.Time           `json:"expire"`
}

// CreateCheck runs a check for the caller and persists it.
func CreateCheck(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeJSON[createCheckRequest](r)
		if err != nil {
			writeError(w, d.Logger, r, err)
			return
		}

		rec, err := d.Checks.Check(r.Context(), checks.CheckInput{
			Text:     req.Text,
			Language: req.Language,
			Owner:    mw.OwnerFrom(r.Context()),
		})
		if err != nil {
			if rec != nil && errors.Is(err, domain.ErrPersistence) {
				d.Logger.Warn("check computed but not saved",
					logger.String("id", rec.ID),
					logger.Error(err))
				writeJSON(w, http.StatusBadGateway, persistFailedResponse{
					Error: http.StatusText(http.StatusBadGateway),
					Check: checks.ViewOf(rec, d.Now()),
				})
				return
			}
			writeError(w, d.Logger, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, checks.ViewOf(rec, d.Now()))
	}
}

// ListChecks returns the caller's checks, newest first.
func ListChecks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				writeError(w, d.Logger, r, fmt.Errorf("%w: limit must be a positive integer", domain.ErrInvalidInput))
				return
			}
			limit = n
		}

		records, err := d.Checks.List(r.Context(), mw.OwnerFrom(r.Context()), limit)
		if err != nil {
			writeError(w, d.Logger, r, err)
			return
		}
		if records == nil {
			records = []*domain.CheckResult{}
		}

		writeJSON(w, http.StatusOK, listChecksResponse{Checks: records, Count: len(records)})
	}
}

// GetCheck shows one check unless its share has expired.
func GetCheck(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := d.Checks.View(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, d.Logger, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// ShareCheck makes the caller's check viewable through a link.
func ShareCheck(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeJSON[shareCheckRequest](r)
		if err != nil {
			writeError(w, d.Logger, r, err)
			return
		}

		rec, err := d.Checks.Share(r.Context(), checks.ShareInput{
			ID:        chi.URLParam(r, "id"),
			ExpiresIn: req.ExpiresIn,
			Owner:     mw.OwnerFrom(r.Context()),
		})
		if err != nil {
			writeError(w, d.Logger, r, err)
			return
		}

		writeJSON(w, http.StatusOK, shareCheckResponse{
			Check:    rec,
			Link:     ShareLink(d.PublicURL, rec.ID),
			ExpireAt: *rec.ExpireAt,
		})
	}
}

// DeleteCheck removes one of the caller's checks.
func DeleteCheck(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Checks.Delete(r.Context(), chi.URLParam(r, "id"), mw.OwnerFrom(r.Context())); err != nil {
			writeError(w, d.Logger, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// RandomCheck returns any viewable check.
func RandomCheck(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := d.Checks.Random(r.Context())
		if err != nil {
			writeError(w, d.Logger, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// RandomExpiringCheck returns a shared check from the ?within= bucket
// (hour, day or week; week by default).
func RandomExpiringCheck(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		window := domain.Window(r.URL.Query().Get("within"))
		if window == "" {
			window = domain.WindowWeek
		}

		view, err := d.Checks.RandomExpiring(r.Context(), window)
		if err != nil {
			writeError(w, d.Logger, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// LongestErrorFreeCheck returns the error-free check with the longest text.
func LongestErrorFreeCheck(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := d.Checks.LongestErrorFree(r.Context())
		if err != nil {
			writeError(w, d.Logger, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// ExpiringStats buckets the shared checks by how soon they expire.
func ExpiringStats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buckets, err := d.Checks.Stats(r.Context())
		if err != nil {
			writeError(w, d.Logger, r, err)
			return
		}
		writeJSON(w, http.StatusOK, buckets)
	}
}

// ShareLink is the public URL of a shared check.
func ShareLink(publicURL, id string) string {
	return publicURL + "/view_check?id=" + url.QueryEscape(id)
}
