package checks

import (
	"time"

	"github.com/MrSnakeDoc/spellshare/internal/domain"
)

// CheckInput is the data needed to run and persist a check.
type CheckInput struct {
	Text     string
	Language string
	Owner    domain.Owner
}

// ShareInput is the data needed to share a check.
type ShareInput struct {
	ID        string
	ExpiresIn string
	Owner     domain.Owner
}

// View is a record as shown to readers. Only the owner's display name is
// exposed; uid and email stay server side.
type View struct {
	ID              string            `json:"id"`
	OriginalText    string            `json:"original_string"`
	CorrectedMarkup []string          `json:"corrected_string"`
	WithoutErrors   bool              `json:"without_errors"`
	Language        domain.Language   `json:"language"`
	CreatedAt       time.Time         `json:"created_at"`
	ExpireAt        *time.Time        `json:"expire,omitempty"`
	Shared          bool              `json:"shared,omitempty"`
	UserName        string            `json:"user_name,omitempty"`
	Remaining       *domain.Remaining `json:"remaining,omitempty"`
	Markers         []domain.Marker   `json:"markers"`
}

// ViewOf builds the reader view of rec at now. It does not check expiration.
func ViewOf(rec *domain.CheckResult, now time.Time) *View {
	v := &View{
		ID:              rec.ID,
		OriginalText:    rec.OriginalText,
		CorrectedMarkup: rec.CorrectedMarkup,
		WithoutErrors:   rec.WithoutErrors,
		Language:        rec.Language,
		CreatedAt:       rec.CreatedAt,
		ExpireAt:        rec.ExpireAt,
		Shared:          rec.Shared,
		UserName:        rec.Name,
		Markers:         domain.Markers(rec.CorrectedMarkup),
	}
	if v.Markers == nil {
		v.Markers = []domain.Marker{}
	}
	if rem, ok := rec.RemainingAt(now); ok {
		v.Remaining = &rem
	}
	return v
}
