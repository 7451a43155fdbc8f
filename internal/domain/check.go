package domain

import (
	"fmt"
	"strings"
	"time"
)

// Owner carries the identity of whoever ran a check.
// The fields are opaque: they are stored and compared, never interpreted.
type Owner struct {
	UID   string `json:"user_uid,omitempty"`
	Email string `json:"user_email,omitempty"`
	Name  string `json:"user_name,omitempty"`
}

// CheckResult is one completed annotation run as persisted.
//
// OriginalText, Language and CreatedAt never change after creation.
// ExpireAt goes from nil to set exactly once, through Share.
type CheckResult struct {
	ID              string     `json:"id"`
	OriginalText    string     `json:"original_string"`
	CorrectedMarkup []string   `json:"corrected_string"`
	WithoutErrors   bool       `json:"without_errors"`
	Language        Language   `json:"language"`
	CreatedAt       time.Time  `json:"created_at"`
	ExpireAt        *time.Time `json:"expire,omitempty"`
	Shared          bool       `json:"shared,omitempty"`
	Owner
}

// Annotation is the output of the annotation pipeline for one input.
type Annotation struct {
	Segments      []AnnotatedSegment
	WithoutErrors bool
}

// Markup returns the markup fragments to persist: empty (not nil) when the
// text has no errors.
func (a *Annotation) Markup() []string {
	if a.WithoutErrors {
		return []string{}
	}
	return MarkupFragments(a.Segments)
}

// RunCheck tokenizes text, annotates it with the oracle and returns the
// result. It fails only when the oracle does.
func RunCheck(text string, lang Language, oracle Oracle) (*Annotation, error) {
	segments, withoutErrors, err := Annotate(Tokenize(text), oracle, lang)
	if err != nil {
		return nil, err
	}
	return &Annotation{Segments: segments, WithoutErrors: withoutErrors}, nil
}

// NewCheckResult builds the record for a finished annotation.
func NewCheckResult(id, text string, lang Language, ann *Annotation, owner Owner, createdAt time.Time) *CheckResult {
	return &CheckResult{
		ID:              id,
		OriginalText:    text,
		CorrectedMarkup: ann.Markup(),
		WithoutErrors:   ann.WithoutErrors,
		Language:        lang,
		CreatedAt:       createdAt,
		Owner:           owner,
	}
}

// Markup joins the persisted markup fragments.
func (c *CheckResult) Markup() string {
	return strings.Join(c.CorrectedMarkup, "")
}

// Share marks the record as shared until expireAt. A record can be shared
// only once.
func (c *CheckResult) Share(expireAt time.Time) error {
	if c.ExpireAt != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyShared, c.ID)
	}
	t := expireAt
	c.ExpireAt = &t
	c.Shared = true
	return nil
}

// Expired reports whether the record had an expiration before now.
func (c *CheckResult) Expired(now time.Time) bool {
	return c.ExpireAt != nil && c.ExpireAt.Before(now)
}

// Viewable returns ErrRecordExpired once the expiration has passed.
func (c *CheckResult) Viewable(now time.Time) error {
	if c.Expired(now) {
		return fmt.Errorf("%w: %s", ErrRecordExpired, c.ID)
	}
	return nil
}

// OwnedBy reports whether uid is the record owner. Records without an owner
// belong to nobody.
func (c *CheckResult) OwnedBy(uid string) bool {
	return uid != "" && c.UID == uid
}

// Remaining is the time left before a shared record expires, split the way
// it is shown to readers.
type Remaining struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// RemainingAt returns the time left at now. ok is false when the record has
// no expiration or is already expired.
func (c *CheckResult) RemainingAt(now time.Time) (Remaining, bool) {
	if c.ExpireAt == nil || c.ExpireAt.Before(now) {
		return Remaining{}, false
	}
	left := c.ExpireAt.Sub(now)
	day := 24 * time.Hour
	return Remaining{
		Days:    int(left / day),
		Hours:   int(left % day / time.Hour),
		Minutes: int(left % time.Hour / time.Minute),
	}, true
}
