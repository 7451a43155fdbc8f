// Package checks runs spell checks and manages the lifecycle of their records.
package checks

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/spellshare/internal/domain"
	"github.com/MrSnakeDoc/spellshare/internal/logger"
	"github.com/MrSnakeDoc/spellshare/internal/metrics"
)

const (
	// DefaultMaxTextLength caps the input size in runes
	DefaultMaxTextLength = 10000
	// DefaultListLimit caps owner listings
	DefaultListLimit = 100

	randomAttempts = 3
)

// Repository persists check records.
type Repository interface {
	Save(ctx context.Context, rec *domain.CheckResult) error
	Get(ctx context.Context, id string) (*domain.CheckResult, error)
	Share(ctx context.Context, id string, share func(*domain.CheckResult) error) (*domain.CheckResult, error)
	Delete(ctx context.Context, rec *domain.CheckResult) error
	ListByOwner(ctx context.Context, uid string, limit int) ([]*domain.CheckResult, error)
	Random(ctx context.Context) (*domain.CheckResult, error)
	LongestErrorFree(ctx context.Context) (*domain.CheckResult, error)
	SharedSnapshot(ctx context.Context, now time.Time, horizon time.Duration) (domain.SharedSnapshot, error)
}

// Oracle checks words and reports which languages it has dictionaries for.
type Oracle interface {
	domain.Oracle
	Supports(lang domain.Language) bool
}

// Options tune the service. Zero values fall back to defaults.
type Options struct {
	Now           func() time.Time
	NewID         func() string
	MaxTextLength int
}

type Service struct {
	repo          Repository
	oracle        Oracle
	logger        logger.Logger
	now           func() time.Time
	newID         func() string
	maxTextLength int
}

func NewService(repo Repository, oracle Oracle, log logger.Logger, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.MaxTextLength <= 0 {
		opts.MaxTextLength = DefaultMaxTextLength
	}

	return &Service{
		repo:          repo,
		oracle:        oracle,
		logger:        log,
		now:           opts.Now,
		newID:         opts.NewID,
		maxTextLength: opts.MaxTextLength,
	}
}

// Check annotates the input and persists the result.
//
// When the annotation succeeds but persisting fails, the record is returned
// together with an error wrapping domain.ErrPersistence so the caller can
// retry Save without recomputing.
func (s *Service) Check(ctx context.Context, in CheckInput) (*domain.CheckResult, error) {
	if in.Owner.UID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, fmt.Errorf("%w: text cannot be empty", domain.ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(in.Text); n > s.maxTextLength {
		return nil, fmt.Errorf("%w: text is %d characters, limit is %d", domain.ErrInvalidInput, n, s.maxTextLength)
	}

	lang, err := domain.ParseLanguage(in.Language)
	if err != nil {
		return nil, err
	}
	if !s.oracle.Supports(lang) {
		return nil, fmt.Errorf("%w: no dictionary loaded for %q", domain.ErrUnknownLanguage, lang)
	}

	start := time.Now()
	ann, err := domain.RunCheck(in.Text, lang, s.oracle)
	metrics.CheckDuration.WithLabelValues(string(lang)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ChecksTotal.WithLabelValues(string(lang), "oracle_error").Inc()
		s.logger.Warn("check failed",
			logger.String("language", string(lang)),
			logger.Error(err))
		return nil, err
	}

	misspelled := domain.MisspelledCount(ann.Segments)
	metrics.MisspelledTokens.Observe(float64(misspelled))
	result := "errors"
	if ann.WithoutErrors {
		result = "clean"
	}
	metrics.ChecksTotal.WithLabelValues(string(lang), result).Inc()

	rec := domain.NewCheckResult(s.newID(), in.Text, lang, ann, in.Owner, s.now().UTC())

	s.logger.Debug("check completed",
		logger.String("id", rec.ID),
		logger.String("language", string(lang)),
		logger.Int("misspelled", misspelled))

	if err := s.Save(ctx, rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// Save persists a computed record.
func (s *Service) Save(ctx context.Context, rec *domain.CheckResult) error {
	if err := s.repo.Save(ctx, rec); err != nil {
		return s.storeError("save", err)
	}
	return nil
}

// Share makes a record viewable through a link until the option's
// expiration. Only the owner can share, and only once.
func (s *Service) Share(ctx context.Context, in ShareInput) (*domain.CheckResult, error) {
	if in.Owner.UID == "" {
		return nil, domain.ErrUnauthenticated
	}

	opt := domain.ShareOption(in.ExpiresIn)
	expireAt, err := opt.ExpireAt(s.now().UTC())
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.Share(ctx, in.ID, func(rec *domain.CheckResult) error {
		if !rec.OwnedBy(in.Owner.UID) {
			return fmt.Errorf("%w: %s is not the owner of %s", domain.ErrForbidden, in.Owner.UID, rec.ID)
		}
		return rec.Share(expireAt)
	})
	if err != nil {
		return nil, s.storeError("share", err)
	}

	metrics.SharesTotal.WithLabelValues(string(opt)).Inc()
	s.logger.Info("check shared",
		logger.String("id", rec.ID),
		logger.String("expires_in", string(opt)),
		logger.Time("expire_at", expireAt))

	return rec, nil
}

// View returns a record unless its expiration has passed.
func (s *Service) View(ctx context.Context, id string) (*View, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.storeError("get", err)
	}
	return s.view(rec)
}

// Now returns the service clock.
func (s *Service) Now() time.Time { return s.now() }

func (s *Service) view(rec *domain.CheckResult) (*View, error) {
	now := s.now()
	if err := rec.Viewable(now); err != nil {
		return nil, err
	}

	return ViewOf(rec, now), nil
}

// Delete removes a record owned by the caller.
func (s *Service) Delete(ctx context.Context, id string, owner domain.Owner) error {
	if owner.UID == "" {
		return domain.ErrUnauthenticated
	}

	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return s.storeError("get", err)
	}
	if !rec.OwnedBy(owner.UID) {
		return fmt.Errorf("%w: %s is not the owner of %s", domain.ErrForbidden, owner.UID, id)
	}

	if err := s.repo.Delete(ctx, rec); err != nil {
		return s.storeError("delete", err)
	}

	s.logger.Info("check deleted", logger.String("id", id))
	return nil
}

// List returns the caller's records, newest first.
func (s *Service) List(ctx context.Context, owner domain.Owner, limit int) ([]*domain.CheckResult, error) {
	if owner.UID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	records, err := s.repo.ListByOwner(ctx, owner.UID, limit)
	if err != nil {
		return nil, s.storeError("list", err)
	}
	return records, nil
}

// Random returns a random viewable record.
func (s *Service) Random(ctx context.Context) (*View, error) {
	for i := 0; i < randomAttempts; i++ {
		rec, err := s.repo.Random(ctx)
		if errors.Is(err, domain.ErrRecordNotFound) {
			// The picked id may point at a record deleted since.
			continue
		}
		if err != nil {
			return nil, s.storeError("random", err)
		}
		if v, err := s.view(rec); err == nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: no viewable check found", domain.ErrRecordNotFound)
}

// RandomExpiring returns a random shared record from the bucket named by
// window.
func (s *Service) RandomExpiring(ctx context.Context, window domain.Window) (*View, error) {
	if _, ok := window.Duration(); !ok {
		return nil, fmt.Errorf("%w: unknown window %q", domain.ErrInvalidInput, string(window))
	}

	buckets, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []*domain.CheckResult
	switch window {
	case domain.WindowHour:
		candidates = buckets.InHour
	case domain.WindowDay:
		candidates = buckets.InDay
	case domain.WindowWeek:
		candidates = buckets.InWeek
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no check expiring within a %s", domain.ErrRecordNotFound, window)
	}

	return s.view(candidates[rand.IntN(len(candidates))])
}

// LongestErrorFree returns the error-free record with the longest text.
func (s *Service) LongestErrorFree(ctx context.Context) (*View, error) {
	rec, err := s.repo.LongestErrorFree(ctx)
	if err != nil {
		return nil, s.storeError("longest_error_free", err)
	}
	return s.view(rec)
}

// Stats buckets the shared records by how soon they expire.
func (s *Service) Stats(ctx context.Context) (domain.ExpirationBuckets, error) {
	now := s.now()

	snap, err := s.repo.SharedSnapshot(ctx, now, domain.ExpirationHorizon)
	if err != nil {
		return domain.ExpirationBuckets{}, s.storeError("snapshot", err)
	}

	buckets := snap.Bucket(now)
	metrics.ExpiringChecks.WithLabelValues(string(domain.WindowHour)).Set(float64(len(buckets.InHour)))
	metrics.ExpiringChecks.WithLabelValues(string(domain.WindowDay)).Set(float64(len(buckets.InDay)))
	metrics.ExpiringChecks.WithLabelValues(string(domain.WindowWeek)).Set(float64(len(buckets.InWeek)))

	return buckets, nil
}

// storeError passes domain outcomes through and wraps everything else as a
// persistence failure.
func (s *Service) storeError(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound),
		errors.Is(err, domain.ErrAlreadyShared),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrRecordExpired):
		return err
	}

	metrics.StoreErrors.WithLabelValues(op).Inc()
	s.logger.Error("record store failure",
		logger.String("operation", op),
		logger.Error(err))
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}
