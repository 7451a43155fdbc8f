package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/MrSnakeDoc/spellshare/internal/domain"
	"github.com/redis/go-redis/v9"
)

// maxShareRetries bounds optimistic transaction retries on concurrent writes
const maxShareRetries = 5

// Store handles Redis operations for check records and their indexes
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks that Redis answers
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Save stores a record and updates every index in one transaction.
// Saving an existing ID overwrites it.
func (s *Store) Save(ctx context.Context, rec *domain.CheckResult) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal check: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, CheckKey(rec.ID), data, 0)
		pipe.SAdd(ctx, KeyAllChecks, rec.ID)
		addIndexes(ctx, pipe, rec)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save check: %w", err)
	}

	return nil
}

// Get retrieves a record by ID. A missing record wraps domain.ErrRecordNotFound.
func (s *Store) Get(ctx context.Context, id string) (*domain.CheckResult, error) {
	data, err := s.client.Get(ctx, CheckKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, id)
		}
		return nil, fmt.Errorf("failed to get check: %w", err)
	}

	return decodeCheck(data)
}

// Share sets the expiration of a record exactly once. Concurrent shares of
// the same record are serialized with WATCH; the loser sees
// domain.ErrAlreadyShared.
func (s *Store) Share(ctx context.Context, id string, share func(*domain.CheckResult) error) (*domain.CheckResult, error) {
	key := CheckKey(id)
	var rec *domain.CheckResult

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, id)
			}
			return fmt.Errorf("failed to get check: %w", err)
		}

		rec, err = decodeCheck(data)
		if err != nil {
			return err
		}
		if err := share(rec); err != nil {
			return err
		}

		updated, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal check: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			addIndexes(ctx, pipe, rec)
			return nil
		})
		return err
	}

	for i := 0; i < maxShareRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return rec, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to share check %s: too many concurrent updates", id)
}

// Delete removes a record and its index entries
func (s *Store) Delete(ctx context.Context, rec *domain.CheckResult) error {
	var del *redis.IntCmd

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, CheckKey(rec.ID))
		pipe.SRem(ctx, KeyAllChecks, rec.ID)
		pipe.SRem(ctx, KeySharedChecks, rec.ID)
		pipe.ZRem(ctx, KeyExpiringChecks, rec.ID)
		pipe.ZRem(ctx, KeyErrorFreeChecks, rec.ID)
		if rec.UID != "" {
			pipe.ZRem(ctx, OwnerKey(rec.UID), rec.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete check: %w", err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, rec.ID)
	}

	return nil
}

func addIndexes(ctx context.Context, pipe redis.Pipeliner, rec *domain.CheckResult) {
	if rec.UID != "" {
		pipe.ZAdd(ctx, OwnerKey(rec.UID), redis.Z{Score: float64(rec.CreatedAt.UnixMilli()), Member: rec.ID})
	}
	if rec.WithoutErrors {
		pipe.ZAdd(ctx, KeyErrorFreeChecks, redis.Z{Score: float64(utf8.RuneCountInString(rec.OriginalText)), Member: rec.ID})
	}
	if rec.Shared {
		pipe.SAdd(ctx, KeySharedChecks, rec.ID)
	}
	if rec.ExpireAt != nil {
		pipe.ZAdd(ctx, KeyExpiringChecks, redis.Z{Score: float64(rec.ExpireAt.UnixMilli()), Member: rec.ID})
	}
}

func decodeCheck(data []byte) (*domain.CheckResult, error) {
	var rec domain.CheckResult
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal check: %w", err)
	}
	if rec.CorrectedMarkup == nil {
		rec.CorrectedMarkup = []string{}
	}
	return &rec, nil
}
