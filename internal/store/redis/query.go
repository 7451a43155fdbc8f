package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MrSnakeDoc/spellshare/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// ListByOwner returns the newest checks of one owner, up to limit (0 = all)
func (s *Store) ListByOwner(ctx context.Context, uid string, limit int) ([]*domain.CheckResult, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	ids, err := s.client.ZRevRange(ctx, OwnerKey(uid), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get owner check IDs: %w", err)
	}

	return s.getMany(ctx, ids)
}

// Random returns a random record
func (s *Store) Random(ctx context.Context) (*domain.CheckResult, error) {
	id, err := s.client.SRandMember(ctx, KeyAllChecks).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: no checks stored", domain.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to pick random check: %w", err)
	}
	return s.Get(ctx, id)
}

// LongestErrorFree returns the error-free record with the longest original text
func (s *Store) LongestErrorFree(ctx context.Context) (*domain.CheckResult, error) {
	ids, err := s.client.ZRevRange(ctx, KeyErrorFreeChecks, 0, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get error-free checks: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no error-free checks stored", domain.ErrRecordNotFound)
	}
	return s.Get(ctx, ids[0])
}

// SharedSnapshot fetches the shared records expiring in [now, now+horizon]
// together with the count of every shared record. Both reads run
// concurrently.
func (s *Store) SharedSnapshot(ctx context.Context, now time.Time, horizon time.Duration) (domain.SharedSnapshot, error) {
	var (
		total int64
		ids   []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.client.SCard(gctx, KeySharedChecks).Result()
		if err != nil {
			return fmt.Errorf("failed to count shared checks: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		res, err := s.client.ZRangeByScore(gctx, KeyExpiringChecks, &redis.ZRangeBy{
			Min: msScore(now),
			Max: msScore(now.Add(horizon)),
		}).Result()
		if err != nil {
			return fmt.Errorf("failed to get expiring checks: %w", err)
		}
		ids = res
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.SharedSnapshot{}, err
	}

	records, err := s.getMany(ctx, ids)
	if err != nil {
		return domain.SharedSnapshot{}, err
	}

	return domain.SharedSnapshot{Expiring: records, TotalShared: int(total)}, nil
}

// PruneExpiredIndex removes expiring-index entries that expired before
// cutoff. Records and the shared set are left alone.
func (s *Store) PruneExpiredIndex(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := s.client.ZRemRangeByScore(ctx, KeyExpiringChecks, "-inf", "("+msScore(cutoff)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to prune expiring index: %w", err)
	}
	return n, nil
}

// getMany loads records in one round trip, skipping IDs whose record is gone.
func (s *Store) getMany(ctx context.Context, ids []string) ([]*domain.CheckResult, error) {
	if len(ids) == 0 {
		return []*domain.CheckResult{}, nil
	}

	vals, err := s.client.MGet(ctx, checkKeys(ids)...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get checks: %w", err)
	}

	records := make([]*domain.CheckResult, 0, len(vals))
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		rec, err := decodeCheck([]byte(str))
		if err != nil {
			// Skip records that couldn't be decoded
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

func msScore(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
