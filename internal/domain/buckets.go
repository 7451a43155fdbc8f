package domain

import (
	"sort"
	"time"
)

const (
	// ExpirationHorizon is the furthest expiration the bucket query looks at.
	ExpirationHorizon = 7 * 24 * time.Hour

	hourWindow = time.Hour
	dayWindow  = 24 * time.Hour
)

// Window names an expiration bucket.
type Window string

const (
	WindowHour Window = "hour"
	WindowDay  Window = "day"
	WindowWeek Window = "week"
)

// Duration is the upper bound of the window, measured from now.
func (w Window) Duration() (time.Duration, bool) {
	switch w {
	case WindowHour:
		return hourWindow, true
	case WindowDay:
		return dayWindow, true
	case WindowWeek:
		return ExpirationHorizon, true
	default:
		return 0, false
	}
}

// ExpirationBuckets partitions shared records by how soon they expire.
// It is derived on every query and never stored.
type ExpirationBuckets struct {
	InHour      []*CheckResult `json:"in_hour"`
	InDay       []*CheckResult `json:"in_day"`
	InWeek      []*CheckResult `json:"in_week"`
	TotalShared int            `json:"total_shared"`
}

// SharedSnapshot is what the store hands to the bucketer: the shared
// records fetched within the horizon, plus the count of every shared record.
type SharedSnapshot struct {
	Expiring    []*CheckResult
	TotalShared int
}

// SnapshotOf builds a snapshot from an arbitrary record set. Records that
// are not shared are ignored; expired shared records still count.
func SnapshotOf(records []*CheckResult) SharedSnapshot {
	snap := SharedSnapshot{Expiring: make([]*CheckResult, 0, len(records))}
	for _, r := range records {
		if r == nil || !r.Shared {
			continue
		}
		snap.TotalShared++
		snap.Expiring = append(snap.Expiring, r)
	}
	return snap
}

// Bucket partitions the snapshot relative to now.
//
// A record lands in at most one bucket: InHour when it expires within one
// hour (inclusive), InDay within one day, InWeek within the horizon.
// Expired records and records beyond the horizon land nowhere. Each bucket
// is ordered by expiration, ties keeping snapshot order.
//
// Bucket does not modify the snapshot and is safe to call concurrently.
func (s SharedSnapshot) Bucket(now time.Time) ExpirationBuckets {
	out := ExpirationBuckets{
		InHour:      []*CheckResult{},
		InDay:       []*CheckResult{},
		InWeek:      []*CheckResult{},
		TotalShared: s.TotalShared,
	}

	for _, r := range s.Expiring {
		if r == nil || !r.Shared || r.ExpireAt == nil {
			continue
		}
		delta := r.ExpireAt.Sub(now)
		switch {
		case delta < 0 || delta > ExpirationHorizon:
			continue
		case delta <= hourWindow:
			out.InHour = append(out.InHour, r)
		case delta <= dayWindow:
			out.InDay = append(out.InDay, r)
		default:
			out.InWeek = append(out.InWeek, r)
		}
	}

	sortByExpiration(out.InHour)
	sortByExpiration(out.InDay)
	sortByExpiration(out.InWeek)
	return out
}

func sortByExpiration(records []*CheckResult) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ExpireAt.Before(*records[j].ExpireAt)
	})
}
