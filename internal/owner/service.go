package owner

import (
	"context"
	"fmt"
	"time"

	"activehub/internal/listing"
	"activehub/internal/metrics"
)

var GymListOptions = listing.Options{
	DefaultSortBy:  "createdAt",
	DefaultSortDir: listing.Desc,
	PageSize:       10,
	FilterKeys:     []string{"status"},
}

// The gyms page allows a two-minute stale window before a background
// refetch; refresh=true always reloads.
const gymSnapshotTTL = 2 * time.Minute

type Service interface {
	ListGyms(ctx context.Context, p listing.Params) (listing.Result[Gym], error)
	Analytics(ctx context.Context, now time.Time) (*Stats, error)
}

type service struct {
	repo  Repository
	snaps *listing.Snapshots
}

func NewService(repo Repository, snaps *listing.Snapshots) Service {
	return &service{
		repo:  repo,
		snaps: snaps,
	}
}

// ListGyms pushes the search term to the repository (a distinct snapshot per
// term) and applies the status filter, sort, and pagination in memory.
func (s *service) ListGyms(ctx context.Context, p listing.Params) (listing.Result[Gym], error) {
	key := fmt.Sprintf("owner_gyms:%s", p.Search)

	gyms, err := listing.Fetch(s.snaps, key, p.Refresh, gymSnapshotTTL, func() ([]Gym, error) {
		metrics.RecordSnapshotLoad("owner_gyms", "db")
		return s.repo.ListGyms(ctx, p.Search)
	})
	if err != nil {
		return listing.Result[Gym]{}, err
	}

	var match func(Gym) bool
	if status := p.Filters["status"]; status != "" {
		match = func(g Gym) bool { return g.Subscription.Status == status }
	}

	return listing.Apply(gyms, p, match, gymComparators()), nil
}

// Analytics reduces the full gym collection to dashboard scalars. Growth is
// a real month-over-month comparison: gyms existing before the start of the
// current month against the total now.
func (s *service) Analytics(ctx context.Context, now time.Time) (*Stats, error) {
	gyms, err := listing.Fetch(s.snaps, "owner_gyms:", false, gymSnapshotTTL, func() ([]Gym, error) {
		metrics.RecordSnapshotLoad("owner_gyms", "db")
		return s.repo.ListGyms(ctx, "")
	})
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalGyms: len(gyms)}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	previousCount := 0

	for _, g := range gyms {
		switch g.Subscription.Status {
		case StatusActive:
			stats.ActiveSubscriptions++
		case StatusTrial:
			stats.TrialGyms++
		case StatusGrace:
			stats.GraceGyms++
		case StatusExpired:
			stats.ExpiredGyms++
		default:
			stats.InactiveGyms++
		}

		stats.TotalRevenue += g.TotalRevenue
		stats.TotalMembers += g.Subscription.MemberCount

		if g.CreatedAt.Before(monthStart) {
			previousCount++
		}
	}

	if previousCount > 0 {
		stats.GymGrowthPct = float64(stats.TotalGyms-previousCount) / float64(previousCount) * 100
	}

	return stats, nil
}

func gymComparators() map[string]listing.Comparator[Gym] {
	return map[string]listing.Comparator[Gym]{
		"name":         func(a, b Gym) int { return listing.CompareString(a.Name, b.Name) },
		"createdAt":    func(a, b Gym) int { return listing.CompareTime(a.CreatedAt, b.CreatedAt) },
		"totalRevenue": func(a, b Gym) int { return listing.CompareFloat(a.TotalRevenue, b.TotalRevenue) },
		"memberCount": func(a, b Gym) int {
			return listing.CompareInt(a.Subscription.MemberCount, b.Subscription.MemberCount)
		},
		"status": func(a, b Gym) int {
			return listing.CompareString(a.Subscription.Status, b.Subscription.Status)
		},
	}
}
