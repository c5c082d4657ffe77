package activity

import (
	"context"
	"fmt"
	"time"

	"activehub/internal/listing"
	"activehub/internal/logger"
	"activehub/internal/metrics"
)

// Search and the action filter are pushed down to the repository, so every
// distinct (search, action) combination is its own snapshot. Sort and
// pagination stay in the listing layer.
var ListOptions = listing.Options{
	DefaultSortBy:  "timestamp",
	DefaultSortDir: listing.Desc,
	PageSize:       10,
	FilterKeys:     []string{"action"},
}

const snapshotTTL = time.Minute

type Service interface {
	Record(ctx context.Context, entry Entry)
	List(ctx context.Context, p listing.Params) (listing.Result[Log], error)
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

// Record is best effort: an audit write must never fail the operation it
// describes.
func (s *service) Record(ctx context.Context, entry Entry) {
	if err := s.repo.Insert(ctx, entry); err != nil {
		logger.Error("Failed to record activity", "action", entry.Action, "error", err)
	}
}

func (s *service) List(ctx context.Context, p listing.Params) (listing.Result[Log], error) {
	action := p.Filters["action"]
	key := fmt.Sprintf("activity_logs:%s:%s", p.Search, action)

	logs, err := listing.Fetch(s.snaps, key, p.Refresh, snapshotTTL, func() ([]Log, error) {
		metrics.RecordSnapshotLoad("activity_logs", "db")
		return s.repo.List(ctx, p.Search, action)
	})
	if err != nil {
		return listing.Result[Log]{}, err
	}

	return listing.Apply(logs, p, nil, comparators()), nil
}

func comparators() map[string]listing.Comparator[Log] {
	return map[string]listing.Comparator[Log]{
		"timestamp": func(a, b Log) int { return listing.CompareTime(a.Timestamp, b.Timestamp) },
		"gym":       func(a, b Log) int { return listing.CompareString(a.Admin.GymName, b.Admin.GymName) },
		"action":    func(a, b Log) int { return listing.CompareString(a.Action, b.Action) },
	}
}
