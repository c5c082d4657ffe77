package product

import (
	"context"
	"errors"
	"time"

	"activehub/internal/activity"
	"activehub/internal/listing"
	"activehub/internal/metrics"
)

var ErrProductNotFound = errors.New("product not found")

var ListOptions = listing.Options{
	DefaultSortBy:  "name",
	DefaultSortDir: listing.Asc,
	PageSize:       10,
	FilterKeys:     []string{"category"},
}

// The catalog changes rarely; the longest stale window in use.
const snapshotTTL = 5 * time.Minute

const snapshotKey = "products:0"

// Recorder is the slice of the activity service toggles are logged to.
type Recorder interface {
	Record(ctx context.Context, entry activity.Entry)
}

type Service interface {
	List(ctx context.Context, p listing.Params) (listing.Result[Product], error)
	ToggleActive(ctx context.Context, adminID, id int) (*Product, error)
}

type service struct {
	repo       Repository
	snaps      *listing.Snapshots
	activities Recorder
}

func NewService(repo Repository, snaps *listing.Snapshots, activities Recorder) Service {
	return &service{
		repo:       repo,
		snaps:      snaps,
		activities: activities,
	}
}

func (s *service) List(ctx context.Context, p listing.Params) (listing.Result[Product], error) {
	products, err := listing.Fetch(s.snaps, snapshotKey, p.Refresh, snapshotTTL, func() ([]Product, error) {
		metrics.RecordSnapshotLoad("products", "db")
		return s.repo.List(ctx)
	})
	if err != nil {
		return listing.Result[Product]{}, err
	}

	search := p.Search
	category := p.Filters["category"]
	match := func(pr Product) bool {
		if search != "" && !listing.ContainsFold(pr.Name, search) && !listing.ContainsFold(pr.Category, search) {
			return false
		}
		if category != "" && pr.Category != category {
			return false
		}
		return true
	}

	return listing.Apply(products, p, match, productComparators()), nil
}

// ToggleActive flips the flag and returns the updated record. Concurrent
// toggles are last-write-wins; the client refetches after mutating.
func (s *service) ToggleActive(ctx context.Context, adminID, id int) (*Product, error) {
	p, err := s.repo.ToggleActive(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	s.snaps.Invalidate(snapshotKey)
	metrics.RecordProductToggle()
	s.activities.Record(ctx, activity.Entry{
		AdminID: adminID,
		Action:  "product_toggle",
	})

	return p, nil
}

func productComparators() map[string]listing.Comparator[Product] {
	return map[string]listing.Comparator[Product]{
		"name":     func(a, b Product) int { return listing.CompareString(a.Name, b.Name) },
		"price":    func(a, b Product) int { return listing.CompareFloat(a.Price, b.Price) },
		"category": func(a, b Product) int { return listing.CompareString(a.Category, b.Category) },
	}
}
