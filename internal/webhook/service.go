package webhook

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"activehub/internal/listing"
	"activehub/internal/metrics"
)

var ErrUnknownEventType = errors.New("unknown event type")

// The webhook page fetches once and filters locally, so there is one
// snapshot for everyone and a generous freshness window.
var ListOptions = listing.Options{
	DefaultSortBy:  "createdAt",
	DefaultSortDir: listing.Desc,
	PageSize:       10,
	FilterKeys:     []string{"eventType", "status", "from", "to"},
}

const snapshotTTL = 5 * time.Minute

type Service interface {
	Ingest(ctx context.Context, req IngestRequest) (*Log, error)
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

func (s *service) Ingest(ctx context.Context, req IngestRequest) (*Log, error) {
	if !validEventType(req.EventType) {
		return nil, ErrUnknownEventType
	}

	log, err := s.repo.Insert(ctx, &Log{
		EventID:   uuid.NewString(),
		EventType: req.EventType,
		AdminID:   req.AdminID,
		Status:    req.Status,
		Amount:    req.Amount,
		Payload:   req.Payload,
		Error:     req.Error,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordWebhookEvent(req.EventType, req.Status)
	s.snaps.Invalidate("webhook_logs")

	return log, nil
}

func (s *service) List(ctx context.Context, p listing.Params) (listing.Result[Log], error) {
	logs, err := listing.Fetch(s.snaps, "webhook_logs", p.Refresh, snapshotTTL, func() ([]Log, error) {
		metrics.RecordSnapshotLoad("webhook_logs", "db")
		return s.repo.List(ctx)
	})
	if err != nil {
		return listing.Result[Log]{}, err
	}

	match := buildMatch(p)

	return listing.Apply(logs, p, match, comparators()), nil
}

func buildMatch(p listing.Params) func(Log) bool {
	eventType := p.Filters["eventType"]
	status := p.Filters["status"]
	from, hasFrom := parseDate(p.Filters["from"])
	to, hasTo := parseDate(p.Filters["to"])
	if hasTo {
		// Inclusive end of day.
		to = to.Add(24*time.Hour - time.Nanosecond)
	}

	if eventType == "" && status == "" && !hasFrom && !hasTo && p.Search == "" {
		return nil
	}

	return func(l Log) bool {
		if eventType != "" && l.EventType != eventType {
			return false
		}
		if status != "" && l.Status != status {
			return false
		}
		if hasFrom && l.CreatedAt.Before(from) {
			return false
		}
		if hasTo && l.CreatedAt.After(to) {
			return false
		}
		if p.Search != "" && !listing.ContainsFold(l.EventType, p.Search) && !listing.ContainsFold(l.EventID, p.Search) {
			return false
		}
		return true
	}
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func validEventType(eventType string) bool {
	for _, t := range EventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

func comparators() map[string]listing.Comparator[Log] {
	return map[string]listing.Comparator[Log]{
		"createdAt": func(a, b Log) int { return listing.CompareTime(a.CreatedAt, b.CreatedAt) },
		"eventType": func(a, b Log) int { return listing.CompareString(a.EventType, b.EventType) },
		"status":    func(a, b Log) int { return listing.CompareString(a.Status, b.Status) },
		"amount": func(a, b Log) int {
			av, bv := 0.0, 0.0
			if a.Amount != nil {
				av = *a.Amount
			}
			if b.Amount != nil {
				bv = *b.Amount
			}
			return listing.CompareFloat(av, bv)
		},
	}
}
