package webhook

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, log *Log) (*Log, error) {
	// Providers omit the payload on some event types; the column is NOT NULL.
	query := `
		INSERT INTO webhook_logs (event_id, event_type, admin_id, status, amount, payload, error)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, '{}'::jsonb), $7)
		RETURNING id, event_id, event_type, admin_id, status, amount, payload, error, created_at
	`

	var inserted Log
	err := r.db.GetContext(ctx, &inserted, query,
		log.EventID, log.EventType, log.AdminID, log.Status, log.Amount, log.Payload, log.Error,
	)
	if err != nil {
		return nil, err
	}

	return &inserted, nil
}

func (r *repository) List(ctx context.Context) ([]Log, error) {
	query := `
		SELECT id, event_id, event_type, admin_id, status, amount, payload, error, created_at
		FROM webhook_logs
		ORDER BY created_at DESC
	`

	var logs []Log
	if err := r.db.SelectContext(ctx, &logs, query); err != nil {
		return nil, err
	}

	return logs, nil
}
