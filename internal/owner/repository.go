package owner

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

type gymRow struct {
	ID           int        `db:"id"`
	AdminID      int        `db:"admin_id"`
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	Phone        string     `db:"phone"`
	CreatedAt    time.Time  `db:"created_at"`
	TotalRevenue float64    `db:"total_revenue"`
	SubStatus    *string    `db:"sub_status"`
	SubPlan      *string    `db:"sub_plan"`
	SubStart     *time.Time `db:"sub_start"`
	SubEnd       *time.Time `db:"sub_end"`
	SubTrialEnds *time.Time `db:"sub_trial_ends"`
	SubAmount    *float64   `db:"sub_amount"`
	MemberCount  int        `db:"member_count"`
}

func (row gymRow) toGym() Gym {
	g := Gym{
		ID:           row.ID,
		AdminID:      row.AdminID,
		Name:         row.Name,
		Email:        row.Email,
		Phone:        row.Phone,
		CreatedAt:    row.CreatedAt,
		TotalRevenue: row.TotalRevenue,
		Subscription: Subscription{
			Status:      StatusInactive,
			MemberCount: row.MemberCount,
			StartDate:   row.SubStart,
			EndDate:     row.SubEnd,
			TrialEndsAt: row.SubTrialEnds,
		},
	}

	if row.SubStatus != nil {
		g.Subscription.Status = *row.SubStatus
	}
	if row.SubPlan != nil {
		g.Subscription.Plan = *row.SubPlan
	}
	if row.SubAmount != nil {
		g.Subscription.Amount = *row.SubAmount
	}

	return g
}

// ListGyms joins each gym with its subscription, member count, and the
// revenue booked through successful payment webhooks of its admin.
func (r *repository) ListGyms(ctx context.Context, search string) ([]Gym, error) {
	query := `
		SELECT g.id, g.admin_id, g.name, g.email, g.phone, g.created_at,
		       COALESCE(w.revenue, 0) AS total_revenue,
		       s.status AS sub_status, s.plan AS sub_plan, s.start_date AS sub_start,
		       s.end_date AS sub_end, s.trial_ends_at AS sub_trial_ends, s.amount AS sub_amount,
		       COALESCE(m.member_count, 0) AS member_count
		FROM gyms g
		LEFT JOIN subscriptions s ON s.gym_id = g.id
		LEFT JOIN (
			SELECT gym_id, COUNT(*) AS member_count FROM members GROUP BY gym_id
		) m ON m.gym_id = g.id
		LEFT JOIN (
			SELECT admin_id, SUM(amount) AS revenue
			FROM webhook_logs
			WHERE status = 'success' AND event_type = 'payment.succeeded'
			GROUP BY admin_id
		) w ON w.admin_id = g.admin_id
	`
	args := []interface{}{}

	if search != "" {
		query += ` WHERE (g.name ILIKE $1 OR g.email ILIKE $1)`
		args = append(args, "%"+search+"%")
	}

	query += ` ORDER BY g.created_at DESC`

	var rows []gymRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	gyms := make([]Gym, 0, len(rows))
	for _, row := range rows {
		gyms = append(gyms, row.toGym())
	}

	return gyms, nil
}
