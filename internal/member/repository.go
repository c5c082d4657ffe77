package member

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const memberColumns = `id, gym_id, trainer_id, name, email, phone, membership_type,
	membership_status, last_attendance, profile_image, password_hash, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Member) (*Member, error) {
	query := `
		INSERT INTO members (gym_id, trainer_id, name, email, phone, membership_type, membership_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + memberColumns

	var created Member
	err := r.db.GetContext(ctx, &created, query,
		m.GymID, m.TrainerID, m.Name, m.Email, m.Phone, m.MembershipType, m.MembershipStatus,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &created, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE email = $1`

	var m Member
	if err := r.db.GetContext(ctx, &m, query, email); err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	var m Member
	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	query := `UPDATE members SET password_hash = $1 WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, passwordHash, id)
	return err
}

func (r *repository) GymName(ctx context.Context, gymID int) (string, error) {
	var name string
	if err := r.db.GetContext(ctx, &name, `SELECT name FROM gyms WHERE id = $1`, gymID); err != nil {
		return "", err
	}

	return name, nil
}
