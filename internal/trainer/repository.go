package trainer

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"activehub/internal/member"
)

const trainerColumns = `id, gym_id, name, email, phone, specialty, password_hash, created_at`

const rosterColumns = `id, gym_id, trainer_id, name, email, phone, membership_type,
	membership_status, last_attendance, profile_image, password_hash, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Trainer) (*Trainer, error) {
	query := `
		INSERT INTO trainers (gym_id, name, email, phone, specialty)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + trainerColumns

	var created Trainer
	err := r.db.GetContext(ctx, &created, query, t.GymID, t.Name, t.Email, t.Phone, t.Specialty)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &created, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Trainer, error) {
	query := `SELECT ` + trainerColumns + ` FROM trainers WHERE email = $1`

	var t Trainer
	if err := r.db.GetContext(ctx, &t, query, email); err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Trainer, error) {
	query := `SELECT ` + trainerColumns + ` FROM trainers WHERE id = $1`

	var t Trainer
	if err := r.db.GetContext(ctx, &t, query, id); err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	query := `UPDATE trainers SET password_hash = $1 WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, passwordHash, id)
	return err
}

func (r *repository) ListMembers(ctx context.Context, trainerID int) ([]member.Member, error) {
	query := `SELECT ` + rosterColumns + ` FROM members WHERE trainer_id = $1 ORDER BY name`

	members := []member.Member{}
	if err := r.db.SelectContext(ctx, &members, query, trainerID); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *repository) GetMember(ctx context.Context, trainerID, memberID int) (*member.Member, error) {
	query := `SELECT ` + rosterColumns + ` FROM members WHERE id = $1 AND trainer_id = $2`

	var m member.Member
	if err := r.db.GetContext(ctx, &m, query, memberID, trainerID); err != nil {
		return nil, err
	}

	return &m, nil
}

// MarkAttendance records the visit and stamps the member's last_attendance
// in one transaction.
func (r *repository) MarkAttendance(ctx context.Context, trainerID, memberID int, at time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO attendance_records (member_id, trainer_id, marked_at) VALUES ($1, $2, $3)`,
		memberID, trainerID, at)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE members SET last_attendance = $1 WHERE id = $2`,
		at, memberID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) GymName(ctx context.Context, gymID int) (string, error) {
	var name string
	if err := r.db.GetContext(ctx, &name, `SELECT name FROM gyms WHERE id = $1`, gymID); err != nil {
		return "", err
	}

	return name, nil
}
