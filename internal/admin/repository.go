package admin

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

func (r *repository) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	query := `
		SELECT id, username, email, phone, gym_name, role, password_hash, created_at
		FROM admins
		WHERE email = $1
	`

	var admin Admin
	err := r.db.GetContext(ctx, &admin, query, email)
	if err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Admin, error) {
	query := `
		SELECT id, username, email, phone, gym_name, role, password_hash, created_at
		FROM admins
		WHERE id = $1
	`

	var admin Admin
	err := r.db.GetContext(ctx, &admin, query, id)
	if err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *repository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	query := `UPDATE admins SET password_hash = $1 WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, passwordHash, id)
	return err
}

func (r *repository) UpdateProfile(ctx context.Context, id int, req UpdateProfileRequest) (*Admin, error) {
	query := `
		UPDATE admins
		SET username = $1, email = $2, phone = $3, gym_name = $4
		WHERE id = $5
		RETURNING id, username, email, phone, gym_name, role, password_hash, created_at
	`

	var admin Admin
	err := r.db.GetContext(ctx, &admin, query, req.Username, req.Email, req.Phone, req.GymName, id)
	if err != nil {
		return nil, err
	}

	return &admin, nil
}
