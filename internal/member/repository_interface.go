package member

import "context"

type Repository interface {
	Create(ctx context.Context, m *Member) (*Member, error)
	FindByEmail(ctx context.Context, email string) (*Member, error)
	FindByID(ctx context.Context, id int) (*Member, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	GymName(ctx context.Context, gymID int) (string, error)
}
