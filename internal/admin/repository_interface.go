package admin

import "context"

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	FindByID(ctx context.Context, id int) (*Admin, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	UpdateProfile(ctx context.Context, id int, req UpdateProfileRequest) (*Admin, error)
}
