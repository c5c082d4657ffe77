package trainer

import (
	"context"
	"time"

	"activehub/internal/member"
)

type Repository interface {
	Create(ctx context.Context, t *Trainer) (*Trainer, error)
	FindByEmail(ctx context.Context, email string) (*Trainer, error)
	FindByID(ctx context.Context, id int) (*Trainer, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	ListMembers(ctx context.Context, trainerID int) ([]member.Member, error)
	GetMember(ctx context.Context, trainerID, memberID int) (*member.Member, error)
	MarkAttendance(ctx context.Context, trainerID, memberID int, at time.Time) error
	GymName(ctx context.Context, gymID int) (string, error)
}
