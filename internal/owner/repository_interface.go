package owner

import "context"

type Repository interface {
	ListGyms(ctx context.Context, search string) ([]Gym, error)
}
