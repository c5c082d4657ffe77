package activity

import "context"

type Repository interface {
	Insert(ctx context.Context, entry Entry) error
	List(ctx context.Context, search, action string) ([]Log, error)
}
