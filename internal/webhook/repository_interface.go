package webhook

import "context"

type Repository interface {
	Insert(ctx context.Context, log *Log) (*Log, error)
	List(ctx context.Context) ([]Log, error)
}
