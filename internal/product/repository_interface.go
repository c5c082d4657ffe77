package product

import "context"

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	ToggleActive(ctx context.Context, id int) (*Product, error)
}
