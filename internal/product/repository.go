package product

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const productColumns = `id, name, description, price, category, image, is_active, is_featured, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name`

	products := []Product{}
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *repository) ToggleActive(ctx context.Context, id int) (*Product, error) {
	query := `UPDATE products SET is_active = NOT is_active WHERE id = $1
		RETURNING ` + productColumns

	var p Product
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, err
	}

	return &p, nil
}
