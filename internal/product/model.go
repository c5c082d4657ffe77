package product

import "time"

type Product struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	Category    string    `db:"category" json:"category"`
	Image       *string   `db:"image" json:"image,omitempty"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	IsFeatured  bool      `db:"is_featured" json:"isFeatured"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
