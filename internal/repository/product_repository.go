package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ykuzmenko/smartsend/internal/models"
)

type productRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &productRepository{
		db: db,
	}
}

// List returns the full catalog.
func (r *productRepository) List(ctx context.Context) ([]models.Product, error) {
	query := `
		SELECT id, name, price, image_url, stock, category
		FROM products
		ORDER BY name ASC
	`

	var products []models.Product
	err := r.db.SelectContext(ctx, &products, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// CreateBatch inserts products in a single transaction so the seed is
// all-or-nothing.
func (r *productRepository) CreateBatch(ctx context.Context, products []models.Product) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
		INSERT INTO products (id, name, price, image_url, stock, category)
		VALUES (:id, :name, :price, :image_url, :stock, :category)
	`

	for _, product := range products {
		if _, err := tx.NamedExecContext(ctx, query, product); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert product: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit products: %w", err)
	}

	return nil
}
