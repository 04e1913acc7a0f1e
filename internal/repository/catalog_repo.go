package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/dmvas/shop-catalog/internal/models"
)

// CatalogRepository handles the reference data reads: categories and
// manufacturers. Both are created out of band; this repository only lists.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListCategories returns all categories ordered by name ascending, each with
// a live count of products referencing it.
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	const q = `
        SELECT id, name, COALESCE(description, '') AS description,
               (SELECT COUNT(*) FROM products WHERE category_id = categories.id) AS products_count
        FROM categories
        ORDER BY name ASC`

	var out []models.Category
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// ListManufacturers returns all manufacturers ordered by id ascending, each
// with a live count of referencing products. Name uniqueness is enforced by
// the schema, so no two returned rows ever share a name.
func (r *CatalogRepository) ListManufacturers(ctx context.Context) ([]models.Manufacturer, error) {
	const q = `
        SELECT id, name, COALESCE(description, '') AS description,
               (SELECT COUNT(*) FROM products WHERE manufacturer_id = manufacturers.id) AS product_count
        FROM manufacturers
        ORDER BY id ASC`

	var out []models.Manufacturer
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}
