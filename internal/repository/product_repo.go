package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/dmvas/shop-catalog/internal/models"
)

// ProductRepository handles data access for products and their photos.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// CreateProductInput carries the validated fields for a new product.
type CreateProductInput struct {
	Name           string
	Description    string
	Price          float64
	CategoryID     int64
	ManufacturerID int64
}

// photoInsert is the named-parameter shape for the batched photo insert.
type photoInsert struct {
	ProductID int64  `db:"product_id"`
	PhotoPath string `db:"photo_path"`
}

// Create inserts one product row and one photo row per reference in a single
// transaction, then reads back the hydrated product. Any failure before
// commit rolls back; no partial product is ever visible. A bad category or
// manufacturer id surfaces as ErrBadReference.
func (r *ProductRepository) Create(ctx context.Context, in CreateProductInput, photoPaths []string) (*models.Product, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	// Rollback is a no-op once the transaction has been committed.
	defer tx.Rollback()

	const insertProduct = `
        INSERT INTO products (name, description, price, category_id, manufacturer_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	var productID int64
	if err := tx.QueryRowContext(ctx, insertProduct,
		in.Name, in.Description, in.Price, in.CategoryID, in.ManufacturerID,
	).Scan(&productID); err != nil {
		return nil, mapConstraintErr(err)
	}

	if len(photoPaths) > 0 {
		rows := make([]photoInsert, 0, len(photoPaths))
		for _, p := range photoPaths {
			rows = append(rows, photoInsert{ProductID: productID, PhotoPath: p})
		}
		// NamedExec with a slice expands into a single multi-row insert.
		const insertPhotos = `INSERT INTO photos (product_id, photo_path) VALUES (:product_id, :photo_path)`
		if _, err := tx.NamedExecContext(ctx, insertPhotos, rows); err != nil {
			return nil, mapConstraintErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return r.hydrate(ctx, productID)
}

// productRow is the scan target for joined product reads. PhotoList carries
// the comma-joined photo paths in insertion order.
type productRow struct {
	models.Product
	PhotoList string `db:"photo_list"`
}

// hydrate reads back a product joined with its category and manufacturer
// names and its aggregated photo references.
func (r *ProductRepository) hydrate(ctx context.Context, id int64) (*models.Product, error) {
	const q = `
        SELECT p.id, p.name, COALESCE(p.description, '') AS description, p.price,
               p.category_id, p.manufacturer_id,
               COALESCE(c.name, '') AS category_name,
               COALESCE(m.name, '') AS manufacturer_name,
               COALESCE(string_agg(ph.photo_path, ',' ORDER BY ph.id), '') AS photo_list
        FROM products p
        LEFT JOIN photos ph ON ph.product_id = p.id AND ph.photo_path IS NOT NULL
        LEFT JOIN categories c ON c.id = p.category_id
        LEFT JOIN manufacturers m ON m.id = p.manufacturer_id
        WHERE p.id = $1
        GROUP BY p.id, c.name, m.name`

	var row productRow
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p := row.Product
	p.Photos = splitPhotoList(row.PhotoList)
	return &p, nil
}

// GetByID returns a single hydrated product or ErrNotFound.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return r.hydrate(ctx, id)
}

// List returns all products ordered by id descending, each with its joined
// names and full photo list. Photos are fetched in one second query and
// grouped in memory so listing never degrades to one query per product.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	const productsQ = `
        SELECT p.id, p.name, COALESCE(p.description, '') AS description, p.price,
               p.category_id, p.manufacturer_id,
               COALESCE(c.name, '') AS category_name,
               COALESCE(m.name, '') AS manufacturer_name
        FROM products p
        LEFT JOIN categories c ON c.id = p.category_id
        LEFT JOIN manufacturers m ON m.id = p.manufacturer_id
        ORDER BY p.id DESC`

	var products []models.Product
	if err := r.db.SelectContext(ctx, &products, productsQ); err != nil {
		return nil, err
	}

	const photosQ = `
        SELECT product_id, photo_path
        FROM photos
        WHERE photo_path IS NOT NULL
        ORDER BY id`

	var photos []models.Photo
	if err := r.db.SelectContext(ctx, &photos, photosQ); err != nil {
		return nil, err
	}

	byProduct := make(map[int64][]string, len(products))
	for _, ph := range photos {
		byProduct[ph.ProductID] = append(byProduct[ph.ProductID], ph.PhotoPath)
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if refs, ok := byProduct[p.ID]; ok {
			p.Photos = refs
		} else {
			p.Photos = []string{}
		}
		out = append(out, p)
	}
	return out, nil
}

// Delete removes a product and all of its photos in one transaction. When
// the product does not exist the transaction is rolled back and ErrNotFound
// is returned; the photo delete is then a harmless no-op.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM photos WHERE product_id = $1`, id); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// splitPhotoList turns the comma-joined aggregate back into a slice,
// preserving insertion order. An empty aggregate means no photos.
func splitPhotoList(list string) []string {
	if list == "" {
		return []string{}
	}
	return strings.Split(list, ",")
}
