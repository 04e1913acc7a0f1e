package models

// Product represents a catalog product. The joined category/manufacturer
// names and the photo list are populated by the repository read queries;
// Photos is always serialized as an array, never null.
type Product struct {
	ID               int64    `db:"id" json:"id"`
	Name             string   `db:"name" json:"name"`
	Description      string   `db:"description" json:"description"`
	Price            float64  `db:"price" json:"price"`
	CategoryID       int64    `db:"category_id" json:"category_id"`
	ManufacturerID   int64    `db:"manufacturer_id" json:"manufacturer_id"`
	CategoryName     string   `db:"category_name" json:"category_name"`
	ManufacturerName string   `db:"manufacturer_name" json:"manufacturer_name"`
	Photos           []string `db:"-" json:"photos"`
}

// Photo is a stored photo reference owned by exactly one product.
type Photo struct {
	ID        int64  `db:"id" json:"id"`
	ProductID int64  `db:"product_id" json:"product_id"`
	PhotoPath string `db:"photo_path" json:"photo_path"`
}

// Category is long-lived reference data; ProductsCount is computed on read.
type Category struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	Description   string `db:"description" json:"description"`
	ProductsCount int64  `db:"products_count" json:"products_count"`
}

// Manufacturer is long-lived reference data; ProductCount is computed on read.
type Manufacturer struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Description  string `db:"description" json:"description"`
	ProductCount int64  `db:"product_count" json:"product_count"`
}
