package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestListCategoriesWithProductCounts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(`FROM categories`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "products_count"}).
			AddRow(int64(2), "Appliances", "Household appliances", int64(0)).
			AddRow(int64(1), "Laptops", "Notebooks", int64(4)))

	categories, err := repo.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories returned error: %v", err)
	}

	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[1].Name != "Laptops" || categories[1].ProductsCount != 4 {
		t.Fatalf("unexpected category row: %+v", categories[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListManufacturersWithProductCounts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(`FROM manufacturers`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "product_count"}).
			AddRow(int64(1), "Samsung", "Samsung Electronics", int64(7)).
			AddRow(int64(2), "Apple", "Apple Inc.", int64(3)))

	manufacturers, err := repo.ListManufacturers(context.Background())
	if err != nil {
		t.Fatalf("ListManufacturers returned error: %v", err)
	}

	if len(manufacturers) != 2 {
		t.Fatalf("expected 2 manufacturers, got %d", len(manufacturers))
	}
	if manufacturers[0].ID != 1 || manufacturers[0].ProductCount != 7 {
		t.Fatalf("unexpected manufacturer row: %+v", manufacturers[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
