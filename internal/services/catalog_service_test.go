package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stylahq/styla-backend/internal/cache"
)

func newCatalogService(t *testing.T) (*CatalogService, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	// nil redis client: cache disabled, reads go straight to the DB
	return NewCatalogService(db, cache.NewProductCache(nil, 0)), mock
}

func productColumns() []string {
	return []string{"id", "name", "brand_name", "price", "category", "image"}
}

func TestListProducts(t *testing.T) {
	svc, mock := newCatalogService(t)

	rows := sqlmock.NewRows(productColumns()).
		AddRow("p1", "Silk Blouse", "Maison K", 50000, "top", nil).
		AddRow("p2", "Linen Pants", "Atelier B", 70000, "bottom", nil)
	mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnRows(rows)

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Silk Blouse", products[0].Name)
	assert.Equal(t, 70000, products[1].Price)
}

func TestGetProductNotFound(t *testing.T) {
	svc, mock := newCatalogService(t)

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows(productColumns()))

	_, err := svc.GetProduct("ghost")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetProduct(t *testing.T) {
	svc, mock := newCatalogService(t)

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WithArgs("p1", 1).
		WillReturnRows(sqlmock.NewRows(productColumns()).
			AddRow("p1", "Silk Blouse", "Maison K", 50000, "top", nil))

	product, err := svc.GetProduct("p1")
	require.NoError(t, err)
	assert.Equal(t, "Maison K", product.BrandName)
}

func TestSeedFromFileInsertsWhenTableEmpty(t *testing.T) {
	svc, mock := newCatalogService(t)

	path := filepath.Join(t.TempDir(), "seed.json")
	seed := `[{"name":"Silk Blouse","brandName":"Maison K","price":50000,"category":"top"},
		{"name":"Linen Pants","brandName":"Atelier B","price":70000}]`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "products"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, svc.SeedFromFile(context.Background(), path))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedFromFileSkipsWhenProductsExist(t *testing.T) {
	svc, mock := newCatalogService(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	require.NoError(t, svc.SeedFromFile(context.Background(), "ignored.json"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
