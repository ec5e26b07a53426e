package service

import (
	"context"
	"testing"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	infraRepo "github.com/dukasmart/phoneshop-api/internal/infrastructure/repository"
	"github.com/dukasmart/phoneshop-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProductService(db *gorm.DB) *ProductService {
	return NewProductService(infraRepo.NewProductRepository(db))
}

func TestCreateProductStoresPriceInCents(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)

	product, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		IMEI:          "356938035643809",
		Model:         "SM-A145",
		Name:          "Samsung A14",
		Price:         15999.99,
		Quantity:      10,
		QuantityAlert: 3,
	})
	require.NoError(t, err)
	// 15999.99 rounds to 1599999 cents rather than truncating to 1599998
	assert.Equal(t, int64(1599999), product.Price)
	assert.Equal(t, enum.StockStatusAvailable, product.Status)
}

func TestCreateProductDuplicateIMEIRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)

	_, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		IMEI: "356938035643809", Name: "Samsung A14", Price: 15000, Quantity: 1,
	})
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), &CreateProductInput{
		IMEI: "356938035643809", Name: "Samsung A14", Price: 15000, Quantity: 1,
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestGetProductByIMEI(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)

	created, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		IMEI: "356938035643809", Name: "Samsung A14", Price: 15000, Quantity: 1,
	})
	require.NoError(t, err)

	found, err := svc.GetProductByIMEI(context.Background(), "356938035643809")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetProductByIMEI(context.Background(), "000000000000000")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestUpdateProductQuantityDerivesStockStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)

	product, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		IMEI: "356938035643809", Name: "Samsung A14", Price: 15000, Quantity: 5,
	})
	require.NoError(t, err)

	zero := 0
	updated, err := svc.UpdateProduct(context.Background(), product.ID, &UpdateProductInput{
		Quantity: &zero,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.StockStatusOutOfStock, updated.Status)

	five := 5
	updated, err = svc.UpdateProduct(context.Background(), product.ID, &UpdateProductInput{
		Quantity: &five,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.StockStatusAvailable, updated.Status)
}

func TestGetLowStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newProductService(db)

	low := &entity.Product{Name: "Tecno Spark", IMEI: "111111111111111", Quantity: 2, QuantityAlert: 3}
	healthy := &entity.Product{Name: "Samsung A14", IMEI: "222222222222222", Quantity: 10, QuantityAlert: 3}
	require.NoError(t, db.Create(low).Error)
	require.NoError(t, db.Create(healthy).Error)

	products, err := svc.GetLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Tecno Spark", products[0].Name)
}

func TestAtomicDecrementGuardsAgainstOversell(t *testing.T) {
	db := setupTestDB(t)
	repo := infraRepo.NewProductRepository(db)

	product := &entity.Product{Name: "Samsung A14", IMEI: "333333333333333", Quantity: 3}
	require.NoError(t, db.Create(product).Error)

	ok, err := repo.AtomicDecrementQuantity(context.Background(), product.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	// Only one left; asking for two must fail without changing anything
	ok, err = repo.AtomicDecrementQuantity(context.Background(), product.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	var stored entity.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 1, stored.Quantity)
}
