package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	domainRepo "github.com/dukasmart/phoneshop-api/internal/domain/repository"
	infraRepo "github.com/dukasmart/phoneshop-api/internal/infrastructure/repository"
	"github.com/dukasmart/phoneshop-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// failingSaleRepo rejects every insert
type failingSaleRepo struct {
	domainRepo.SaleRepository
}

func (failingSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	return errors.New("sales table unavailable")
}

func seedSaleFixtures(t *testing.T, db *gorm.DB, quantity int) (*entity.User, *entity.Customer, *entity.Product) {
	t.Helper()
	staff := seedStaff(t, db, "seller-"+uuid.NewString()[:8])
	customer := &entity.Customer{
		UserID:      staff.ID,
		FullName:    "Walk-in Customer",
		ProductName: "Samsung A14",
	}
	require.NoError(t, db.Create(customer).Error)
	product := &entity.Product{
		Name:     "Samsung A14",
		IMEI:     uuid.NewString(),
		Price:    1500000, // KES 15000.00
		Quantity: quantity,
	}
	require.NoError(t, db.Create(product).Error)
	return staff, customer, product
}

func TestCreateSaleDecrementsStock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(
		infraRepo.NewSaleRepository(db),
		infraRepo.NewProductRepository(db),
		infraRepo.NewCustomerRepository(db),
	)
	staff, customer, product := seedSaleFixtures(t, db, 5)

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID:        staff.ID,
		CustomerID:    customer.ID,
		ProductID:     product.ID,
		Quantity:      2,
		PaymentMethod: "M-Pesa",
		AmountPaid:    30000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3000000), sale.TotalAmount)
	assert.Equal(t, enum.PaymentStatusPaid, sale.PaymentStatus)

	var stored entity.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 3, stored.Quantity)
}

func TestCreateSaleUsesOfferPrice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(
		infraRepo.NewSaleRepository(db),
		infraRepo.NewProductRepository(db),
		infraRepo.NewCustomerRepository(db),
	)
	staff, customer, product := seedSaleFixtures(t, db, 5)
	require.NoError(t, db.Model(&entity.Product{}).
		Where("id = ?", product.ID).
		Update("offer_price", 1200000).Error)

	sale, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID:     staff.ID,
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Quantity:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1200000), sale.UnitPrice)
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(
		infraRepo.NewSaleRepository(db),
		infraRepo.NewProductRepository(db),
		infraRepo.NewCustomerRepository(db),
	)
	staff, customer, product := seedSaleFixtures(t, db, 1)

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID:     staff.ID,
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Quantity:   2,
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	// Stock untouched
	var stored entity.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 1, stored.Quantity)
}

func TestCreateSaleRestoresStockWhenPersistFails(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(
		failingSaleRepo{},
		infraRepo.NewProductRepository(db),
		infraRepo.NewCustomerRepository(db),
	)
	staff, customer, product := seedSaleFixtures(t, db, 5)

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID:     staff.ID,
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Quantity:   2,
	})
	require.Error(t, err)

	var stored entity.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, 5, stored.Quantity)
}

func TestCreateSaleRejectsNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSaleService(
		infraRepo.NewSaleRepository(db),
		infraRepo.NewProductRepository(db),
		infraRepo.NewCustomerRepository(db),
	)

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID:     uuid.New(),
		CustomerID: uuid.New(),
		ProductID:  uuid.New(),
		Quantity:   0,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
