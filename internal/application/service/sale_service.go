package service

import (
	"context"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	"github.com/dukasmart/phoneshop-api/internal/domain/repository"
	"github.com/dukasmart/phoneshop-api/pkg/apperror"
	"github.com/dukasmart/phoneshop-api/pkg/pagination"
	"github.com/google/uuid"
)

// SaleService handles over-the-counter sales
type SaleService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	UserID        uuid.UUID
	CustomerID    uuid.UUID
	ProductID     uuid.UUID
	Quantity      int
	PaymentMethod string
	AmountPaid    float64
}

// CreateSale sells product stock to a customer. Stock is decremented
// atomically first so concurrent sales can never oversell; if the sale
// record then fails to persist, the stock is restored.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if input.Quantity <= 0 {
		return nil, apperror.NewBadRequestError("Quantity must be positive")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	unitPrice := product.Price
	if product.OfferPrice > 0 && product.OfferPrice < product.Price {
		unitPrice = product.OfferPrice
	}
	totalAmount := unitPrice * int64(input.Quantity)

	paidCents, err := priceToCents(input.AmountPaid)
	if err != nil {
		return nil, err
	}
	if paidCents > totalAmount {
		paidCents = totalAmount
	}

	ok, err := s.productRepo.AtomicDecrementQuantity(ctx, product.ID, input.Quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewConflictError("Insufficient stock")
	}

	sale := &entity.Sale{
		UserID:        input.UserID,
		CustomerID:    input.CustomerID,
		ProductID:     input.ProductID,
		Quantity:      input.Quantity,
		UnitPrice:     unitPrice,
		TotalAmount:   totalAmount,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: enum.PaymentStatusFor(totalAmount, paidCents),
	}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		// Put the stock back; the sale never happened.
		if restoreErr := s.productRepo.AtomicIncrementQuantity(ctx, product.ID, input.Quantity); restoreErr != nil {
			return nil, restoreErr
		}
		return nil, err
	}

	return sale, nil
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	params.Pagination.Validate()
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(sales, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}
