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

// ProductService handles inventory operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	IMEI          string
	Model         string
	Name          string
	Price         float64
	OfferPrice    float64
	Quantity      int
	QuantityAlert int
	UpdatedByID   *uuid.UUID
}

// CreateProduct adds a handset to inventory. The IMEI must be unique.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Price < 0 || input.OfferPrice < 0 {
		return nil, apperror.NewBadRequestError("Prices cannot be negative")
	}
	if input.Quantity < 0 {
		return nil, apperror.NewBadRequestError("Quantity cannot be negative")
	}

	if input.IMEI != "" {
		existing, err := s.productRepo.GetByIMEI(ctx, input.IMEI)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A product with this IMEI already exists")
		}
	}

	priceCents, err := priceToCents(input.Price)
	if err != nil {
		return nil, err
	}
	offerCents, err := priceToCents(input.OfferPrice)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		IMEI:          input.IMEI,
		Model:         input.Model,
		Name:          input.Name,
		Price:         priceCents,
		OfferPrice:    offerCents,
		Quantity:      input.Quantity,
		QuantityAlert: input.QuantityAlert,
		Status:        stockStatusFor(input.Quantity),
		UpdatedByID:   input.UpdatedByID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByIMEI retrieves a product by its IMEI
func (s *ProductService) GetProductByIMEI(ctx context.Context, imei string) (*entity.Product, error) {
	product, err := s.productRepo.GetByIMEI(ctx, imei)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	Model         *string
	Name          *string
	Price         *float64
	OfferPrice    *float64
	Quantity      *int
	QuantityAlert *int
	Status        *enum.StockStatus
	UpdatedByID   *uuid.UUID
}

// UpdateProduct updates product details and stock levels
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Model != nil {
		product.Model = *input.Model
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		priceCents, err := priceToCents(*input.Price)
		if err != nil {
			return nil, err
		}
		product.Price = priceCents
	}
	if input.OfferPrice != nil {
		offerCents, err := priceToCents(*input.OfferPrice)
		if err != nil {
			return nil, err
		}
		product.OfferPrice = offerCents
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, apperror.NewBadRequestError("Quantity cannot be negative")
		}
		product.Quantity = *input.Quantity
		product.Status = stockStatusFor(*input.Quantity)
	}
	if input.QuantityAlert != nil {
		product.QuantityAlert = *input.QuantityAlert
	}
	if input.Status != nil {
		product.Status = *input.Status
	}
	if input.UpdatedByID != nil {
		product.UpdatedByID = input.UpdatedByID
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, product.ID)
}

// ListProducts lists inventory with filtering and sorting
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	params.Pagination.Validate()
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(products, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// GetLowStock returns products at or below their alert threshold
func (s *ProductService) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

func stockStatusFor(quantity int) enum.StockStatus {
	if quantity <= 0 {
		return enum.StockStatusOutOfStock
	}
	return enum.StockStatusAvailable
}
