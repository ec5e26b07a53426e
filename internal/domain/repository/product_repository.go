package repository

import (
	"context"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/dukasmart/phoneshop-api/pkg/pagination"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for inventory data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIMEI(ctx context.Context, imei string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	// AtomicDecrementQuantity decrements stock only if enough is on hand.
	// Returns (true, nil) on success, (false, nil) when stock is short.
	AtomicDecrementQuantity(ctx context.Context, id uuid.UUID, amount int) (bool, error)
	// AtomicIncrementQuantity restores stock (returns, cancelled sales)
	AtomicIncrementQuantity(ctx context.Context, id uuid.UUID, amount int) error
}

// ProductFilterParams contains filtering parameters for inventory queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     string
	LowStock   bool
	SortBy     string
	SortOrder  string
}
