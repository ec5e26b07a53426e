package repository

import (
	"context"
	"time"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/dukasmart/phoneshop-api/pkg/pagination"
	"github.com/google/uuid"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	ProductID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
