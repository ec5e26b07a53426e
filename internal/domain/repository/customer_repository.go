package repository

import (
	"context"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/dukasmart/phoneshop-api/pkg/pagination"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
	// ListWithDues returns installment customers who still owe money
	ListWithDues(ctx context.Context, params *pagination.PaginationParams) ([]entity.Customer, int64, error)
	// ApplyDeposit persists one deposit reconciliation against the
	// customer's installment balance, compare-and-swapped on
	// amount_deposited. Returns the number of rows updated.
	ApplyDeposit(ctx context.Context, id uuid.UUID, upd *PaymentUpdate) (int64, error)
}

// InstallmentPlanRepository defines the interface for repayment plan lookups
type InstallmentPlanRepository interface {
	Create(ctx context.Context, plan *entity.InstallmentPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InstallmentPlan, error)
	List(ctx context.Context) ([]entity.InstallmentPlan, error)
}
