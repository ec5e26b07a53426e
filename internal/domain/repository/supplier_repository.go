package repository

import (
	"context"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	"github.com/dukasmart/phoneshop-api/pkg/pagination"
	"github.com/google/uuid"
)

// SupplierRepository defines the interface for supplier data operations
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error)
}

// SupplierBillRepository defines the interface for supplier ledger entries.
// Bills reconcile exactly like invoices, so it shares PaymentUpdate and the
// FindByRef contract with InvoiceRepository.
type SupplierBillRepository interface {
	Create(ctx context.Context, bill *entity.SupplierBill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SupplierBill, error)
	FindByRef(ctx context.Context, id *uuid.UUID, number string) (*entity.SupplierBill, error)
	List(ctx context.Context, supplierID *uuid.UUID, status *enum.PaymentStatus, params *pagination.PaginationParams) ([]entity.SupplierBill, int64, error)
	ApplyPayment(ctx context.Context, id uuid.UUID, upd *PaymentUpdate) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
