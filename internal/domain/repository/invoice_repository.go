package repository

import (
	"context"
	"time"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	"github.com/dukasmart/phoneshop-api/pkg/pagination"
	"github.com/google/uuid"
)

// PaymentUpdate carries the result of one reconciliation to the store.
// ExpectedPaid is the amount_paid the calculation was based on; the write
// must only land if the row still holds that value (compare-and-swap), so
// concurrent payments against the same document serialize instead of
// overwriting each other.
type PaymentUpdate struct {
	ExpectedPaid int64
	AmountPaid   int64
	BalanceDue   int64
	Status       enum.PaymentStatus
	Method       *string
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*entity.Invoice, error)
	// FindByRef resolves an invoice by primary key first, falling back to
	// the document number (forgiving match: trimmed, space-stripped,
	// case-insensitive). Returns nil when neither matches.
	FindByRef(ctx context.Context, id *uuid.UUID, number string) (*entity.Invoice, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	ListWithCursor(ctx context.Context, params *InvoiceCursorFilterParams) ([]entity.Invoice, error)
	// ApplyPayment persists one reconciliation result. Returns the number
	// of rows updated: 0 means the CAS condition failed and the caller
	// should re-read and retry. If the store rejects the write (some
	// deployments enforce balance_due as a generated column), the update
	// is retried once omitting that field.
	ApplyPayment(ctx context.Context, id uuid.UUID, upd *PaymentUpdate) (int64, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination   *pagination.PaginationParams
	Search       string
	DocumentType *enum.DocumentType
	Status       *enum.PaymentStatus
	CustomerID   *uuid.UUID
	StartDate    *time.Time
	EndDate      *time.Time
	SortBy       string
	SortOrder    string
}

// InvoiceCursorFilterParams contains cursor-based filtering parameters for invoice queries
type InvoiceCursorFilterParams struct {
	Cursor       *pagination.CursorParams
	Search       string
	DocumentType *enum.DocumentType
	Status       *enum.PaymentStatus
	CustomerID   *uuid.UUID
}

// InvoiceItemRepository defines the interface for invoice line item operations
type InvoiceItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.InvoiceItem) error
	ListByInvoiceNumber(ctx context.Context, invoiceNumber string) ([]entity.InvoiceItem, error)
	DeleteByInvoiceID(ctx context.Context, invoiceID uuid.UUID) error
}

// PaymentRepository defines the interface for the append-only payment log
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Payment, int64, error)
}
