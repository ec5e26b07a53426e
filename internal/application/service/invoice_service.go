package service

import (
	"context"
	"time"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	"github.com/dukasmart/phoneshop-api/internal/domain/repository"
	"github.com/dukasmart/phoneshop-api/pkg/apperror"
	"github.com/dukasmart/phoneshop-api/pkg/pagination"
	"github.com/dukasmart/phoneshop-api/pkg/utils"
	"github.com/google/uuid"
)

// InvoiceService handles invoice and quotation lifecycle. Payments are
// the PaymentService's job.
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	itemRepo     repository.InvoiceItemRepository
	customerRepo repository.CustomerRepository
	currency     string
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	itemRepo repository.InvoiceItemRepository,
	customerRepo repository.CustomerRepository,
	currency string,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		currency:     currency,
	}
}

// InvoiceItemInput represents one line item on a new document
type InvoiceItemInput struct {
	ProductID   *uuid.UUID
	Description string
	Quantity    int
	UnitPrice   float64
}

// CreateInvoiceInput represents the create invoice/quotation input
type CreateInvoiceInput struct {
	DocumentType   enum.DocumentType
	CustomerID     *uuid.UUID
	CreatedByID    *uuid.UUID
	InvoiceDate    *time.Time
	DueDate        *time.Time
	TaxAmount      float64
	DiscountAmount float64
	Notes          *string
	Items          []InvoiceItemInput
}

// CreateInvoice creates an invoice or quotation with its line items. The
// document number is generated; totals are derived from the items.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("At least one line item is required")
	}
	if input.TaxAmount < 0 || input.DiscountAmount < 0 {
		return nil, apperror.NewBadRequestError("Amounts cannot be negative")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	var subTotal int64
	items := make([]entity.InvoiceItem, 0, len(input.Items))
	for _, it := range input.Items {
		if it.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Line item quantity must be positive")
		}
		if it.UnitPrice < 0 {
			return nil, apperror.NewBadRequestError("Line item price cannot be negative")
		}
		unitCents, err := priceToCents(it.UnitPrice)
		if err != nil {
			return nil, err
		}
		lineTotal := unitCents * int64(it.Quantity)
		subTotal += lineTotal
		items = append(items, entity.InvoiceItem{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   unitCents,
			Total:       lineTotal,
		})
	}

	taxCents, err := priceToCents(input.TaxAmount)
	if err != nil {
		return nil, err
	}
	discountCents, err := priceToCents(input.DiscountAmount)
	if err != nil {
		return nil, err
	}
	totalCents := subTotal + taxCents - discountCents
	if totalCents < 0 {
		totalCents = 0
	}

	prefix := "INV"
	if input.DocumentType == enum.DocumentTypeQuotation {
		prefix = "QUO"
	}

	invoiceDate := time.Now()
	if input.InvoiceDate != nil {
		invoiceDate = *input.InvoiceDate
	}

	refNo := utils.GenerateReferenceNo("REF")
	invoice := &entity.Invoice{
		InvoiceNumber:   utils.GenerateDocumentNo(prefix),
		ReferenceNumber: &refNo,
		DocumentType:    input.DocumentType,
		CustomerID:      input.CustomerID,
		CreatedByID:     input.CreatedByID,
		InvoiceDate:     invoiceDate,
		DueDate:         input.DueDate,
		SubTotal:        subTotal,
		TaxAmount:       taxCents,
		DiscountAmount:  discountCents,
		TotalAmount:     totalCents,
		AmountPaid:      0,
		BalanceDue:      totalCents,
		PaymentStatus:   enum.PaymentStatusUnpaid,
		Currency:        s.currency,
		Notes:           input.Notes,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].InvoiceID = invoice.ID
	}
	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}
	invoice.Items = items

	return invoice, nil
}

// GetInvoice retrieves an invoice with its line items
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// GetInvoiceByNumber retrieves an invoice by its document number
func (s *InvoiceService) GetInvoiceByNumber(ctx context.Context, number string) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoiceItems returns the line items for an invoice number
func (s *InvoiceService) ListInvoiceItems(ctx context.Context, invoiceNumber string) ([]entity.InvoiceItem, error) {
	return s.itemRepo.ListByInvoiceNumber(ctx, invoiceNumber)
}

// ListInvoices lists documents with page-based pagination
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	params.Pagination.Validate()
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(invoices, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// ListInvoicesWithCursor lists documents with cursor-based pagination,
// for clients that scroll rather than page.
func (s *InvoiceService) ListInvoicesWithCursor(ctx context.Context, params *repository.InvoiceCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Invoice], error) {
	params.Cursor.Validate()
	invoices, err := s.invoiceRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	meta, invoices := pagination.NewCursorPagination(invoices, params.Cursor.Limit,
		func(i entity.Invoice) string { return i.ID.String() },
		func(i entity.Invoice) time.Time { return i.CreatedAt },
	)
	meta.HasPrev = params.Cursor.Cursor != ""

	return pagination.NewCursorPaginatedResult(invoices, meta), nil
}

// ConvertQuotation turns a quotation into a payable invoice
func (s *InvoiceService) ConvertQuotation(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.DocumentType != enum.DocumentTypeQuotation {
		return nil, apperror.NewBadRequestError("Only quotations can be converted")
	}

	invoice.DocumentType = enum.DocumentTypeInvoice
	invoice.InvoiceNumber = utils.GenerateDocumentNo("INV")
	invoice.InvoiceDate = time.Now()
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// DeleteInvoice soft-deletes a document. Paid or partially paid invoices
// are kept for the books.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return err
	}
	if invoice.DocumentType == enum.DocumentTypeInvoice && invoice.AmountPaid > 0 {
		return apperror.NewBadRequestError("Invoices with recorded payments cannot be deleted")
	}
	return s.invoiceRepo.Delete(ctx, invoice.ID)
}
