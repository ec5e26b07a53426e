package repository

import (
	"context"
	"errors"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	domainRepo "github.com/dukasmart/phoneshop-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByNumber(ctx context.Context, number string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	// Upstream callers are sloppy about whitespace and case in typed-in
	// invoice numbers, so match forgivingly.
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("invoice_number = ? OR LOWER(REPLACE(invoice_number, ' ', '')) = LOWER(REPLACE(?, ' ', ''))", number, number).
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) FindByRef(ctx context.Context, id *uuid.UUID, number string) (*entity.Invoice, error) {
	if id != nil {
		invoice, err := r.GetByID(ctx, *id)
		if err != nil || invoice != nil {
			return invoice, err
		}
	}
	if number != "" {
		return r.GetByNumber(ctx, number)
	}
	return nil, nil
}

func (r *invoiceRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Invoice{}, "id = ?", id).Error
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{})

	if params.Search != "" {
		query = query.Where("invoice_number ILIKE ?", "%"+params.Search+"%")
	}
	if params.DocumentType != nil {
		query = query.Where("document_type = ?", *params.DocumentType)
	}
	if params.Status != nil {
		query = query.Where("payment_status = ?", *params.Status)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.StartDate != nil {
		query = query.Where("invoice_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("invoice_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	sortOrder := "desc"
	if params.SortOrder == "asc" {
		sortOrder = "asc"
	}

	err := query.
		Preload("Customer").
		Order(sortBy + " " + sortOrder).
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) ListWithCursor(ctx context.Context, params *domainRepo.InvoiceCursorFilterParams) ([]entity.Invoice, error) {
	var invoices []entity.Invoice

	query := r.db.WithContext(ctx).Model(&entity.Invoice{})

	if params.Search != "" {
		query = query.Where("invoice_number ILIKE ?", "%"+params.Search+"%")
	}
	if params.DocumentType != nil {
		query = query.Where("document_type = ?", *params.DocumentType)
	}
	if params.Status != nil {
		query = query.Where("payment_status = ?", *params.Status)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		if params.Cursor.Direction == "prev" {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	// Fetch one extra row so the caller can detect whether more pages exist
	err = query.
		Preload("Customer").
		Order("created_at DESC, id DESC").
		Limit(params.Cursor.Limit + 1).
		Find(&invoices).Error

	return invoices, err
}

func (r *invoiceRepository) ApplyPayment(ctx context.Context, id uuid.UUID, upd *domainRepo.PaymentUpdate) (int64, error) {
	cols := map[string]interface{}{
		"amount_paid":    upd.AmountPaid,
		"balance_due":    upd.BalanceDue,
		"payment_status": upd.Status,
	}
	if upd.Method != nil {
		cols["payment_method"] = *upd.Method
	}

	tx := r.db.WithContext(ctx).
		Model(&entity.Invoice{}).
		Where("id = ? AND amount_paid = ?", id, upd.ExpectedPaid).
		Updates(cols)
	if tx.Error != nil {
		// Some deployments enforce balance_due as a generated column;
		// retry the same update without it.
		delete(cols, "balance_due")
		tx = r.db.WithContext(ctx).
			Model(&entity.Invoice{}).
			Where("id = ? AND amount_paid = ?", id, upd.ExpectedPaid).
			Updates(cols)
	}

	return tx.RowsAffected, tx.Error
}

type invoiceItemRepository struct {
	db *gorm.DB
}

// NewInvoiceItemRepository creates a new invoice item repository
func NewInvoiceItemRepository(db *gorm.DB) domainRepo.InvoiceItemRepository {
	return &invoiceItemRepository{db: db}
}

func (r *invoiceItemRepository) CreateBatch(ctx context.Context, items []entity.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *invoiceItemRepository) ListByInvoiceNumber(ctx context.Context, invoiceNumber string) ([]entity.InvoiceItem, error) {
	var items []entity.InvoiceItem
	err := r.db.WithContext(ctx).
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Where("invoices.invoice_number = ?", invoiceNumber).
		Order("invoice_items.created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *invoiceItemRepository) DeleteByInvoiceID(ctx context.Context, invoiceID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.InvoiceItem{}, "invoice_id = ?", invoiceID).Error
}
