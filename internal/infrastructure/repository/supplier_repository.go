package repository

import (
	"context"
	"errors"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	domainRepo "github.com/dukasmart/phoneshop-api/internal/domain/repository"
	"github.com/dukasmart/phoneshop-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) domainRepo.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *supplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &supplier, err
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Supplier{}, "id = ?", id).Error
}

func (r *supplierRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error) {
	var suppliers []entity.Supplier
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Supplier{})
	if search != "" {
		query = query.Where("name ILIKE ? OR shopname ILIKE ? OR phone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&suppliers).Error

	return suppliers, total, err
}

type supplierBillRepository struct {
	db *gorm.DB
}

// NewSupplierBillRepository creates a new supplier bill repository
func NewSupplierBillRepository(db *gorm.DB) domainRepo.SupplierBillRepository {
	return &supplierBillRepository{db: db}
}

func (r *supplierBillRepository) Create(ctx context.Context, bill *entity.SupplierBill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *supplierBillRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SupplierBill, error) {
	var bill entity.SupplierBill
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *supplierBillRepository) FindByRef(ctx context.Context, id *uuid.UUID, number string) (*entity.SupplierBill, error) {
	if id != nil {
		bill, err := r.GetByID(ctx, *id)
		if err != nil || bill != nil {
			return bill, err
		}
	}
	if number == "" {
		return nil, nil
	}

	var bill entity.SupplierBill
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Where("bill_number = ? OR LOWER(REPLACE(bill_number, ' ', '')) = LOWER(REPLACE(?, ' ', ''))", number, number).
		First(&bill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *supplierBillRepository) List(ctx context.Context, supplierID *uuid.UUID, status *enum.PaymentStatus, params *pagination.PaginationParams) ([]entity.SupplierBill, int64, error) {
	var bills []entity.SupplierBill
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.SupplierBill{})
	if supplierID != nil {
		query = query.Where("supplier_id = ?", *supplierID)
	}
	if status != nil {
		query = query.Where("payment_status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Supplier").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&bills).Error

	return bills, total, err
}

func (r *supplierBillRepository) ApplyPayment(ctx context.Context, id uuid.UUID, upd *domainRepo.PaymentUpdate) (int64, error) {
	cols := map[string]interface{}{
		"amount_paid":    upd.AmountPaid,
		"balance_due":    upd.BalanceDue,
		"payment_status": upd.Status,
	}
	if upd.Method != nil {
		cols["payment_method"] = *upd.Method
	}

	tx := r.db.WithContext(ctx).
		Model(&entity.SupplierBill{}).
		Where("id = ? AND amount_paid = ?", id, upd.ExpectedPaid).
		Updates(cols)
	if tx.Error != nil {
		delete(cols, "balance_due")
		tx = r.db.WithContext(ctx).
			Model(&entity.SupplierBill{}).
			Where("id = ? AND amount_paid = ?", id, upd.ExpectedPaid).
			Updates(cols)
	}

	return tx.RowsAffected, tx.Error
}

func (r *supplierBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.SupplierBill{}, "id = ?", id).Error
}
