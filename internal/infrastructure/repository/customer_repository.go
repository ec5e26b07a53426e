package repository

import (
	"context"
	"errors"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	domainRepo "github.com/dukasmart/phoneshop-api/internal/domain/repository"
	"github.com/dukasmart/phoneshop-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).
		Preload("InstallmentPlan").
		First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "phone_number = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Customer{}, "id = ?", id).Error
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Customer{})
	if search != "" {
		query = query.Where("full_name ILIKE ? OR phone_number ILIKE ? OR id_number ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("InstallmentPlan").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&customers).Error

	return customers, total, err
}

func (r *customerRepository) ListWithDues(ctx context.Context, params *pagination.PaginationParams) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.Customer{}).
		Where("payment_type = ? AND total_price > amount_deposited", "Installment")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("InstallmentPlan").
		Order("created_at ASC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&customers).Error

	return customers, total, err
}

func (r *customerRepository) ApplyDeposit(ctx context.Context, id uuid.UUID, upd *domainRepo.PaymentUpdate) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&entity.Customer{}).
		Where("id = ? AND amount_deposited = ?", id, upd.ExpectedPaid).
		Updates(map[string]interface{}{
			"amount_deposited": upd.AmountPaid,
			"payment_status":   upd.Status,
		})
	return tx.RowsAffected, tx.Error
}

type installmentPlanRepository struct {
	db *gorm.DB
}

// NewInstallmentPlanRepository creates a new installment plan repository
func NewInstallmentPlanRepository(db *gorm.DB) domainRepo.InstallmentPlanRepository {
	return &installmentPlanRepository{db: db}
}

func (r *installmentPlanRepository) Create(ctx context.Context, plan *entity.InstallmentPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *installmentPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InstallmentPlan, error) {
	var plan entity.InstallmentPlan
	err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &plan, err
}

func (r *installmentPlanRepository) List(ctx context.Context) ([]entity.InstallmentPlan, error) {
	var plans []entity.InstallmentPlan
	err := r.db.WithContext(ctx).Order("days ASC").Find(&plans).Error
	return plans, err
}
