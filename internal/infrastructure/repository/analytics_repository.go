package repository

import (
	"context"

	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	domainRepo "github.com/dukasmart/phoneshop-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult
	err := r.db.WithContext(ctx).
		Table("sales").
		Select(`
			inventory.id as product_id,
			inventory.name as product_name,
			inventory.model as product_model,
			SUM(sales.quantity) as quantity_sold,
			SUM(sales.total_amount) / 100.0 as revenue
		`).
		Joins("JOIN inventory ON inventory.id = sales.product_id").
		Where("sales.deleted_at IS NULL").
		Group("inventory.id, inventory.name, inventory.model").
		Order("revenue DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult
	err := r.db.WithContext(ctx).
		Table("sales").
		Select(`
			DATE(created_at) as date,
			SUM(total_amount) / 100.0 as revenue,
			COUNT(*) as count
		`).
		Where("created_at >= CURRENT_DATE - ? * INTERVAL '1 day'", days).
		Where("deleted_at IS NULL").
		Group("DATE(created_at)").
		Order("date DESC").
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) GetTotalRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).
		Table("sales").
		Select("COALESCE(SUM(total_amount), 0) / 100.0").
		Where("deleted_at IS NULL").
		Scan(&revenue).Error
	return revenue, err
}

func (r *analyticsRepository) GetOutstandingInvoiceBalance(ctx context.Context) (float64, error) {
	var balance float64
	err := r.db.WithContext(ctx).
		Table("invoices").
		Select("COALESCE(SUM(total_amount - amount_paid), 0) / 100.0").
		Where("document_type = ? AND payment_status != ? AND deleted_at IS NULL",
			enum.DocumentTypeInvoice, enum.PaymentStatusPaid).
		Scan(&balance).Error
	return balance, err
}

func (r *analyticsRepository) GetOutstandingSupplierBalance(ctx context.Context) (float64, error) {
	var balance float64
	err := r.db.WithContext(ctx).
		Table("supplier_bills").
		Select("COALESCE(SUM(total_amount - amount_paid), 0) / 100.0").
		Where("payment_status != ? AND deleted_at IS NULL", enum.PaymentStatusPaid).
		Scan(&balance).Error
	return balance, err
}

func (r *analyticsRepository) GetTopDebtors(ctx context.Context, limit int) ([]domainRepo.DebtorResult, error) {
	var results []domainRepo.DebtorResult
	err := r.db.WithContext(ctx).
		Table("customers").
		Select(`
			id as customer_id,
			full_name,
			COALESCE(phone_number, '') as phone,
			(total_price - amount_deposited) / 100.0 as balance_due
		`).
		Where("payment_type = ? AND total_price > amount_deposited AND deleted_at IS NULL", "Installment").
		Order("balance_due DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}
