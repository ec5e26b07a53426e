package service

import (
	"context"

	"github.com/dukasmart/phoneshop-api/internal/domain/repository"
)

// DashboardService aggregates the shop's headline numbers
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
	}
}

// DashboardStats represents the dashboard summary payload
type DashboardStats struct {
	TotalRevenue        float64                       `json:"total_revenue"`
	OutstandingInvoices float64                       `json:"outstanding_invoices"`
	OutstandingBills    float64                       `json:"outstanding_bills"`
	LowStockCount       int                           `json:"low_stock_count"`
	TopProducts         []repository.TopProductResult `json:"top_products"`
	DailySales          []repository.DailySalesResult `json:"daily_sales"`
	TopDebtors          []repository.DebtorResult     `json:"top_debtors"`
}

// GetStats builds the dashboard summary. Each aggregate is fetched
// independently; the first failure aborts the whole call.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	revenue, err := s.analyticsRepo.GetTotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	outstandingInvoices, err := s.analyticsRepo.GetOutstandingInvoiceBalance(ctx)
	if err != nil {
		return nil, err
	}
	outstandingBills, err := s.analyticsRepo.GetOutstandingSupplierBalance(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.analyticsRepo.GetTopProducts(ctx, 5)
	if err != nil {
		return nil, err
	}
	dailySales, err := s.analyticsRepo.GetDailySales(ctx, 30)
	if err != nil {
		return nil, err
	}
	topDebtors, err := s.analyticsRepo.GetTopDebtors(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalRevenue:        revenue,
		OutstandingInvoices: outstandingInvoices,
		OutstandingBills:    outstandingBills,
		LowStockCount:       len(lowStock),
		TopProducts:         topProducts,
		DailySales:          dailySales,
		TopDebtors:          topDebtors,
	}, nil
}
