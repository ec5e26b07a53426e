package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopProductResult represents a handset's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	ProductModel string
	QuantitySold int
	Revenue      float64
}

// DailySalesResult represents sales totals for a single day
type DailySalesResult struct {
	Date    time.Time
	Revenue float64
	Count   int
}

// DebtorResult represents an installment customer with an outstanding balance
type DebtorResult struct {
	CustomerID uuid.UUID
	FullName   string
	Phone      string
	BalanceDue float64
}

// AnalyticsRepository defines interface for dashboard aggregation queries
type AnalyticsRepository interface {
	// GetTopProducts returns top selling handsets by revenue
	GetTopProducts(ctx context.Context, limit int) ([]TopProductResult, error)

	// GetDailySales returns daily sales totals for the last N days
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)

	// GetTotalRevenue returns all-time sales revenue
	GetTotalRevenue(ctx context.Context) (float64, error)

	// GetOutstandingInvoiceBalance returns the sum of balance_due over unpaid invoices
	GetOutstandingInvoiceBalance(ctx context.Context) (float64, error)

	// GetOutstandingSupplierBalance returns the sum of balance_due over unpaid supplier bills
	GetOutstandingSupplierBalance(ctx context.Context) (float64, error)

	// GetTopDebtors returns installment customers with the largest balances
	GetTopDebtors(ctx context.Context, limit int) ([]DebtorResult, error)
}
