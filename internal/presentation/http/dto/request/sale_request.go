package request

import "github.com/google/uuid"

// CreateSaleRequest represents an over-the-counter sale request
type CreateSaleRequest struct {
	CustomerID    uuid.UUID `json:"customer_id" binding:"required"`
	ProductID     uuid.UUID `json:"product_id" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,min=1"`
	PaymentMethod string    `json:"payment_method" binding:"omitempty,max=50"`
	AmountPaid    float64   `json:"amount_paid" binding:"min=0"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	CustomerID string `form:"customer_id"`
	ProductID  string `form:"product_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
