package request

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceItemRequest represents one line item on a new document
type InvoiceItemRequest struct {
	ProductID   *uuid.UUID `json:"product_id"`
	Description string     `json:"description" binding:"required,max=255"`
	Quantity    int        `json:"quantity" binding:"required,min=1"`
	UnitPrice   float64    `json:"unit_price" binding:"min=0"`
}

// CreateInvoiceRequest represents an invoice or quotation creation request
type CreateInvoiceRequest struct {
	DocumentType   string               `json:"document_type" binding:"omitempty,oneof=Invoice Quotation"`
	CustomerID     *uuid.UUID           `json:"customer_id"`
	InvoiceDate    *time.Time           `json:"invoice_date"`
	DueDate        *time.Time           `json:"due_date"`
	TaxAmount      float64              `json:"tax_amount" binding:"min=0"`
	DiscountAmount float64              `json:"discount_amount" binding:"min=0"`
	Notes          *string              `json:"notes"`
	Items          []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PayInvoiceRequest represents a payment against an invoice. The invoice
// may be referenced by ID or by number; the amount arrives under either
// of two names because older clients send new_payment_amount.
type PayInvoiceRequest struct {
	InvoiceID        *uuid.UUID `json:"invoice_id"`
	InvoiceNumber    string     `json:"invoice_number"`
	Amount           *float64   `json:"amount"`
	NewPaymentAmount *float64   `json:"new_payment_amount"`
	PaymentMethod    *string    `json:"payment_method" binding:"omitempty,max=50"`
	PaymentDate      *time.Time `json:"payment_date"`
}

// PaymentAmount resolves the amount from whichever field the client sent
func (r *PayInvoiceRequest) PaymentAmount() float64 {
	if r.NewPaymentAmount != nil {
		return *r.NewPaymentAmount
	}
	if r.Amount != nil {
		return *r.Amount
	}
	return 0
}

// InvoiceFilterRequest represents invoice filter parameters
type InvoiceFilterRequest struct {
	Search       string `form:"search"`
	DocumentType string `form:"document_type"`
	Status       string `form:"status"`
	CustomerID   string `form:"customer_id"`
	StartDate    string `form:"start_date"`
	EndDate      string `form:"end_date"`
	SortBy       string `form:"sort_by"`
	SortOrder    string `form:"sort_order"`
	Page         int    `form:"page"`
	PerPage      int    `form:"per_page"`
	Cursor       string `form:"cursor"`
	Direction    string `form:"direction"`
	Limit        int    `form:"limit"`
}
