package entity

import (
	"encoding/json"
	"time"

	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice represents a billable document and its payment progress.
// Quotations share the table, discriminated by DocumentType; they never
// accept payments.
//
// Invariants held after every reconciliation:
//   - 0 <= amount_paid <= total_amount
//   - balance_due = total_amount - amount_paid
//   - payment_status is a pure function of the two accumulators
type Invoice struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNumber   string             `gorm:"size:100;unique;not null" json:"invoice_number"`
	ReferenceNumber *string            `gorm:"size:100" json:"reference_number,omitempty"`
	DocumentType    enum.DocumentType  `gorm:"default:0" json:"document_type"`
	CustomerID      *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CreatedByID     *uuid.UUID         `gorm:"type:uuid;index" json:"created_by,omitempty"`
	InvoiceDate     time.Time          `gorm:"type:date;not null" json:"invoice_date"`
	DueDate         *time.Time         `gorm:"type:date" json:"due_date,omitempty"`
	SubTotal        int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxAmount       int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	DiscountAmount  int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TotalAmount     int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	AmountPaid      int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	BalanceDue      int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PaymentStatus   enum.PaymentStatus `gorm:"default:0" json:"payment_status"`
	PaymentMethod   *string            `gorm:"size:50" json:"payment_method,omitempty"`
	Currency        string             `gorm:"size:10;default:'KES'" json:"currency"`
	Notes           *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Customer  *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CreatedBy *User         `gorm:"foreignKey:CreatedByID" json:"-"`
	Items     []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Payments  []Payment     `gorm:"foreignKey:InvoiceID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		SubTotal       float64 `json:"subtotal"`
		TaxAmount      float64 `json:"tax_amount"`
		DiscountAmount float64 `json:"discount_amount"`
		TotalAmount    float64 `json:"total_amount"`
		AmountPaid     float64 `json:"amount_paid"`
		BalanceDue     float64 `json:"balance_due"`
	}{
		Alias:          Alias(i),
		SubTotal:       float64(i.SubTotal) / 100,
		TaxAmount:      float64(i.TaxAmount) / 100,
		DiscountAmount: float64(i.DiscountAmount) / 100,
		TotalAmount:    float64(i.TotalAmount) / 100,
		AmountPaid:     float64(i.AmountPaid) / 100,
		BalanceDue:     float64(i.BalanceDue) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem represents a line item on an invoice or quotation
type InvoiceItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID   *uuid.UUID     `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Description string         `gorm:"size:255;not null" json:"description"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	UnitPrice   int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total       int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Invoice Invoice  `gorm:"foreignKey:InvoiceID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (it InvoiceItem) MarshalJSON() ([]byte, error) {
	type Alias InvoiceItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(it),
		UnitPrice: float64(it.UnitPrice) / 100,
		Total:     float64(it.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
