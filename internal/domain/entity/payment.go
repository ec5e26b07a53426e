package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is an append-only record of one reconciliation event against an
// invoice or a supplier bill. It is a best-effort audit trail, not the
// ledger of record: a failed insert never rolls back the document update.
type Payment struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID      *uuid.UUID `gorm:"type:uuid;index" json:"invoice_id,omitempty"`
	SupplierBillID *uuid.UUID `gorm:"type:uuid;index" json:"supplier_bill_id,omitempty"`
	Amount         int64      `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Method         *string    `gorm:"size:50" json:"method,omitempty"`
	PaidOn         time.Time  `gorm:"type:date;not null" json:"paid_on"`
	CreatedAt      time.Time  `json:"created_at"`

	// Relationships
	Invoice      *Invoice      `gorm:"foreignKey:InvoiceID" json:"-"`
	SupplierBill *SupplierBill `gorm:"foreignKey:SupplierBillID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
