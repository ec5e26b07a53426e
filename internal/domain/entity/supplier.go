package entity

import (
	"encoding/json"
	"time"

	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier represents a stock supplier the shop owes money to
type Supplier struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name          string            `gorm:"size:255;not null" json:"name"`
	Email         *string           `gorm:"size:255" json:"email,omitempty"`
	Phone         *string           `gorm:"size:50" json:"phone,omitempty"`
	Address       *string           `gorm:"type:text" json:"address,omitempty"`
	ShopName      *string           `gorm:"size:255;column:shopname" json:"shopname,omitempty"`
	KRAPin        *string           `gorm:"size:50;column:kra_pin" json:"kra_pin,omitempty"`
	Type          enum.SupplierType `gorm:"size:50;default:'distributor'" json:"type"`
	AccountHolder *string           `gorm:"size:255" json:"account_holder,omitempty"`
	AccountNumber *string           `gorm:"size:100" json:"account_number,omitempty"`
	BankName      *string           `gorm:"size:255" json:"bank_name,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Bills []SupplierBill `gorm:"foreignKey:SupplierID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new supplier
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}

// SupplierBill represents a payable ledger entry owed to a supplier.
// Structurally an invoice with the shop as the paying party; it goes
// through the same reconciliation as customer invoices.
type SupplierBill struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	BillNumber    string             `gorm:"size:100;unique;not null" json:"bill_number"`
	SupplierID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"supplier_id"`
	BillDate      time.Time          `gorm:"type:date;not null" json:"bill_date"`
	DueDate       *time.Time         `gorm:"type:date" json:"due_date,omitempty"`
	TotalAmount   int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	AmountPaid    int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	BalanceDue    int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PaymentStatus enum.PaymentStatus `gorm:"default:0" json:"payment_status"`
	PaymentMethod *string            `gorm:"size:50" json:"payment_method,omitempty"`
	Currency      string             `gorm:"size:10;default:'KES'" json:"currency"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Supplier Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Payments []Payment `gorm:"foreignKey:SupplierBillID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (b SupplierBill) MarshalJSON() ([]byte, error) {
	type Alias SupplierBill
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
		AmountPaid  float64 `json:"amount_paid"`
		BalanceDue  float64 `json:"balance_due"`
	}{
		Alias:       Alias(b),
		TotalAmount: float64(b.TotalAmount) / 100,
		AmountPaid:  float64(b.AmountPaid) / 100,
		BalanceDue:  float64(b.BalanceDue) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new supplier bill
func (b *SupplierBill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SupplierBill model
func (SupplierBill) TableName() string {
	return "supplier_bills"
}
