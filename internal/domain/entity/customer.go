package entity

import (
	"encoding/json"
	"time"

	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents an installment-sale customer. The purchase being
// financed lives on the customer row itself (total price, deposits so far,
// derived payment status), matching the shop's single-handset-per-plan model.
type Customer struct {
	ID                uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID            uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	FullName          string             `gorm:"size:255;not null" json:"full_name"`
	PhoneNumber       *string            `gorm:"size:50" json:"phone_number,omitempty"`
	IDNumber          *string            `gorm:"size:50;column:id_number" json:"id_number,omitempty"`
	City              string             `gorm:"size:255" json:"city"`
	NextOfKin         *string            `gorm:"size:255" json:"next_of_kin,omitempty"`
	InstallmentPlanID *uuid.UUID         `gorm:"type:uuid;index" json:"installment_plan_id,omitempty"`
	ProductID         *uuid.UUID         `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ProductName       string             `gorm:"size:255" json:"product_name"`
	TotalPrice        int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	AmountDeposited   int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PaymentStatus     enum.PaymentStatus `gorm:"default:0" json:"payment_status"`
	PaymentType       enum.PaymentType   `gorm:"size:50;default:'Installment'" json:"payment_type"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	DeletedAt         gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User            User             `gorm:"foreignKey:UserID" json:"-"`
	InstallmentPlan *InstallmentPlan `gorm:"foreignKey:InstallmentPlanID" json:"installment_plan,omitempty"`
	Product         *Product         `gorm:"foreignKey:ProductID" json:"-"`
	Sales           []Sale           `gorm:"foreignKey:CustomerID" json:"-"`
	Invoices        []Invoice        `gorm:"foreignKey:CustomerID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	return json.Marshal(&struct {
		Alias
		TotalPrice      float64 `json:"total_price"`
		AmountDeposited float64 `json:"amount_deposited"`
		BalanceDue      float64 `json:"balance_due"`
	}{
		Alias:           Alias(c),
		TotalPrice:      float64(c.TotalPrice) / 100,
		AmountDeposited: float64(c.AmountDeposited) / 100,
		BalanceDue:      float64(c.TotalPrice-c.AmountDeposited) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// InstallmentPlan represents a repayment schedule option (e.g. "30 Days")
type InstallmentPlan struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null;unique" json:"name"`
	Days      int       `gorm:"not null" json:"days"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new plan
func (p *InstallmentPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InstallmentPlan model
func (InstallmentPlan) TableName() string {
	return "installment_plans"
}
