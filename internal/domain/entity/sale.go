package entity

import (
	"encoding/json"
	"time"

	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale represents one over-the-counter sale of an inventory item
type Sale struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"customer_id"`
	ProductID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity      int                `gorm:"not null" json:"quantity"`
	UnitPrice     int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	TotalAmount   int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	PaymentMethod string             `gorm:"size:50" json:"payment_method"`
	PaymentStatus enum.PaymentStatus `gorm:"default:0" json:"payment_status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Customer Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Product  Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		UnitPrice   float64 `json:"unit_price"`
		TotalAmount float64 `json:"total_amount"`
	}{
		Alias:       Alias(s),
		UnitPrice:   float64(s.UnitPrice) / 100,
		TotalAmount: float64(s.TotalAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}
