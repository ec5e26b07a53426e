package entity

import (
	"encoding/json"
	"time"

	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a handset in the shop's inventory
type Product struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	IMEI          string           `gorm:"size:100;unique;column:imei" json:"imei"`
	Model         string           `gorm:"size:255;not null" json:"model"`
	Name          string           `gorm:"size:255;not null" json:"name"`
	Price         int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	OfferPrice    int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Quantity      int              `gorm:"default:0" json:"quantity"`
	QuantityAlert int              `gorm:"default:0" json:"quantity_alert"`
	Status        enum.StockStatus `gorm:"size:50;default:'Available'" json:"status"`
	UpdatedByID   *uuid.UUID       `gorm:"type:uuid;index" json:"updated_by,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	UpdatedBy *User  `gorm:"foreignKey:UpdatedByID" json:"-"`
	Sales     []Sale `gorm:"foreignKey:ProductID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price      float64 `json:"price"`
		OfferPrice float64 `json:"offer_price"`
	}{
		Alias:      Alias(p),
		Price:      float64(p.Price) / 100,
		OfferPrice: float64(p.OfferPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "inventory"
}

