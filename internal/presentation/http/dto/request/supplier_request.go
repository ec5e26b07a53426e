package request

import (
	"time"

	"github.com/google/uuid"
)

// CreateSupplierRequest represents a supplier registration request
type CreateSupplierRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	Address       *string `json:"address"`
	ShopName      *string `json:"shopname" binding:"omitempty,max=255"`
	KRAPin        *string `json:"kra_pin" binding:"omitempty,max=50"`
	Type          string  `json:"type" binding:"omitempty,oneof=distributor wholesaler importer"`
	AccountHolder *string `json:"account_holder" binding:"omitempty,max=255"`
	AccountNumber *string `json:"account_number" binding:"omitempty,max=100"`
	BankName      *string `json:"bank_name" binding:"omitempty,max=255"`
}

// CreateBillRequest represents a supplier bill creation request
type CreateBillRequest struct {
	SupplierID  uuid.UUID  `json:"supplier_id" binding:"required"`
	BillDate    *time.Time `json:"bill_date"`
	DueDate     *time.Time `json:"due_date"`
	TotalAmount float64    `json:"total_amount" binding:"required,gt=0"`
	Notes       *string    `json:"notes"`
}

// PayBillRequest represents a payment against a supplier bill
type PayBillRequest struct {
	BillID        *uuid.UUID `json:"bill_id"`
	BillNumber    string     `json:"bill_number"`
	Amount        float64    `json:"amount"`
	PaymentMethod *string    `json:"payment_method" binding:"omitempty,max=50"`
}
