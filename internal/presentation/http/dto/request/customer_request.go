package request

import "github.com/google/uuid"

// CreateCustomerRequest represents a customer registration request
type CreateCustomerRequest struct {
	FullName          string     `json:"full_name" binding:"required,min=2,max=255"`
	PhoneNumber       *string    `json:"phone_number" binding:"omitempty,max=50"`
	IDNumber          *string    `json:"id_number" binding:"omitempty,max=50"`
	City              string     `json:"city" binding:"omitempty,max=255"`
	NextOfKin         *string    `json:"next_of_kin" binding:"omitempty,max=255"`
	InstallmentPlanID *uuid.UUID `json:"installment_plan_id"`
	ProductID         *uuid.UUID `json:"product_id"`
	ProductName       string     `json:"product_name" binding:"omitempty,max=255"`
	TotalPrice        float64    `json:"total_price" binding:"min=0"`
	AmountDeposited   float64    `json:"amount_deposited" binding:"min=0"`
	PaymentType       string     `json:"payment_type" binding:"omitempty,oneof=Cash Installment"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	FullName    *string `json:"full_name" binding:"omitempty,min=2,max=255"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=50"`
	IDNumber    *string `json:"id_number" binding:"omitempty,max=50"`
	City        *string `json:"city" binding:"omitempty,max=255"`
	NextOfKin   *string `json:"next_of_kin" binding:"omitempty,max=255"`
}

// RecordDepositRequest represents an installment deposit request
type RecordDepositRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// CreateInstallmentPlanRequest represents a plan creation request
type CreateInstallmentPlanRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
	Days int    `json:"days" binding:"required,min=1"`
}
