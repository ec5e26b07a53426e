package service

import (
	"context"
	"time"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	"github.com/dukasmart/phoneshop-api/internal/domain/repository"
	"github.com/dukasmart/phoneshop-api/pkg/apperror"
	"github.com/dukasmart/phoneshop-api/pkg/pagination"
	"github.com/dukasmart/phoneshop-api/pkg/utils"
	"github.com/google/uuid"
)

// SupplierService handles suppliers and their payable bills
type SupplierService struct {
	supplierRepo repository.SupplierRepository
	billRepo     repository.SupplierBillRepository
	currency     string
}

// NewSupplierService creates a new supplier service
func NewSupplierService(
	supplierRepo repository.SupplierRepository,
	billRepo repository.SupplierBillRepository,
	currency string,
) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		billRepo:     billRepo,
		currency:     currency,
	}
}

// CreateSupplierInput represents the create supplier input
type CreateSupplierInput struct {
	Name          string
	Email         *string
	Phone         *string
	Address       *string
	ShopName      *string
	KRAPin        *string
	Type          enum.SupplierType
	AccountHolder *string
	AccountNumber *string
	BankName      *string
}

// CreateSupplier registers a new supplier
func (s *SupplierService) CreateSupplier(ctx context.Context, input *CreateSupplierInput) (*entity.Supplier, error) {
	supplierType := input.Type
	if supplierType == "" {
		supplierType = enum.SupplierTypeDistributor
	}

	supplier := &entity.Supplier{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		ShopName:      input.ShopName,
		KRAPin:        input.KRAPin,
		Type:          supplierType,
		AccountHolder: input.AccountHolder,
		AccountNumber: input.AccountNumber,
		BankName:      input.BankName,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// GetSupplier retrieves a supplier by ID
func (s *SupplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// UpdateSupplier updates supplier details
func (s *SupplierService) UpdateSupplier(ctx context.Context, id uuid.UUID, input *CreateSupplierInput) (*entity.Supplier, error) {
	supplier, err := s.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		supplier.Name = input.Name
	}
	if input.Email != nil {
		supplier.Email = input.Email
	}
	if input.Phone != nil {
		supplier.Phone = input.Phone
	}
	if input.Address != nil {
		supplier.Address = input.Address
	}
	if input.ShopName != nil {
		supplier.ShopName = input.ShopName
	}
	if input.KRAPin != nil {
		supplier.KRAPin = input.KRAPin
	}
	if input.Type != "" {
		supplier.Type = input.Type
	}
	if input.AccountHolder != nil {
		supplier.AccountHolder = input.AccountHolder
	}
	if input.AccountNumber != nil {
		supplier.AccountNumber = input.AccountNumber
	}
	if input.BankName != nil {
		supplier.BankName = input.BankName
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// DeleteSupplier soft-deletes a supplier
func (s *SupplierService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.GetSupplier(ctx, id)
	if err != nil {
		return err
	}
	return s.supplierRepo.Delete(ctx, supplier.ID)
}

// ListSuppliers lists suppliers with optional search
func (s *SupplierService) ListSuppliers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Supplier], error) {
	params.Validate()
	suppliers, total, err := s.supplierRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(suppliers, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// CreateBillInput represents the create supplier bill input
type CreateBillInput struct {
	SupplierID  uuid.UUID
	BillDate    *time.Time
	DueDate     *time.Time
	TotalAmount float64
	Notes       *string
}

// CreateBill records a new payable owed to a supplier
func (s *SupplierService) CreateBill(ctx context.Context, input *CreateBillInput) (*entity.SupplierBill, error) {
	if input.TotalAmount <= 0 {
		return nil, apperror.NewBadRequestError("Bill total must be positive")
	}

	supplier, err := s.GetSupplier(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}

	billDate := time.Now()
	if input.BillDate != nil {
		billDate = *input.BillDate
	}

	totalCents, err := priceToCents(input.TotalAmount)
	if err != nil {
		return nil, err
	}
	bill := &entity.SupplierBill{
		BillNumber:    utils.GenerateDocumentNo("BILL"),
		SupplierID:    supplier.ID,
		BillDate:      billDate,
		DueDate:       input.DueDate,
		TotalAmount:   totalCents,
		AmountPaid:    0,
		BalanceDue:    totalCents,
		PaymentStatus: enum.PaymentStatusUnpaid,
		Currency:      s.currency,
		Notes:         input.Notes,
	}
	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// GetBill retrieves a supplier bill by ID
func (s *SupplierService) GetBill(ctx context.Context, id uuid.UUID) (*entity.SupplierBill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Supplier bill")
	}
	return bill, nil
}

// ListBills lists supplier bills, optionally filtered by supplier and status
func (s *SupplierService) ListBills(ctx context.Context, supplierID *uuid.UUID, status *enum.PaymentStatus, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.SupplierBill], error) {
	params.Validate()
	bills, total, err := s.billRepo.List(ctx, supplierID, status, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(bills, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// DeleteBill soft-deletes a supplier bill. Bills with recorded payments
// are kept for the books.
func (s *SupplierService) DeleteBill(ctx context.Context, id uuid.UUID) error {
	bill, err := s.GetBill(ctx, id)
	if err != nil {
		return err
	}
	if bill.AmountPaid > 0 {
		return apperror.NewBadRequestError("Bills with recorded payments cannot be deleted")
	}
	return s.billRepo.Delete(ctx, bill.ID)
}
