package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	"github.com/dukasmart/phoneshop-api/internal/domain/repository"
	"github.com/dukasmart/phoneshop-api/pkg/apperror"
	"github.com/dukasmart/phoneshop-api/pkg/pagination"
	"github.com/dukasmart/phoneshop-api/pkg/phone"
	"github.com/dukasmart/phoneshop-api/pkg/sms"
	"github.com/google/uuid"
)

// CustomerService handles installment customer operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	planRepo     repository.InstallmentPlanRepository
	smsSender    sms.Sender
	currency     string
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	planRepo repository.InstallmentPlanRepository,
	smsSender sms.Sender,
	currency string,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		planRepo:     planRepo,
		smsSender:    smsSender,
		currency:     currency,
	}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	UserID            uuid.UUID
	FullName          string
	PhoneNumber       *string
	IDNumber          *string
	City              string
	NextOfKin         *string
	InstallmentPlanID *uuid.UUID
	ProductID         *uuid.UUID
	ProductName       string
	TotalPrice        float64
	AmountDeposited   float64
	PaymentType       enum.PaymentType
}

// CreateCustomer registers a new customer together with the purchase being
// financed. An opening deposit is allowed and sets the initial status.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.TotalPrice < 0 || input.AmountDeposited < 0 {
		return nil, apperror.NewBadRequestError("Amounts cannot be negative")
	}
	if input.InstallmentPlanID != nil {
		plan, err := s.planRepo.GetByID(ctx, *input.InstallmentPlanID)
		if err != nil {
			return nil, err
		}
		if plan == nil {
			return nil, apperror.NewNotFoundError("Installment plan")
		}
	}

	totalCents, err := priceToCents(input.TotalPrice)
	if err != nil {
		return nil, err
	}
	depositCents, err := priceToCents(input.AmountDeposited)
	if err != nil {
		return nil, err
	}
	if depositCents > totalCents {
		depositCents = totalCents
	}

	paymentType := input.PaymentType
	if paymentType == "" {
		paymentType = enum.PaymentTypeInstallment
	}

	customer := &entity.Customer{
		UserID:            input.UserID,
		FullName:          input.FullName,
		PhoneNumber:       input.PhoneNumber,
		IDNumber:          input.IDNumber,
		City:              input.City,
		NextOfKin:         input.NextOfKin,
		InstallmentPlanID: input.InstallmentPlanID,
		ProductID:         input.ProductID,
		ProductName:       input.ProductName,
		TotalPrice:        totalCents,
		AmountDeposited:   depositCents,
		PaymentStatus:     enum.PaymentStatusFor(totalCents, depositCents),
		PaymentType:       paymentType,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	FullName    *string
	PhoneNumber *string
	IDNumber    *string
	City        *string
	NextOfKin   *string
}

// UpdateCustomer updates a customer's contact details. Money fields move
// only through RecordDeposit.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		customer.FullName = *input.FullName
	}
	if input.PhoneNumber != nil {
		customer.PhoneNumber = input.PhoneNumber
	}
	if input.IDNumber != nil {
		customer.IDNumber = input.IDNumber
	}
	if input.City != nil {
		customer.City = *input.City
	}
	if input.NextOfKin != nil {
		customer.NextOfKin = input.NextOfKin
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer soft-deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, customer.ID)
}

// ListCustomers lists customers with optional search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	params.Validate()
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(customers, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// ListDebtors lists installment customers who still owe money
func (s *CustomerService) ListDebtors(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Customer], error) {
	params.Validate()
	customers, total, err := s.customerRepo.ListWithDues(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(customers, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// ListInstallmentPlans returns the available repayment plans
func (s *CustomerService) ListInstallmentPlans(ctx context.Context) ([]entity.InstallmentPlan, error) {
	return s.planRepo.List(ctx)
}

// DepositResult is the post-deposit snapshot of the customer's plan
type DepositResult struct {
	CustomerID           uuid.UUID          `json:"customer_id"`
	FullName             string             `json:"full_name"`
	TotalPrice           float64            `json:"total_price"`
	AmountDeposited      float64            `json:"amount_deposited"`
	BalanceDue           float64            `json:"balance_due"`
	PaymentStatus        enum.PaymentStatus `json:"payment_status"`
	AmountApplied        float64            `json:"amount_applied"`
	OverpaymentDiscarded float64            `json:"overpayment_discarded"`
}

// RecordDeposit applies one installment deposit against the customer's
// balance. Same clamp-and-derive calculation as invoice payments, with a
// best-effort confirmation SMS.
func (s *CustomerService) RecordDeposit(ctx context.Context, id uuid.UUID, amount float64) (*DepositResult, error) {
	amountCents, err := toCents(amount)
	if err != nil {
		return nil, err
	}

	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	var newPaid, balance, discarded int64
	var status enum.PaymentStatus
	for attempt := 0; ; attempt++ {
		newPaid, balance, discarded, status = reconcile(customer.TotalPrice, customer.AmountDeposited, amountCents)

		rows, err := s.customerRepo.ApplyDeposit(ctx, customer.ID, &repository.PaymentUpdate{
			ExpectedPaid: customer.AmountDeposited,
			AmountPaid:   newPaid,
			BalanceDue:   balance,
			Status:       status,
		})
		if err != nil {
			return nil, err
		}
		if rows > 0 {
			break
		}
		if attempt+1 >= maxReconcileAttempts {
			return nil, apperror.NewConflictError("Customer was updated concurrently, please retry")
		}
		refreshed, err := s.customerRepo.GetByID(ctx, customer.ID)
		if err != nil {
			return nil, err
		}
		if refreshed == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		customer = refreshed
	}

	applied := amountCents - discarded
	s.notifyDeposit(ctx, customer, applied, balance)

	return &DepositResult{
		CustomerID:           customer.ID,
		FullName:             customer.FullName,
		TotalPrice:           float64(customer.TotalPrice) / 100,
		AmountDeposited:      float64(newPaid) / 100,
		BalanceDue:           float64(balance) / 100,
		PaymentStatus:        status,
		AmountApplied:        float64(applied) / 100,
		OverpaymentDiscarded: float64(discarded) / 100,
	}, nil
}

func (s *CustomerService) notifyDeposit(ctx context.Context, customer *entity.Customer, appliedCents, balanceCents int64) {
	if appliedCents <= 0 || customer.PhoneNumber == nil {
		return
	}
	to, ok := phone.Normalize(*customer.PhoneNumber)
	if !ok {
		return
	}

	var message string
	if balanceCents == 0 {
		message = fmt.Sprintf(
			"Dear %s, we have received your deposit of %s %.2f for %s. Your plan is now fully paid. Thank you.",
			customer.FullName, s.currency, float64(appliedCents)/100, customer.ProductName,
		)
	} else {
		message = fmt.Sprintf(
			"Dear %s, we have received your deposit of %s %.2f for %s. Remaining balance: %s %.2f.",
			customer.FullName, s.currency, float64(appliedCents)/100, customer.ProductName,
			s.currency, float64(balanceCents)/100,
		)
	}
	if err := s.smsSender.Send(ctx, to, message); err != nil {
		log.Printf("deposit SMS to %s failed: %v", to, err)
	}
}

// CreateInstallmentPlanInput represents the create plan input
type CreateInstallmentPlanInput struct {
	Name string
	Days int
}

// CreateInstallmentPlan adds a repayment plan option
func (s *CustomerService) CreateInstallmentPlan(ctx context.Context, input *CreateInstallmentPlanInput) (*entity.InstallmentPlan, error) {
	if input.Days <= 0 {
		return nil, apperror.NewBadRequestError("Plan duration must be positive")
	}
	plan := &entity.InstallmentPlan{
		Name: input.Name,
		Days: input.Days,
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// DueReminderWindow is how close to the plan deadline a customer must be
// before the daily reminder job texts them.
const DueReminderWindow = 3 * 24 * time.Hour

// SendDueReminders texts installment customers whose plan deadline is
// near. Meant to run from a daily job; failures on one customer never
// block the rest.
func (s *CustomerService) SendDueReminders(ctx context.Context) (int, error) {
	params := &pagination.PaginationParams{Page: 1, PerPage: 100}
	sent := 0

	for {
		customers, total, err := s.customerRepo.ListWithDues(ctx, params)
		if err != nil {
			return sent, err
		}

		for i := range customers {
			c := &customers[i]
			if c.PhoneNumber == nil || c.InstallmentPlan == nil {
				continue
			}
			deadline := c.CreatedAt.AddDate(0, 0, c.InstallmentPlan.Days)
			if time.Until(deadline) > DueReminderWindow {
				continue
			}
			to, ok := phone.Normalize(*c.PhoneNumber)
			if !ok {
				continue
			}
			balance := c.TotalPrice - c.AmountDeposited
			message := fmt.Sprintf(
				"Dear %s, a balance of %s %.2f on your %s is due by %s. Kindly clear it to keep your plan active.",
				c.FullName, s.currency, float64(balance)/100, c.ProductName,
				deadline.Format("02 Jan 2006"),
			)
			if err := s.smsSender.Send(ctx, to, message); err != nil {
				log.Printf("due reminder SMS to %s failed: %v", to, err)
				continue
			}
			sent++
		}

		if int64(params.Page*params.PerPage) >= total {
			return sent, nil
		}
		params.Page++
	}
}
