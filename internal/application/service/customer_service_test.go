package service

import (
	"context"
	"testing"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	infraRepo "github.com/dukasmart/phoneshop-api/internal/infrastructure/repository"
	"github.com/dukasmart/phoneshop-api/pkg/apperror"
	"github.com/dukasmart/phoneshop-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCustomerService(db *gorm.DB, sender *spySender) *CustomerService {
	customerRepo := infraRepo.NewCustomerRepository(db)
	planRepo := infraRepo.NewInstallmentPlanRepository(db)
	return NewCustomerService(customerRepo, planRepo, sender, "KES")
}

func seedStaff(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()
	staff := &entity.User{
		FirstName: "Mary",
		LastName:  "Atieno",
		Username:  username,
		Email:     username + "@example.com",
	}
	require.NoError(t, db.Create(staff).Error)
	return staff
}

func TestCreateCustomerWithOpeningDeposit(t *testing.T) {
	db := setupTestDB(t)
	svc := newCustomerService(db, &spySender{})
	staff := seedStaff(t, db, "mary")

	customer, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{
		UserID:          staff.ID,
		FullName:        "Peter Otieno",
		ProductName:     "Samsung A14",
		TotalPrice:      15000,
		AmountDeposited: 5000,
		PaymentType:     enum.PaymentTypeInstallment,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1500000), customer.TotalPrice)
	assert.Equal(t, int64(500000), customer.AmountDeposited)
	assert.Equal(t, enum.PaymentStatusPartiallyPaid, customer.PaymentStatus)
}

func TestCreateCustomerClampsOpeningDeposit(t *testing.T) {
	db := setupTestDB(t)
	svc := newCustomerService(db, &spySender{})
	staff := seedStaff(t, db, "mary2")

	customer, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{
		UserID:          staff.ID,
		FullName:        "Peter Otieno",
		ProductName:     "Samsung A14",
		TotalPrice:      15000,
		AmountDeposited: 20000,
		PaymentType:     enum.PaymentTypeCash,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1500000), customer.AmountDeposited)
	assert.Equal(t, enum.PaymentStatusPaid, customer.PaymentStatus)
}

func TestCreateCustomerUnknownPlanRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newCustomerService(db, &spySender{})
	staff := seedStaff(t, db, "mary3")

	missing := uuid.New()
	_, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{
		UserID:            staff.ID,
		FullName:          "Peter Otieno",
		ProductName:       "Samsung A14",
		TotalPrice:        15000,
		InstallmentPlanID: &missing,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestRecordDepositPartialThenSettle(t *testing.T) {
	db := setupTestDB(t)
	sender := &spySender{}
	svc := newCustomerService(db, sender)
	staff := seedStaff(t, db, "mary4")

	phone := "0722000111"
	customer := &entity.Customer{
		UserID:      staff.ID,
		FullName:    "Grace Njeri",
		PhoneNumber: &phone,
		ProductName: "Tecno Spark",
		TotalPrice:  800000, // KES 8000.00
		PaymentType: enum.PaymentTypeInstallment,
	}
	require.NoError(t, db.Create(customer).Error)

	result, err := svc.RecordDeposit(context.Background(), customer.ID, 3000)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPartiallyPaid, result.PaymentStatus)
	assert.Equal(t, 3000.0, result.AmountDeposited)
	assert.Equal(t, 5000.0, result.BalanceDue)

	// Overshoot settles the account and discards the rest
	result, err = svc.RecordDeposit(context.Background(), customer.ID, 6000)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, result.PaymentStatus)
	assert.Equal(t, 8000.0, result.AmountDeposited)
	assert.Equal(t, 0.0, result.BalanceDue)
	assert.Equal(t, 5000.0, result.AmountApplied)
	assert.Equal(t, 1000.0, result.OverpaymentDiscarded)

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "+254722000111", sender.sent[0].To)
}

func TestRecordDepositRejectsNonPositive(t *testing.T) {
	db := setupTestDB(t)
	svc := newCustomerService(db, &spySender{})
	staff := seedStaff(t, db, "mary5")

	customer := &entity.Customer{
		UserID:      staff.ID,
		FullName:    "Grace Njeri",
		ProductName: "Tecno Spark",
		TotalPrice:  800000,
	}
	require.NoError(t, db.Create(customer).Error)

	_, err := svc.RecordDeposit(context.Background(), customer.ID, 0)
	assert.ErrorIs(t, err, apperror.ErrInvalidAmount)
	_, err = svc.RecordDeposit(context.Background(), customer.ID, -50)
	assert.ErrorIs(t, err, apperror.ErrInvalidAmount)
}

func TestListDebtorsOnlyInstallmentWithBalance(t *testing.T) {
	db := setupTestDB(t)
	svc := newCustomerService(db, &spySender{})
	staff := seedStaff(t, db, "mary6")

	debtor := &entity.Customer{
		UserID:          staff.ID,
		FullName:        "Owing Customer",
		ProductName:     "Infinix Hot",
		TotalPrice:      500000,
		AmountDeposited: 100000,
		PaymentType:     enum.PaymentTypeInstallment,
		PaymentStatus:   enum.PaymentStatusPartiallyPaid,
	}
	settled := &entity.Customer{
		UserID:          staff.ID,
		FullName:        "Settled Customer",
		ProductName:     "Infinix Hot",
		TotalPrice:      500000,
		AmountDeposited: 500000,
		PaymentType:     enum.PaymentTypeInstallment,
		PaymentStatus:   enum.PaymentStatusPaid,
	}
	cash := &entity.Customer{
		UserID:        staff.ID,
		FullName:      "Cash Customer",
		ProductName:   "Infinix Hot",
		TotalPrice:    500000,
		PaymentType:   enum.PaymentTypeCash,
		PaymentStatus: enum.PaymentStatusUnpaid,
	}
	require.NoError(t, db.Create(debtor).Error)
	require.NoError(t, db.Create(settled).Error)
	require.NoError(t, db.Create(cash).Error)

	params := &pagination.PaginationParams{Page: 1, PerPage: 20}
	result, err := svc.ListDebtors(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Owing Customer", result.Items[0].FullName)
}

func TestUpdateCustomerLeavesMoneyFieldsAlone(t *testing.T) {
	db := setupTestDB(t)
	svc := newCustomerService(db, &spySender{})
	staff := seedStaff(t, db, "mary7")

	customer := &entity.Customer{
		UserID:          staff.ID,
		FullName:        "Grace Njeri",
		ProductName:     "Tecno Spark",
		TotalPrice:      800000,
		AmountDeposited: 300000,
		PaymentStatus:   enum.PaymentStatusPartiallyPaid,
	}
	require.NoError(t, db.Create(customer).Error)

	newName := "Grace N. Kamande"
	updated, err := svc.UpdateCustomer(context.Background(), customer.ID, &UpdateCustomerInput{
		FullName: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace N. Kamande", updated.FullName)
	assert.Equal(t, int64(300000), updated.AmountDeposited)
	assert.Equal(t, enum.PaymentStatusPartiallyPaid, updated.PaymentStatus)
}

func TestSendDueReminders(t *testing.T) {
	db := setupTestDB(t)
	sender := &spySender{}
	svc := newCustomerService(db, sender)
	staff := seedStaff(t, db, "mary8")

	nearPlan := &entity.InstallmentPlan{Name: "Two Days", Days: 2}
	farPlan := &entity.InstallmentPlan{Name: "Monthly", Days: 30}
	require.NoError(t, db.Create(nearPlan).Error)
	require.NoError(t, db.Create(farPlan).Error)

	phoneNear := "0711000001"
	phoneFar := "0711000002"
	near := &entity.Customer{
		UserID:            staff.ID,
		FullName:          "Due Soon",
		PhoneNumber:       &phoneNear,
		ProductName:       "Samsung A14",
		TotalPrice:        500000,
		AmountDeposited:   100000,
		PaymentType:       enum.PaymentTypeInstallment,
		InstallmentPlanID: &nearPlan.ID,
	}
	far := &entity.Customer{
		UserID:            staff.ID,
		FullName:          "Not Yet Due",
		PhoneNumber:       &phoneFar,
		ProductName:       "Samsung A14",
		TotalPrice:        500000,
		AmountDeposited:   100000,
		PaymentType:       enum.PaymentTypeInstallment,
		InstallmentPlanID: &farPlan.ID,
	}
	require.NoError(t, db.Create(near).Error)
	require.NoError(t, db.Create(far).Error)

	sent, err := svc.SendDueReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "+254711000001", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Message, "Due Soon")
	assert.Contains(t, sender.sent[0].Message, "4000.00")
}

func TestCreateInstallmentPlan(t *testing.T) {
	db := setupTestDB(t)
	svc := newCustomerService(db, &spySender{})

	plan, err := svc.CreateInstallmentPlan(context.Background(), &CreateInstallmentPlanInput{
		Name: "Weekly Lite",
		Days: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, plan.Days)

	plans, err := svc.ListInstallmentPlans(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, plans)
}
