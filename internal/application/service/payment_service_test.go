package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	domainRepo "github.com/dukasmart/phoneshop-api/internal/domain/repository"
	"github.com/dukasmart/phoneshop-api/internal/infrastructure/database"
	infraRepo "github.com/dukasmart/phoneshop-api/internal/infrastructure/repository"
	"github.com/dukasmart/phoneshop-api/pkg/apperror"
	"github.com/dukasmart/phoneshop-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// spySender records every SMS instead of delivering it
type spySender struct {
	sent []sentSMS
	err  error
}

type sentSMS struct {
	To      string
	Message string
}

func (s *spySender) Send(ctx context.Context, to, message string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentSMS{To: to, Message: message})
	return nil
}

// failingPaymentRepo rejects every insert to the payment log
type failingPaymentRepo struct{}

func (failingPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	return errors.New("payments table unavailable")
}

func (failingPaymentRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	return nil, nil
}

func (failingPaymentRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Payment, int64, error) {
	return nil, 0, nil
}

// conflictingInvoiceRepo fails the first conditional write, as if a
// concurrent payment landed between read and write.
type conflictingInvoiceRepo struct {
	domainRepo.InvoiceRepository
	conflicts int
}

func (r *conflictingInvoiceRepo) ApplyPayment(ctx context.Context, id uuid.UUID, upd *domainRepo.PaymentUpdate) (int64, error) {
	if r.conflicts > 0 {
		r.conflicts--
		// Move the row underneath the caller
		if _, err := r.InvoiceRepository.ApplyPayment(ctx, id, &domainRepo.PaymentUpdate{
			ExpectedPaid: upd.ExpectedPaid,
			AmountPaid:   upd.ExpectedPaid + 10000,
			BalanceDue:   0,
			Status:       enum.PaymentStatusPartiallyPaid,
		}); err != nil {
			return 0, err
		}
		return 0, nil
	}
	return r.InvoiceRepository.ApplyPayment(ctx, id, upd)
}

func seedInvoice(t *testing.T, db *gorm.DB, totalCents, paidCents int64) *entity.Invoice {
	t.Helper()
	invoice := &entity.Invoice{
		InvoiceNumber: "INV-001",
		DocumentType:  enum.DocumentTypeInvoice,
		InvoiceDate:   time.Now(),
		SubTotal:      totalCents,
		TotalAmount:   totalCents,
		AmountPaid:    paidCents,
		BalanceDue:    totalCents - paidCents,
		PaymentStatus: enum.PaymentStatusFor(totalCents, paidCents),
		Currency:      "KES",
	}
	require.NoError(t, db.Create(invoice).Error)
	return invoice
}

func newPaymentService(db *gorm.DB, sender *spySender) (*PaymentService, domainRepo.InvoiceRepository) {
	invoiceRepo := infraRepo.NewInvoiceRepository(db)
	billRepo := infraRepo.NewSupplierBillRepository(db)
	paymentRepo := infraRepo.NewPaymentRepository(db)
	return NewPaymentService(invoiceRepo, billRepo, paymentRepo, sender), invoiceRepo
}

func TestPayInvoicePartialThenFull(t *testing.T) {
	db := setupTestDB(t)
	svc, invoiceRepo := newPaymentService(db, &spySender{})
	invoice := seedInvoice(t, db, 100000, 0) // KES 1000.00

	result, err := svc.PayInvoice(context.Background(), &PayInvoiceInput{
		InvoiceID: &invoice.ID,
		Amount:    400,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPartiallyPaid, result.PaymentStatus)
	assert.Equal(t, 400.0, result.AmountPaid)
	assert.Equal(t, 600.0, result.BalanceDue)
	assert.Equal(t, 0.0, result.OverpaymentDiscarded)

	// Second payment overshoots by 100; the excess is discarded
	result, err = svc.PayInvoice(context.Background(), &PayInvoiceInput{
		InvoiceID: &invoice.ID,
		Amount:    700,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, result.PaymentStatus)
	assert.Equal(t, 1000.0, result.AmountPaid)
	assert.Equal(t, 0.0, result.BalanceDue)
	assert.Equal(t, 600.0, result.AmountApplied)
	assert.Equal(t, 100.0, result.OverpaymentDiscarded)

	stored, err := invoiceRepo.GetByID(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), stored.AmountPaid)
	assert.Equal(t, int64(0), stored.BalanceDue)
	assert.Equal(t, enum.PaymentStatusPaid, stored.PaymentStatus)
}

func TestPayInvoiceByNumberForgivingMatch(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newPaymentService(db, &spySender{})
	seedInvoice(t, db, 50000, 0)

	result, err := svc.PayInvoice(context.Background(), &PayInvoiceInput{
		InvoiceNumber: " inv - 001 ",
		Amount:        500,
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-001", result.DocumentNumber)
	assert.Equal(t, enum.PaymentStatusPaid, result.PaymentStatus)
}

func TestPayInvoiceRejectsBadAmounts(t *testing.T) {
	db := setupTestDB(t)
	svc, invoiceRepo := newPaymentService(db, &spySender{})
	invoice := seedInvoice(t, db, 100000, 0)

	for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1), 1e18} {
		_, err := svc.PayInvoice(context.Background(), &PayInvoiceInput{
			InvoiceID: &invoice.ID,
			Amount:    amount,
		})
		assert.ErrorIs(t, err, apperror.ErrInvalidAmount)
	}

	// Nothing touched the row
	stored, err := invoiceRepo.GetByID(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.AmountPaid)
	assert.Equal(t, enum.PaymentStatusUnpaid, stored.PaymentStatus)
}

func TestPayInvoiceNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newPaymentService(db, &spySender{})

	missing := uuid.New()
	_, err := svc.PayInvoice(context.Background(), &PayInvoiceInput{
		InvoiceID: &missing,
		Amount:    100,
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestPayInvoiceQuotationRejected(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newPaymentService(db, &spySender{})

	quotation := &entity.Invoice{
		InvoiceNumber: "QUO-001",
		DocumentType:  enum.DocumentTypeQuotation,
		InvoiceDate:   time.Now(),
		TotalAmount:   50000,
		BalanceDue:    50000,
		Currency:      "KES",
	}
	require.NoError(t, db.Create(quotation).Error)

	_, err := svc.PayInvoice(context.Background(), &PayInvoiceInput{
		InvoiceID: &quotation.ID,
		Amount:    100,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestPayInvoiceAlreadyPaidDiscardsEverything(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newPaymentService(db, &spySender{})
	invoice := seedInvoice(t, db, 100000, 100000)

	result, err := svc.PayInvoice(context.Background(), &PayInvoiceInput{
		InvoiceID: &invoice.ID,
		Amount:    250,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, result.PaymentStatus)
	assert.Equal(t, 1000.0, result.AmountPaid)
	assert.Equal(t, 0.0, result.AmountApplied)
	assert.Equal(t, 250.0, result.OverpaymentDiscarded)

	// A fully discarded payment leaves no log entry
	payments, err := svc.ListPaymentsByInvoice(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestPayInvoiceWritesPaymentLog(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newPaymentService(db, &spySender{})
	invoice := seedInvoice(t, db, 100000, 0)

	_, err := svc.PayInvoice(context.Background(), &PayInvoiceInput{
		InvoiceID: &invoice.ID,
		Amount:    400,
	})
	require.NoError(t, err)

	payments, err := svc.ListPaymentsByInvoice(context.Background(), invoice.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, int64(40000), payments[0].Amount)
}

func TestPayInvoicePaymentLogFailureDoesNotFailPayment(t *testing.T) {
	db := setupTestDB(t)
	invoiceRepo := infraRepo.NewInvoiceRepository(db)
	billRepo := infraRepo.NewSupplierBillRepository(db)
	svc := NewPaymentService(invoiceRepo, billRepo, failingPaymentRepo{}, &spySender{})
	invoice := seedInvoice(t, db, 100000, 0)

	result, err := svc.PayInvoice(context.Background(), &PayInvoiceInput{
		InvoiceID: &invoice.ID,
		Amount:    400,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPartiallyPaid, result.PaymentStatus)

	// The invoice update still committed
	stored, err := invoiceRepo.GetByID(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(40000), stored.AmountPaid)
}

func TestPayInvoiceSendsConfirmationSMS(t *testing.T) {
	db := setupTestDB(t)
	sender := &spySender{}
	svc, _ := newPaymentService(db, sender)

	phone := "0712345678"
	staff := &entity.User{FirstName: "Jane", LastName: "Wanjiru", Username: "jane", Email: "jane@example.com"}
	require.NoError(t, db.Create(staff).Error)
	customer := &entity.Customer{
		UserID:      staff.ID,
		FullName:    "John Kamau",
		PhoneNumber: &phone,
	}
	require.NoError(t, db.Create(customer).Error)

	invoice := &entity.Invoice{
		InvoiceNumber: "INV-002",
		DocumentType:  enum.DocumentTypeInvoice,
		CustomerID:    &customer.ID,
		InvoiceDate:   time.Now(),
		TotalAmount:   100000,
		BalanceDue:    100000,
		Currency:      "KES",
	}
	require.NoError(t, db.Create(invoice).Error)

	_, err := svc.PayInvoice(context.Background(), &PayInvoiceInput{
		InvoiceID: &invoice.ID,
		Amount:    400,
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "+254712345678", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Message, "John Kamau")
	assert.Contains(t, sender.sent[0].Message, "INV-002")
	assert.Contains(t, sender.sent[0].Message, "400.00")
	assert.Contains(t, sender.sent[0].Message, "600.00")
}

func TestPayInvoiceSMSFailureDoesNotFailPayment(t *testing.T) {
	db := setupTestDB(t)
	sender := &spySender{err: errors.New("gateway down")}
	svc, invoiceRepo := newPaymentService(db, sender)

	phone := "0712345678"
	staff := &entity.User{FirstName: "Jane", LastName: "Wanjiru", Username: "jane2", Email: "jane2@example.com"}
	require.NoError(t, db.Create(staff).Error)
	customer := &entity.Customer{UserID: staff.ID, FullName: "John Kamau", PhoneNumber: &phone}
	require.NoError(t, db.Create(customer).Error)

	invoice := &entity.Invoice{
		InvoiceNumber: "INV-003",
		DocumentType:  enum.DocumentTypeInvoice,
		CustomerID:    &customer.ID,
		InvoiceDate:   time.Now(),
		TotalAmount:   100000,
		BalanceDue:    100000,
		Currency:      "KES",
	}
	require.NoError(t, db.Create(invoice).Error)

	result, err := svc.PayInvoice(context.Background(), &PayInvoiceInput{
		InvoiceID: &invoice.ID,
		Amount:    400,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPartiallyPaid, result.PaymentStatus)

	stored, err := invoiceRepo.GetByID(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(40000), stored.AmountPaid)
}

func TestPayInvoiceRetriesAfterConcurrentUpdate(t *testing.T) {
	db := setupTestDB(t)
	base := infraRepo.NewInvoiceRepository(db)
	wrapped := &conflictingInvoiceRepo{InvoiceRepository: base, conflicts: 1}
	billRepo := infraRepo.NewSupplierBillRepository(db)
	paymentRepo := infraRepo.NewPaymentRepository(db)
	svc := NewPaymentService(wrapped, billRepo, paymentRepo, &spySender{})

	invoice := seedInvoice(t, db, 100000, 0)

	// The concurrent writer lands 100.00 first; our 400.00 must stack on
	// top of it, not overwrite it.
	result, err := svc.PayInvoice(context.Background(), &PayInvoiceInput{
		InvoiceID: &invoice.ID,
		Amount:    400,
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0, result.AmountPaid)
	assert.Equal(t, 500.0, result.BalanceDue)
	assert.Equal(t, enum.PaymentStatusPartiallyPaid, result.PaymentStatus)
}

func TestPayBill(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newPaymentService(db, &spySender{})

	supplier := &entity.Supplier{Name: "Nairobi Phones Ltd"}
	require.NoError(t, db.Create(supplier).Error)
	bill := &entity.SupplierBill{
		BillNumber:  "BILL-001",
		SupplierID:  supplier.ID,
		BillDate:    time.Now(),
		TotalAmount: 200000,
		BalanceDue:  200000,
		Currency:    "KES",
	}
	require.NoError(t, db.Create(bill).Error)

	result, err := svc.PayBill(context.Background(), &PayBillInput{
		BillNumber: "bill-001",
		Amount:     2000,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, result.PaymentStatus)
	assert.Equal(t, 2000.0, result.AmountPaid)
	assert.Equal(t, 0.0, result.BalanceDue)
}

func TestReconcileInvariants(t *testing.T) {
	tests := []struct {
		name          string
		total, paid   int64
		amount        int64
		wantPaid      int64
		wantBalance   int64
		wantDiscarded int64
		wantStatus    enum.PaymentStatus
	}{
		{"first partial", 100000, 0, 40000, 40000, 60000, 0, enum.PaymentStatusPartiallyPaid},
		{"exact settle", 100000, 40000, 60000, 100000, 0, 0, enum.PaymentStatusPaid},
		{"overshoot clamped", 100000, 40000, 70000, 100000, 0, 10000, enum.PaymentStatusPaid},
		{"already paid", 100000, 100000, 5000, 100000, 0, 5000, enum.PaymentStatusPaid},
		{"zero total", 0, 0, 5000, 0, 0, 5000, enum.PaymentStatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotPaid, gotBalance, gotDiscarded, gotStatus := reconcile(tt.total, tt.paid, tt.amount)
			assert.Equal(t, tt.wantPaid, gotPaid)
			assert.Equal(t, tt.wantBalance, gotBalance)
			assert.Equal(t, tt.wantDiscarded, gotDiscarded)
			assert.Equal(t, tt.wantStatus, gotStatus)

			// balance_due always equals total minus paid
			assert.Equal(t, tt.total-gotPaid, gotBalance)
		})
	}
}

func TestPayInvoiceHugeAmountNeverGoesNegative(t *testing.T) {
	db := setupTestDB(t)
	svc, invoiceRepo := newPaymentService(db, &spySender{})
	invoice := seedInvoice(t, db, 100000, 0)

	// An amount whose cent value would wrap past int64 must be rejected
	// before it reaches the store.
	_, err := svc.PayInvoice(context.Background(), &PayInvoiceInput{
		InvoiceID: &invoice.ID,
		Amount:    1e18,
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidAmount)

	stored, err := invoiceRepo.GetByID(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stored.AmountPaid, int64(0))
	assert.Equal(t, int64(0), stored.AmountPaid)
	assert.Equal(t, enum.PaymentStatusUnpaid, stored.PaymentStatus)
}

func TestToCentsRoundsAndGuards(t *testing.T) {
	got, err := toCents(29.99)
	require.NoError(t, err)
	assert.Equal(t, int64(2999), got)

	got, err = toCents(0.1 + 0.2)
	require.NoError(t, err)
	assert.Equal(t, int64(30), got)

	for _, bad := range []float64{0, -0.01, math.NaN(), math.Inf(1), 1e18} {
		_, err := toCents(bad)
		assert.ErrorIs(t, err, apperror.ErrInvalidAmount)
	}
}

func TestPriceToCentsRoundsAndGuards(t *testing.T) {
	got, err := priceToCents(29.99)
	require.NoError(t, err)
	assert.Equal(t, int64(2999), got)

	got, err = priceToCents(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)

	for _, bad := range []float64{-0.01, math.NaN(), math.Inf(1), 1e18} {
		_, err := priceToCents(bad)
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	}
}
