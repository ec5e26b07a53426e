package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	"github.com/dukasmart/phoneshop-api/internal/domain/repository"
	"github.com/dukasmart/phoneshop-api/pkg/apperror"
	"github.com/dukasmart/phoneshop-api/pkg/phone"
	"github.com/dukasmart/phoneshop-api/pkg/sms"
	"github.com/google/uuid"
)

// maxReconcileAttempts bounds the re-read-and-retry loop when a concurrent
// payment lands between our read and our conditional write.
const maxReconcileAttempts = 3

// PaymentService reconciles payments against invoices and supplier bills.
// Both document kinds share one calculation: clamp the payment at the
// outstanding total, recompute the balance, derive the status.
type PaymentService struct {
	invoiceRepo repository.InvoiceRepository
	billRepo    repository.SupplierBillRepository
	paymentRepo repository.PaymentRepository
	smsSender   sms.Sender
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	invoiceRepo repository.InvoiceRepository,
	billRepo repository.SupplierBillRepository,
	paymentRepo repository.PaymentRepository,
	smsSender sms.Sender,
) *PaymentService {
	return &PaymentService{
		invoiceRepo: invoiceRepo,
		billRepo:    billRepo,
		paymentRepo: paymentRepo,
		smsSender:   smsSender,
	}
}

// PayInvoiceInput represents one payment against an invoice. The invoice
// may be referenced by ID or by number; ID wins when both are present.
type PayInvoiceInput struct {
	InvoiceID     *uuid.UUID
	InvoiceNumber string
	Amount        float64
	Method        *string
	PaymentDate   *time.Time
}

// PayBillInput represents one payment against a supplier bill
type PayBillInput struct {
	BillID     *uuid.UUID
	BillNumber string
	Amount     float64
	Method     *string
}

// ReconcileResult is the post-payment snapshot returned to the caller
type ReconcileResult struct {
	DocumentID           uuid.UUID          `json:"document_id"`
	DocumentNumber       string             `json:"document_number"`
	TotalAmount          float64            `json:"total_amount"`
	AmountPaid           float64            `json:"amount_paid"`
	BalanceDue           float64            `json:"balance_due"`
	PaymentStatus        enum.PaymentStatus `json:"payment_status"`
	AmountApplied        float64            `json:"amount_applied"`
	OverpaymentDiscarded float64            `json:"overpayment_discarded"`
}

// reconcile applies one payment to a document's accumulators. The payment
// is clamped so amount_paid never exceeds total_amount; the clamped-off
// remainder is returned as discarded.
func reconcile(totalCents, paidCents, amountCents int64) (newPaid, balance, discarded int64, status enum.PaymentStatus) {
	newPaid = paidCents + amountCents
	if newPaid > totalCents {
		discarded = newPaid - totalCents
		newPaid = totalCents
	}
	balance = totalCents - newPaid
	if balance < 0 {
		balance = 0
	}
	status = enum.PaymentStatusFor(totalCents, newPaid)
	return newPaid, balance, discarded, status
}

// maxDecimalAmount is the largest decimal amount whose cent value still
// fits in an int64.
const maxDecimalAmount = float64(math.MaxInt64 / 100)

// toCents converts a decimal amount to cents, rejecting anything that is
// not a positive finite number within int64 range.
func toCents(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 || amount > maxDecimalAmount {
		return 0, apperror.ErrInvalidAmount
	}
	return int64(math.Round(amount * 100)), nil
}

// priceToCents converts a non-negative decimal (prices, tax, discounts,
// opening deposits) to cents. Same rounding and range rules as toCents,
// but zero is allowed.
func priceToCents(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 || amount > maxDecimalAmount {
		return 0, apperror.NewBadRequestError("Amount is out of range")
	}
	return int64(math.Round(amount * 100)), nil
}

// PayInvoice records a payment against an invoice and returns the updated
// snapshot. Quotations never accept payments. The invoice update is the
// operation of record; the payment log entry and the customer SMS are
// best-effort and never fail the call.
func (s *PaymentService) PayInvoice(ctx context.Context, input *PayInvoiceInput) (*ReconcileResult, error) {
	amountCents, err := toCents(input.Amount)
	if err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindByRef(ctx, input.InvoiceID, input.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.DocumentType == enum.DocumentTypeQuotation {
		return nil, apperror.NewBadRequestError("Quotations cannot accept payments")
	}

	var newPaid, balance, discarded int64
	var status enum.PaymentStatus
	for attempt := 0; ; attempt++ {
		newPaid, balance, discarded, status = reconcile(invoice.TotalAmount, invoice.AmountPaid, amountCents)

		rows, err := s.invoiceRepo.ApplyPayment(ctx, invoice.ID, &repository.PaymentUpdate{
			ExpectedPaid: invoice.AmountPaid,
			AmountPaid:   newPaid,
			BalanceDue:   balance,
			Status:       status,
			Method:       input.Method,
		})
		if err != nil {
			return nil, err
		}
		if rows > 0 {
			break
		}
		// Another payment landed first; re-read and recompute.
		if attempt+1 >= maxReconcileAttempts {
			return nil, apperror.NewConflictError("Invoice was updated concurrently, please retry")
		}
		refreshed, err := s.invoiceRepo.GetByID(ctx, invoice.ID)
		if err != nil {
			return nil, err
		}
		if refreshed == nil {
			return nil, apperror.NewNotFoundError("Invoice")
		}
		invoice = refreshed
	}

	applied := amountCents - discarded

	paidOn := time.Now()
	if input.PaymentDate != nil {
		paidOn = *input.PaymentDate
	}
	s.logPayment(ctx, &entity.Payment{
		InvoiceID: &invoice.ID,
		Amount:    applied,
		Method:    input.Method,
		PaidOn:    paidOn,
	})
	s.notifyCustomer(ctx, invoice, applied, balance)

	return &ReconcileResult{
		DocumentID:           invoice.ID,
		DocumentNumber:       invoice.InvoiceNumber,
		TotalAmount:          float64(invoice.TotalAmount) / 100,
		AmountPaid:           float64(newPaid) / 100,
		BalanceDue:           float64(balance) / 100,
		PaymentStatus:        status,
		AmountApplied:        float64(applied) / 100,
		OverpaymentDiscarded: float64(discarded) / 100,
	}, nil
}

// PayBill records a payment against a supplier bill. Same reconciliation
// as invoices; no SMS goes out for supplier payments.
func (s *PaymentService) PayBill(ctx context.Context, input *PayBillInput) (*ReconcileResult, error) {
	amountCents, err := toCents(input.Amount)
	if err != nil {
		return nil, err
	}

	bill, err := s.billRepo.FindByRef(ctx, input.BillID, input.BillNumber)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Supplier bill")
	}

	var newPaid, balance, discarded int64
	var status enum.PaymentStatus
	for attempt := 0; ; attempt++ {
		newPaid, balance, discarded, status = reconcile(bill.TotalAmount, bill.AmountPaid, amountCents)

		rows, err := s.billRepo.ApplyPayment(ctx, bill.ID, &repository.PaymentUpdate{
			ExpectedPaid: bill.AmountPaid,
			AmountPaid:   newPaid,
			BalanceDue:   balance,
			Status:       status,
			Method:       input.Method,
		})
		if err != nil {
			return nil, err
		}
		if rows > 0 {
			break
		}
		if attempt+1 >= maxReconcileAttempts {
			return nil, apperror.NewConflictError("Supplier bill was updated concurrently, please retry")
		}
		refreshed, err := s.billRepo.GetByID(ctx, bill.ID)
		if err != nil {
			return nil, err
		}
		if refreshed == nil {
			return nil, apperror.NewNotFoundError("Supplier bill")
		}
		bill = refreshed
	}

	applied := amountCents - discarded

	s.logPayment(ctx, &entity.Payment{
		SupplierBillID: &bill.ID,
		Amount:         applied,
		Method:         input.Method,
		PaidOn:         time.Now(),
	})

	return &ReconcileResult{
		DocumentID:           bill.ID,
		DocumentNumber:       bill.BillNumber,
		TotalAmount:          float64(bill.TotalAmount) / 100,
		AmountPaid:           float64(newPaid) / 100,
		BalanceDue:           float64(balance) / 100,
		PaymentStatus:        status,
		AmountApplied:        float64(applied) / 100,
		OverpaymentDiscarded: float64(discarded) / 100,
	}, nil
}

// ListPaymentsByInvoice returns the payment log for one invoice
func (s *PaymentService) ListPaymentsByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	return s.paymentRepo.ListByInvoice(ctx, invoiceID)
}

// logPayment appends to the payment log. A failed insert is logged and
// swallowed: the document update already committed.
func (s *PaymentService) logPayment(ctx context.Context, payment *entity.Payment) {
	if payment.Amount <= 0 {
		return
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		log.Printf("payment log insert failed: %v", err)
	}
}

// notifyCustomer sends a payment confirmation SMS when the invoice has a
// customer with a usable phone number. Failures are logged and swallowed.
func (s *PaymentService) notifyCustomer(ctx context.Context, invoice *entity.Invoice, appliedCents, balanceCents int64) {
	if appliedCents <= 0 || invoice.Customer == nil || invoice.Customer.PhoneNumber == nil {
		return
	}
	to, ok := phone.Normalize(*invoice.Customer.PhoneNumber)
	if !ok {
		return
	}

	message := fmt.Sprintf(
		"Dear %s, we have received your payment of %s %.2f for invoice %s. Balance due: %s %.2f. Thank you.",
		invoice.Customer.FullName,
		invoice.Currency, float64(appliedCents)/100,
		invoice.InvoiceNumber,
		invoice.Currency, float64(balanceCents)/100,
	)
	if err := s.smsSender.Send(ctx, to, message); err != nil {
		log.Printf("payment SMS to %s failed: %v", to, err)
	}
}
