package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dukasmart/phoneshop-api/internal/application/service"
	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	"github.com/dukasmart/phoneshop-api/internal/infrastructure/database"
	infraRepo "github.com/dukasmart/phoneshop-api/internal/infrastructure/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type nullSMS struct{}

func (nullSMS) Send(ctx context.Context, to, message string) error { return nil }

func setupInvoiceRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	invoiceRepo := infraRepo.NewInvoiceRepository(db)
	itemRepo := infraRepo.NewInvoiceItemRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	billRepo := infraRepo.NewSupplierBillRepository(db)
	paymentRepo := infraRepo.NewPaymentRepository(db)

	invoiceService := service.NewInvoiceService(invoiceRepo, itemRepo, customerRepo, "KES")
	paymentService := service.NewPaymentService(invoiceRepo, billRepo, paymentRepo, nullSMS{})
	h := NewInvoiceHandler(invoiceService, paymentService)

	router := gin.New()
	router.POST("/api/v1/invoices", h.Create)
	router.POST("/api/v1/invoices/pay", h.Pay)
	router.PUT("/api/v1/invoices/pay", h.Pay)
	router.GET("/api/v1/invoices/:id", h.Get)
	return router, db
}

func seedOpenInvoice(t *testing.T, db *gorm.DB, totalCents int64) *entity.Invoice {
	t.Helper()
	invoice := &entity.Invoice{
		InvoiceNumber: "INV-100",
		DocumentType:  enum.DocumentTypeInvoice,
		InvoiceDate:   time.Now(),
		TotalAmount:   totalCents,
		BalanceDue:    totalCents,
		Currency:      "KES",
	}
	require.NoError(t, db.Create(invoice).Error)
	return invoice
}

func TestPayInvoiceEndpoint(t *testing.T) {
	router, db := setupInvoiceRouter(t)
	invoice := seedOpenInvoice(t, db, 100000)

	body := fmt.Sprintf(`{"invoice_id":%q,"amount":400}`, invoice.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/pay", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			AmountPaid    float64 `json:"amount_paid"`
			BalanceDue    float64 `json:"balance_due"`
			PaymentStatus string  `json:"payment_status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 400.0, resp.Data.AmountPaid)
	assert.Equal(t, 600.0, resp.Data.BalanceDue)
	assert.Equal(t, "Partially Paid", resp.Data.PaymentStatus)
}

func TestPayInvoiceEndpointByNumber(t *testing.T) {
	router, db := setupInvoiceRouter(t)
	seedOpenInvoice(t, db, 50000)

	// The legacy field name and the PUT verb still work
	body := `{"invoice_number":" inv - 100 ","new_payment_amount":500}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/invoices/pay", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Paid"`)
}

func TestPayInvoiceEndpointMissingReference(t *testing.T) {
	router, _ := setupInvoiceRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/pay", bytes.NewBufferString(`{"amount":400}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayInvoiceEndpointZeroAmount(t *testing.T) {
	router, db := setupInvoiceRouter(t)
	invoice := seedOpenInvoice(t, db, 100000)

	body := fmt.Sprintf(`{"invoice_id":%q,"amount":0}`, invoice.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/pay", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "positive payment amount")
}

func TestPayInvoiceEndpointUnknownInvoice(t *testing.T) {
	router, _ := setupInvoiceRouter(t)

	body := `{"invoice_number":"INV-999","amount":400}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/pay", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateInvoiceEndpoint(t *testing.T) {
	router, _ := setupInvoiceRouter(t)

	body := `{
		"items": [
			{"description": "Samsung A14", "quantity": 2, "unit_price": 15000}
		],
		"tax_amount": 100
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"invoice_number":"INV`)
	assert.Contains(t, w.Body.String(), `"total_amount":30100`)
}
