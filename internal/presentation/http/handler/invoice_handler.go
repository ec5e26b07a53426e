package handler

import (
	"time"

	"github.com/dukasmart/phoneshop-api/internal/application/service"
	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	"github.com/dukasmart/phoneshop-api/internal/domain/repository"
	"github.com/dukasmart/phoneshop-api/internal/presentation/http/dto/request"
	"github.com/dukasmart/phoneshop-api/internal/presentation/http/dto/response"
	"github.com/dukasmart/phoneshop-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice and quotation HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	paymentService *service.PaymentService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, paymentService *service.PaymentService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		paymentService: paymentService,
	}
}

// Create handles creating an invoice or quotation
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	docType := enum.DocumentTypeInvoice
	if req.DocumentType == "Quotation" {
		docType = enum.DocumentTypeQuotation
	}

	items := make([]service.InvoiceItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.InvoiceItemInput{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		DocumentType:   docType,
		CustomerID:     req.CustomerID,
		CreatedByID:    GetUserID(c),
		InvoiceDate:    req.InvoiceDate,
		DueDate:        req.DueDate,
		TaxAmount:      req.TaxAmount,
		DiscountAmount: req.DiscountAmount,
		Notes:          req.Notes,
		Items:          items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles retrieving a single invoice with its items
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// GetByNumber handles retrieving an invoice by its document number
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoiceByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Items handles listing the line items for an invoice number
func (h *InvoiceHandler) Items(c *gin.Context) {
	items, err := h.invoiceService.ListInvoiceItems(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice items retrieved successfully", items)
}

// List handles listing invoices (page-based or cursor-based)
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	if filter.Cursor != "" || filter.Limit > 0 {
		h.listWithCursor(c, &filter)
		return
	}

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}
	applyInvoiceFilters(&filter, &params.DocumentType, &params.Status, &params.CustomerID)

	if filter.StartDate != "" {
		if t, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			params.StartDate = &t
		}
	}
	if filter.EndDate != "" {
		if t, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			params.EndDate = &t
		}
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

func (h *InvoiceHandler) listWithCursor(c *gin.Context, filter *request.InvoiceFilterRequest) {
	params := &repository.InvoiceCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    filter.Cursor,
			Direction: pagination.CursorDirection(filter.Direction),
			Limit:     filter.Limit,
		},
		Search: filter.Search,
	}
	applyInvoiceFilters(filter, &params.DocumentType, &params.Status, &params.CustomerID)

	result, err := h.invoiceService.ListInvoicesWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithCursorPagination(c, 200, "Invoices retrieved successfully", result)
}

func applyInvoiceFilters(filter *request.InvoiceFilterRequest, docType **enum.DocumentType, status **enum.PaymentStatus, customerID **uuid.UUID) {
	switch filter.DocumentType {
	case "Invoice":
		dt := enum.DocumentTypeInvoice
		*docType = &dt
	case "Quotation":
		dt := enum.DocumentTypeQuotation
		*docType = &dt
	}

	if s, ok := enum.ParsePaymentStatus(filter.Status); ok {
		*status = &s
	}

	if filter.CustomerID != "" {
		if id, err := uuid.Parse(filter.CustomerID); err == nil {
			*customerID = &id
		}
	}
}

// Pay handles recording a payment against an invoice. Wired to both POST
// and PUT because older clients update the invoice in place.
func (h *InvoiceHandler) Pay(c *gin.Context) {
	var req request.PayInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	if req.InvoiceID == nil && req.InvoiceNumber == "" {
		response.BadRequest(c, "invoice_id or invoice_number is required")
		return
	}

	result, err := h.paymentService.PayInvoice(c.Request.Context(), &service.PayInvoiceInput{
		InvoiceID:     req.InvoiceID,
		InvoiceNumber: req.InvoiceNumber,
		Amount:        req.PaymentAmount(),
		Method:        req.PaymentMethod,
		PaymentDate:   req.PaymentDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", result)
}

// Payments handles listing the payment log for an invoice
func (h *InvoiceHandler) Payments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	payments, err := h.paymentService.ListPaymentsByInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}

// ConvertQuotation handles turning a quotation into a payable invoice
func (h *InvoiceHandler) ConvertQuotation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	invoice, err := h.invoiceService.ConvertQuotation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation converted successfully", invoice)
}

// Delete handles deleting an invoice or quotation
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice deleted successfully", nil)
}
