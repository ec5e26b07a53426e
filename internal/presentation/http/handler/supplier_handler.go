package handler

import (
	"github.com/dukasmart/phoneshop-api/internal/application/service"
	"github.com/dukasmart/phoneshop-api/internal/domain/enum"
	"github.com/dukasmart/phoneshop-api/internal/presentation/http/dto/request"
	"github.com/dukasmart/phoneshop-api/internal/presentation/http/dto/response"
	"github.com/dukasmart/phoneshop-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SupplierHandler handles supplier and supplier bill HTTP requests
type SupplierHandler struct {
	supplierService *service.SupplierService
	paymentService  *service.PaymentService
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(supplierService *service.SupplierService, paymentService *service.PaymentService) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplierService,
		paymentService:  paymentService,
	}
}

func supplierInputFromRequest(req *request.CreateSupplierRequest) *service.CreateSupplierInput {
	return &service.CreateSupplierInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		ShopName:      req.ShopName,
		KRAPin:        req.KRAPin,
		Type:          enum.SupplierType(req.Type),
		AccountHolder: req.AccountHolder,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
	}
}

// Create handles supplier registration
func (h *SupplierHandler) Create(c *gin.Context) {
	var req request.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), supplierInputFromRequest(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Supplier created successfully", supplier)
}

// Get handles retrieving a single supplier
func (h *SupplierHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	supplier, err := h.supplierService.GetSupplier(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier retrieved successfully", supplier)
}

// Update handles updating supplier details
func (h *SupplierHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req request.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), id, supplierInputFromRequest(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier updated successfully", supplier)
}

// Delete handles deleting a supplier
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid supplier ID")
		return
	}

	if err := h.supplierService.DeleteSupplier(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier deleted successfully", nil)
}

// List handles listing suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.supplierService.ListSuppliers(c.Request.Context(), &params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Suppliers retrieved successfully", result)
}

// CreateBill handles recording a new payable owed to a supplier
func (h *SupplierHandler) CreateBill(c *gin.Context) {
	var req request.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	bill, err := h.supplierService.CreateBill(c.Request.Context(), &service.CreateBillInput{
		SupplierID:  req.SupplierID,
		BillDate:    req.BillDate,
		DueDate:     req.DueDate,
		TotalAmount: req.TotalAmount,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Supplier bill created successfully", bill)
}

// GetBill handles retrieving a single supplier bill
func (h *SupplierHandler) GetBill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.supplierService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier bill retrieved successfully", bill)
}

// ListBills handles listing supplier bills
func (h *SupplierHandler) ListBills(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	var supplierID *uuid.UUID
	if s := c.Query("supplier_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			supplierID = &id
		}
	}
	var status *enum.PaymentStatus
	if s, ok := enum.ParsePaymentStatus(c.Query("status")); ok {
		status = &s
	}

	result, err := h.supplierService.ListBills(c.Request.Context(), supplierID, status, &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Supplier bills retrieved successfully", result)
}

// PayBill handles recording a payment against a supplier bill
func (h *SupplierHandler) PayBill(c *gin.Context) {
	var req request.PayBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}
	if req.BillID == nil && req.BillNumber == "" {
		response.BadRequest(c, "bill_id or bill_number is required")
		return
	}

	result, err := h.paymentService.PayBill(c.Request.Context(), &service.PayBillInput{
		BillID:     req.BillID,
		BillNumber: req.BillNumber,
		Amount:     req.Amount,
		Method:     req.PaymentMethod,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", result)
}

// DeleteBill handles deleting a supplier bill
func (h *SupplierHandler) DeleteBill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	if err := h.supplierService.DeleteBill(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier bill deleted successfully", nil)
}
