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

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create handles customer registration
func (h *CustomerHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		UserID:            *userID,
		FullName:          req.FullName,
		PhoneNumber:       req.PhoneNumber,
		IDNumber:          req.IDNumber,
		City:              req.City,
		NextOfKin:         req.NextOfKin,
		InstallmentPlanID: req.InstallmentPlanID,
		ProductID:         req.ProductID,
		ProductName:       req.ProductName,
		TotalPrice:        req.TotalPrice,
		AmountDeposited:   req.AmountDeposited,
		PaymentType:       enum.PaymentType(req.PaymentType),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles retrieving a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer's contact details
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, &service.UpdateCustomerInput{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		IDNumber:    req.IDNumber,
		City:        req.City,
		NextOfKin:   req.NextOfKin,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deleted successfully", nil)
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), &params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// ListDebtors handles listing installment customers who still owe money
func (h *CustomerHandler) ListDebtors(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.customerService.ListDebtors(c.Request.Context(), &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Debtors retrieved successfully", result)
}

// RecordDeposit handles an installment deposit against a customer
func (h *CustomerHandler) RecordDeposit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.RecordDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	result, err := h.customerService.RecordDeposit(c.Request.Context(), id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Deposit recorded successfully", result)
}

// ListPlans handles listing the available installment plans
func (h *CustomerHandler) ListPlans(c *gin.Context) {
	plans, err := h.customerService.ListInstallmentPlans(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Installment plans retrieved successfully", plans)
}

// CreatePlan handles adding an installment plan
func (h *CustomerHandler) CreatePlan(c *gin.Context) {
	var req request.CreateInstallmentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	plan, err := h.customerService.CreateInstallmentPlan(c.Request.Context(), &service.CreateInstallmentPlanInput{
		Name: req.Name,
		Days: req.Days,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Installment plan created successfully", plan)
}
