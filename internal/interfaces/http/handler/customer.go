package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/moon8997/my-erp/internal/application/partner"
	"github.com/moon8997/my-erp/internal/interfaces/http/dto"
)

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customers *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customers *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// Create godoc
// @Summary  Create a customer
// @Tags     customers
// @Accept   json
// @Produce  json
// @Param    request body partnerapp.CreateCustomerRequest true "Customer"
// @Failure  409 {object} dto.ErrorResponse
// @Router   /customers/add [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req partnerapp.CreateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	id, err := h.customers.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"customerId": id})
}

// List returns all active customers
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"customers": customers})
}

func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := h.int64Param(c, "id")
	if !ok {
		return
	}

	customer, err := h.customers.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"customer": customer})
}

// Update godoc
// @Summary  Update a customer
// @Tags     customers
// @Param    id path int true "Customer ID"
// @Failure  409 {object} dto.ErrorResponse
// @Router   /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.int64Param(c, "id")
	if !ok {
		return
	}
	var req partnerapp.UpdateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	customer, err := h.customers.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"customer": customer})
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := h.int64Param(c, "id")
	if !ok {
		return
	}
	if err := h.customers.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nil)
}

// CheckDuplicate reports whether a company name is taken
func (h *CustomerHandler) CheckDuplicate(c *gin.Context) {
	result, err := h.customers.CheckDuplicate(c.Request.Context(), c.Query("companyName"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"isDuplicate": result.IsDuplicate, "message": result.Message})
}
