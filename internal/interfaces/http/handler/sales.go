package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/moon8997/my-erp/internal/application/trade"
	"github.com/moon8997/my-erp/internal/interfaces/http/dto"
)

// SalesHandler serves the order endpoints
type SalesHandler struct {
	BaseHandler
	orders *tradeapp.OrderService
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(orders *tradeapp.OrderService) *SalesHandler {
	return &SalesHandler{orders: orders}
}

// Create records the lines of a sales entry. Lines join the customer's open
// order of that day.
//
//	@ID				createSales
//	@Summary		Record order lines
//	@Description	Adds the lines to the customer's open order of the sale date, or opens a new one
//	@Tags			sales
//	@Accept			json
//	@Produce		json
//	@Param			request	body		tradeapp.CreateOrderRequest	true	"Customer, sale date and lines"
//	@Success		200		{object}	InsertedResponse
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		404		{object}	dto.ErrorResponse
//	@Failure		500		{object}	dto.ErrorResponse
//	@Router			/sales [post]
func (h *SalesHandler) Create(c *gin.Context) {
	var req tradeapp.CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	inserted, err := h.orders.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"inserted": inserted})
}

// List returns active lines between startDate and endDate (both optional)
//
//	@ID				listSales
//	@Summary		List order lines by date
//	@Tags			sales
//	@Produce		json
//	@Param			startDate	query		string	false	"First business day (YYYY-MM-DD)"
//	@Param			endDate		query		string	false	"Last business day (YYYY-MM-DD)"
//	@Success		200			{object}	SaleListResponse
//	@Failure		400			{object}	dto.ErrorResponse
//	@Router			/sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	sales, err := h.orders.ListSales(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"sales": sales})
}

// GetItems returns the active lines of one order
//
//	@ID				getSalesItems
//	@Summary		Get the lines of an order
//	@Tags			sales
//	@Produce		json
//	@Param			saleId	path		int	true	"Order ID"
//	@Success		200		{object}	SaleItemsResponse
//	@Failure		400		{object}	dto.ErrorResponse
//	@Router			/sales/byId/{saleId} [get]
func (h *SalesHandler) GetItems(c *gin.Context) {
	saleID, ok := h.int64Param(c, "saleId")
	if !ok {
		return
	}

	items, err := h.orders.GetSaleItems(c.Request.Context(), saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"items": items})
}

// Update reconciles an order against the requested lines
//
//	@ID				updateSales
//	@Summary		Edit an order
//	@Description	The item list is the final content of the order; the customer and sale date apply to every line
//	@Tags			sales
//	@Accept			json
//	@Produce		json
//	@Param			saleId	path		int							true	"Order ID"
//	@Param			request	body		tradeapp.UpdateOrderRequest	true	"Final customer, sale date and lines"
//	@Success		200		{object}	UpdateOrderResponse
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		404		{object}	dto.ErrorResponse
//	@Failure		500		{object}	dto.ErrorResponse
//	@Router			/sales/{saleId} [put]
func (h *SalesHandler) Update(c *gin.Context) {
	saleID, ok := h.int64Param(c, "saleId")
	if !ok {
		return
	}
	var req tradeapp.UpdateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.orders.UpdateOrder(c.Request.Context(), saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{
		"inserted": result.Inserted,
		"updated":  result.Updated,
		"removed":  result.Removed,
	})
}

// ResetBillStatus unbinds an order and folds same-day open orders into it
//
//	@ID				resetSalesBillStatus
//	@Summary		Unbind an order from its bill
//	@Tags			sales
//	@Produce		json
//	@Param			saleId	path		int	true	"Order ID"
//	@Success		200		{object}	AbsorbedResponse
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		404		{object}	dto.ErrorResponse
//	@Failure		500		{object}	dto.ErrorResponse
//	@Router			/sales/bill-status/reset/{saleId} [put]
func (h *SalesHandler) ResetBillStatus(c *gin.Context) {
	saleID, ok := h.int64Param(c, "saleId")
	if !ok {
		return
	}

	absorbed, err := h.orders.ResetBillStatusForSaleID(c.Request.Context(), saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"absorbed": absorbed})
}

// DeleteItem removes one product from an order
//
//	@ID				deleteSalesItem
//	@Summary		Remove a product from an order
//	@Tags			sales
//	@Produce		json
//	@Param			saleId		path		int	true	"Order ID"
//	@Param			productId	path		int	true	"Product ID"
//	@Success		200			{object}	SuccessResponse
//	@Failure		400			{object}	dto.ErrorResponse
//	@Failure		404			{object}	dto.ErrorResponse
//	@Router			/sales/{saleId}/products/{productId} [delete]
func (h *SalesHandler) DeleteItem(c *gin.Context) {
	saleID, ok := h.int64Param(c, "saleId")
	if !ok {
		return
	}
	productID, ok := h.int64Param(c, "productId")
	if !ok {
		return
	}

	if err := h.orders.DeleteOrderItem(c.Request.Context(), saleID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nil)
}

// TopProducts returns the products a customer buys most
//
//	@ID				listCustomerTopProducts
//	@Summary		Most bought products of a customer
//	@Tags			sales
//	@Produce		json
//	@Param			companyName	query		string	true	"Customer company name"
//	@Success		200			{object}	TopProductsResponse
//	@Failure		400			{object}	dto.ErrorResponse
//	@Failure		404			{object}	dto.ErrorResponse
//	@Router			/customers/top-products [get]
func (h *SalesHandler) TopProducts(c *gin.Context) {
	names, err := h.orders.TopProductNames(c.Request.Context(), c.Query("companyName"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"products": names})
}
