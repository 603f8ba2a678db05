package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/moon8997/my-erp/internal/application/billing"
	"github.com/moon8997/my-erp/internal/interfaces/http/dto"
)

// BillHandler serves the bill endpoints
type BillHandler struct {
	BaseHandler
	bills *billingapp.BillService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(bills *billingapp.BillService) *BillHandler {
	return &BillHandler{bills: bills}
}

// Create issues a batch of bills. The body is a JSON array; the batch is
// written all or nothing.
//
//	@ID				createBills
//	@Summary		Issue bills
//	@Description	Creates every bill of the array and binds the listed orders, or none of them
//	@Tags			bills
//	@Accept			json
//	@Produce		json
//	@Param			request	body		[]billingapp.CreateBillRequest	true	"Bills to issue"
//	@Success		200		{object}	InsertedResponse
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		404		{object}	dto.ErrorResponse
//	@Failure		500		{object}	dto.ErrorResponse
//	@Router			/bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	var reqs []billingapp.CreateBillRequest
	if !h.bindJSON(c, &reqs) {
		return
	}

	inserted, err := h.bills.CreateBills(c.Request.Context(), reqs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"inserted": inserted})
}

// ListByCustomer returns the bills of one customer
//
//	@ID				listBillsByCustomer
//	@Summary		List the bills of a customer
//	@Tags			bills
//	@Produce		json
//	@Param			customerId	path		int	true	"Customer ID"
//	@Success		200			{object}	CustomerBillsResponse
//	@Failure		400			{object}	dto.ErrorResponse
//	@Router			/bills/by-customer/{customerId} [get]
func (h *BillHandler) ListByCustomer(c *gin.Context) {
	customerID, ok := h.int64Param(c, "customerId")
	if !ok {
		return
	}

	bills, err := h.bills.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"bills": bills})
}

// ListWithSales returns one row per bill and bound order
//
//	@ID				listBillsWithSales
//	@Summary		List bills with their orders
//	@Tags			bills
//	@Produce		json
//	@Success		200	{object}	BillSaleRowsResponse
//	@Failure		400	{object}	dto.ErrorResponse
//	@Router			/bills/with-sales [get]
func (h *BillHandler) ListWithSales(c *gin.Context) {
	rows, err := h.bills.ListBillsWithSales(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"rows": rows})
}

// SalesIDs returns the orders bound to a bill
//
//	@ID				listBillSalesIds
//	@Summary		List the orders of a bill
//	@Tags			bills
//	@Produce		json
//	@Param			billId	path		int	true	"Bill ID"
//	@Success		200		{object}	SalesIDsResponse
//	@Failure		400		{object}	dto.ErrorResponse
//	@Router			/bills/{billId}/sales-ids [get]
func (h *BillHandler) SalesIDs(c *gin.Context) {
	billID, ok := h.int64Param(c, "billId")
	if !ok {
		return
	}

	ids, err := h.bills.ListSalesIDs(c.Request.Context(), billID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"salesIds": ids})
}

// List returns bills created between startDate and endDate
//
//	@ID				listBills
//	@Summary		List bills by date
//	@Tags			bills
//	@Produce		json
//	@Param			startDate	query		string	false	"First business day (YYYY-MM-DD)"
//	@Param			endDate		query		string	false	"Last business day (YYYY-MM-DD)"
//	@Success		200			{object}	BillListResponse
//	@Failure		400			{object}	dto.ErrorResponse
//	@Router			/bills [get]
func (h *BillHandler) List(c *gin.Context) {
	bills, err := h.bills.ListBills(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"bills": bills})
}

// Receive applies a payment to a bill
//
//	@ID				receiveBill
//	@Summary		Record a payment
//	@Description	Lowers the remaining balance; the amount cannot exceed it
//	@Tags			bills
//	@Accept			json
//	@Produce		json
//	@Param			billId	path		int						true	"Bill ID"
//	@Param			request	body		billingapp.ReceiveRequest	true	"Payment amount"
//	@Success		200		{object}	SuccessResponse
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		404		{object}	dto.ErrorResponse
//	@Failure		500		{object}	dto.ErrorResponse
//	@Router			/bills/{billId}/receive [put]
func (h *BillHandler) Receive(c *gin.Context) {
	billID, ok := h.int64Param(c, "billId")
	if !ok {
		return
	}
	var req billingapp.ReceiveRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.bills.ApplyReceive(c.Request.Context(), billID, req.Amount); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nil)
}

// Settle marks a bill fully paid
//
//	@ID				settleBill
//	@Summary		Settle a bill
//	@Tags			bills
//	@Produce		json
//	@Param			billId	path		int	true	"Bill ID"
//	@Success		200		{object}	SuccessResponse
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		404		{object}	dto.ErrorResponse
//	@Failure		500		{object}	dto.ErrorResponse
//	@Router			/bills/{billId}/settle [put]
func (h *BillHandler) Settle(c *gin.Context) {
	billID, ok := h.int64Param(c, "billId")
	if !ok {
		return
	}
	if err := h.bills.SettleBill(c.Request.Context(), billID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nil)
}

// Rollback restores a bill's remaining balance
//
//	@ID				rollbackBill
//	@Summary		Roll back the payments of a bill
//	@Tags			bills
//	@Produce		json
//	@Param			billId	path		int	true	"Bill ID"
//	@Success		200		{object}	SuccessResponse
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		404		{object}	dto.ErrorResponse
//	@Failure		500		{object}	dto.ErrorResponse
//	@Router			/bills/{billId}/rollback [put]
func (h *BillHandler) Rollback(c *gin.Context) {
	billID, ok := h.int64Param(c, "billId")
	if !ok {
		return
	}
	if err := h.bills.RollbackBill(c.Request.Context(), billID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, nil)
}

// DeleteBySale removes the bill an order is bound to and releases its orders
//
//	@ID				deleteBillBySale
//	@Summary		Delete the bill of an order
//	@Tags			bills
//	@Produce		json
//	@Param			saleId	path		int	true	"Order ID"
//	@Success		200		{object}	DeletedResponse
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		404		{object}	dto.ErrorResponse
//	@Failure		500		{object}	dto.ErrorResponse
//	@Router			/bills/by-sale/{saleId} [delete]
func (h *BillHandler) DeleteBySale(c *gin.Context) {
	saleID, ok := h.int64Param(c, "saleId")
	if !ok {
		return
	}

	deleted, err := h.bills.DeleteBillBySaleID(c.Request.Context(), saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.Fields{"deleted": deleted})
}
