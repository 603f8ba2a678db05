package handler

import (
	billingapp "github.com/moon8997/my-erp/internal/application/billing"
	tradeapp "github.com/moon8997/my-erp/internal/application/trade"
)

// The envelopes below describe response bodies for the OpenAPI document.
// Handlers build the same shapes with dto.Fields.

// SuccessResponse is a success envelope without payload
// @Description Success envelope without payload
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// InsertedResponse reports how many rows a create inserted
type InsertedResponse struct {
	Success  bool `json:"success" example:"true"`
	Inserted int  `json:"inserted" example:"2"`
}

// SaleListResponse carries order lines of a date range
type SaleListResponse struct {
	Success bool                        `json:"success" example:"true"`
	Sales   []tradeapp.SaleItemResponse `json:"sales"`
}

// SaleItemsResponse carries the lines of one order
type SaleItemsResponse struct {
	Success bool                        `json:"success" example:"true"`
	Items   []tradeapp.SaleItemResponse `json:"items"`
}

// UpdateOrderResponse reports the row changes of an order edit
type UpdateOrderResponse struct {
	Success  bool `json:"success" example:"true"`
	Inserted int  `json:"inserted" example:"1"`
	Updated  int  `json:"updated" example:"1"`
	Removed  int  `json:"removed" example:"0"`
}

// AbsorbedResponse reports how many orders were folded into the reset one
type AbsorbedResponse struct {
	Success  bool `json:"success" example:"true"`
	Absorbed int  `json:"absorbed" example:"1"`
}

// TopProductsResponse carries product names, most bought first
type TopProductsResponse struct {
	Success  bool     `json:"success" example:"true"`
	Products []string `json:"products"`
}

// BillListResponse carries bills joined with their company names
type BillListResponse struct {
	Success bool                             `json:"success" example:"true"`
	Bills   []billingapp.BillListingResponse `json:"bills"`
}

// CustomerBillsResponse carries the bills of one customer
type CustomerBillsResponse struct {
	Success bool                      `json:"success" example:"true"`
	Bills   []billingapp.BillResponse `json:"bills"`
}

// BillSaleRowsResponse carries one row per bill and bound order
type BillSaleRowsResponse struct {
	Success bool                              `json:"success" example:"true"`
	Rows    []billingapp.BillWithSaleResponse `json:"rows"`
}

// SalesIDsResponse carries the orders bound to a bill
type SalesIDsResponse struct {
	Success  bool    `json:"success" example:"true"`
	SalesIDs []int64 `json:"salesIds"`
}

// DeletedResponse reports whether a bill was removed
type DeletedResponse struct {
	Success bool `json:"success" example:"true"`
	Deleted bool `json:"deleted" example:"true"`
}
