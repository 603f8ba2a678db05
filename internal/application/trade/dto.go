package trade

import (
	"time"

	"github.com/moon8997/my-erp/internal/domain/trade"
)

// OrderItemRequest is one requested product line
type OrderItemRequest struct {
	ProductName string `json:"productName" binding:"required"`
	Quantity    int64  `json:"quantity"`
}

// CreateOrderRequest is the body of an order creation
type CreateOrderRequest struct {
	CustomerName string             `json:"customerName" binding:"required"`
	SaleDate     string             `json:"saleDate" binding:"required"`
	Items        []OrderItemRequest `json:"items" binding:"dive"`
}

// UpdateOrderRequest is the body of an order update. The item list is the
// desired final content of the order.
type UpdateOrderRequest struct {
	CustomerName string             `json:"customerName" binding:"required"`
	SaleDate     string             `json:"saleDate" binding:"required"`
	Items        []OrderItemRequest `json:"items" binding:"dive"`
}

// UpdateOrderResult summarizes the row changes of an order update
type UpdateOrderResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Removed  int `json:"removed"`
}

// SaleItemResponse is a line item joined with its customer and product names
type SaleItemResponse struct {
	ID           int64     `json:"id"`
	SaleID       int64     `json:"saleId"`
	CustomerID   int64     `json:"customerId"`
	CompanyName  string    `json:"companyName"`
	ProductID    int64     `json:"productId"`
	ProductName  string    `json:"productName"`
	ProductPrice int64     `json:"productPrice"`
	Quantity     int64     `json:"quantity"`
	UnitPrice    int64     `json:"unitPrice"`
	SaleAt       time.Time `json:"saleAt"`
	BillStatus   int       `json:"billStatus"`
}

// ToSaleItemResponses converts joined line item views
func ToSaleItemResponses(views []trade.SaleItemView) []SaleItemResponse {
	responses := make([]SaleItemResponse, len(views))
	for i, v := range views {
		responses[i] = SaleItemResponse{
			ID:           v.ID,
			SaleID:       v.SaleID,
			CustomerID:   v.CustomerID,
			CompanyName:  v.CustomerName,
			ProductID:    v.ProductID,
			ProductName:  v.ProductName,
			ProductPrice: v.ProductPrice,
			Quantity:     v.Quantity,
			UnitPrice:    v.UnitPrice,
			SaleAt:       v.SaleAt,
			BillStatus:   int(v.BillStatus),
		}
	}
	return responses
}
