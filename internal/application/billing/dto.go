package billing

import (
	"time"

	"github.com/moon8997/my-erp/internal/domain/billing"
)

// CreateBillRequest is one bill of a batch creation
type CreateBillRequest struct {
	CustomerID int64    `json:"customerId" binding:"required"`
	TotalCost  *int64   `json:"totalCost" binding:"required,gte=0"`
	RemainCost *int64   `json:"remainCost,omitempty" binding:"omitempty,gte=0"`
	Status     *int     `json:"status,omitempty" binding:"omitempty,oneof=0 1 2"`
	SalesIDs   []*int64 `json:"salesIds,omitempty"`
}

// ReceiveRequest is the body of a partial payment
type ReceiveRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID         int64     `json:"billId"`
	CustomerID int64     `json:"customerId"`
	TotalCost  int64     `json:"totalCost"`
	RemainCost int64     `json:"remainCost"`
	Status     int       `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	SalesIDs   []int64   `json:"salesIds"`
}

// BillWithSaleResponse is one (bill, sale id) row of the unpaid listing
type BillWithSaleResponse struct {
	BillID     int64     `json:"billId"`
	CustomerID int64     `json:"customerId"`
	TotalCost  int64     `json:"totalCost"`
	RemainCost int64     `json:"remainCost"`
	Status     int       `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	SalesID    int64     `json:"salesId"`
}

// BillListingResponse is a bill with its customer's company name
type BillListingResponse struct {
	BillResponse
	CompanyName string `json:"companyName"`
}

// ToBillResponse converts a domain bill to its response
func ToBillResponse(b *billing.Bill) BillResponse {
	salesIDs := b.SalesIDs
	if salesIDs == nil {
		salesIDs = []int64{}
	}
	return BillResponse{
		ID:         b.ID,
		CustomerID: b.CustomerID,
		TotalCost:  b.TotalCost,
		RemainCost: b.RemainCost,
		Status:     int(b.Status),
		CreatedAt:  b.CreatedAt,
		SalesIDs:   salesIDs,
	}
}

// ToBillResponses converts a slice of bills
func ToBillResponses(bills []billing.Bill) []BillResponse {
	responses := make([]BillResponse, len(bills))
	for i := range bills {
		responses[i] = ToBillResponse(&bills[i])
	}
	return responses
}

// ToBillWithSaleResponses converts flattened unpaid rows
func ToBillWithSaleResponses(rows []billing.BillWithSale) []BillWithSaleResponse {
	responses := make([]BillWithSaleResponse, len(rows))
	for i, r := range rows {
		responses[i] = BillWithSaleResponse{
			BillID:     r.BillID,
			CustomerID: r.CustomerID,
			TotalCost:  r.TotalCost,
			RemainCost: r.RemainCost,
			Status:     int(r.Status),
			CreatedAt:  r.CreatedAt,
			SalesID:    r.SalesID,
		}
	}
	return responses
}

// ToBillListingResponses converts bills joined with company names
func ToBillListingResponses(listings []billing.BillListing) []BillListingResponse {
	responses := make([]BillListingResponse, len(listings))
	for i := range listings {
		responses[i] = BillListingResponse{
			BillResponse: ToBillResponse(&listings[i].Bill),
			CompanyName:  listings[i].CompanyName,
		}
	}
	return responses
}
