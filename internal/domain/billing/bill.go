package billing

import (
	"time"

	"github.com/moon8997/my-erp/internal/domain/shared"
)

// BillStatus represents the collection state of a bill
type BillStatus int

const (
	BillStatusUnpaid            BillStatus = 0
	BillStatusPartiallyReceived BillStatus = 1
	BillStatusSettled           BillStatus = 2
)

// IsValid checks if the status is a valid BillStatus
func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusUnpaid, BillStatusPartiallyReceived, BillStatusSettled:
		return true
	}
	return false
}

// String returns the string representation of BillStatus
func (s BillStatus) String() string {
	switch s {
	case BillStatusUnpaid:
		return "UNPAID"
	case BillStatusPartiallyReceived:
		return "PARTIALLY_RECEIVED"
	case BillStatusSettled:
		return "SETTLED"
	}
	return "UNKNOWN"
}

// Bill is a collection request covering one or more sales orders of a customer
type Bill struct {
	ID         int64
	CustomerID int64
	TotalCost  int64
	RemainCost int64
	Status     BillStatus
	CreatedAt  time.Time
	SalesIDs   []int64
}

// NewBill creates a bill. remainCost defaults to totalCost and status to unpaid.
func NewBill(customerID, totalCost int64, remainCost *int64, status *BillStatus) (*Bill, error) {
	if customerID <= 0 {
		return nil, shared.NewInvalidArgument("customerId is required")
	}
	if totalCost < 0 {
		return nil, shared.NewInvalidArgument("totalCost cannot be negative")
	}

	remain := totalCost
	if remainCost != nil {
		remain = *remainCost
	}
	if remain < 0 || remain > totalCost {
		return nil, shared.NewInvalidArgument("remainCost must be between 0 and totalCost")
	}

	st := BillStatusUnpaid
	if status != nil {
		st = *status
	}
	if !st.IsValid() {
		return nil, shared.NewInvalidArgument("invalid bill status %d", int(st))
	}

	return &Bill{
		CustomerID: customerID,
		TotalCost:  totalCost,
		RemainCost: remain,
		Status:     st,
		CreatedAt:  shared.Now(),
	}, nil
}

// DistinctSalesIDs drops nil and repeated ids, keeping first-seen order
func DistinctSalesIDs(ids []*int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		out = append(out, *id)
	}
	return out
}

// BillWithSale is a flattened row of an unpaid bill and one of its sale ids
type BillWithSale struct {
	BillID     int64
	CustomerID int64
	TotalCost  int64
	RemainCost int64
	Status     BillStatus
	CreatedAt  time.Time
	SalesID    int64
}

// BillListing is a bill joined with its customer's company name
type BillListing struct {
	Bill
	CompanyName string
}
