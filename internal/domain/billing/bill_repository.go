package billing

import (
	"context"

	"github.com/moon8997/my-erp/internal/domain/shared"
)

// BillRepository defines persistence for bills and their order mappings
type BillRepository interface {
	// Create inserts a bill and sets its ID
	Create(ctx context.Context, bill *Bill) error

	// FindByID finds a bill by ID
	FindByID(ctx context.Context, id int64) (*Bill, error)

	// ListByCustomer lists a customer's bills, newest first, with their sale ids
	ListByCustomer(ctx context.Context, customerID int64) ([]Bill, error)

	// ListUnpaidWithSales lists unpaid bills, one row per mapped sale id
	ListUnpaidWithSales(ctx context.Context) ([]BillWithSale, error)

	// ListByCreatedAt lists bills created within the period
	ListByCreatedAt(ctx context.Context, period shared.DateRange) ([]BillListing, error)

	// ListSalesIDs lists the order ids mapped to a bill
	ListSalesIDs(ctx context.Context, billID int64) ([]int64, error)

	// InsertMappings maps order ids to a bill
	InsertMappings(ctx context.Context, billID int64, salesIDs []int64) error

	// FindBillIDBySaleID returns the bill that maps the given order
	FindBillIDBySaleID(ctx context.Context, saleID int64) (int64, bool, error)

	// ApplyReceive decrements the balance by amount in one statement. It
	// affects no row when the bill is missing or amount exceeds the balance.
	ApplyReceive(ctx context.Context, billID, amount int64) (int64, error)

	// Settle zeroes the balance and marks the bill settled
	Settle(ctx context.Context, billID int64) (int64, error)

	// Rollback restores the balance to the total and marks the bill unpaid
	Rollback(ctx context.Context, billID int64) (int64, error)

	// DeleteMappings removes all order mappings of a bill
	DeleteMappings(ctx context.Context, billID int64) error

	// Delete removes a bill row
	Delete(ctx context.Context, billID int64) error
}
