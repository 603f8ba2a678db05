package trade

import (
	"context"
	"time"

	"github.com/moon8997/my-erp/internal/domain/shared"
)

// SaleItemRepository defines persistence for sales line items.
//
// "Active" means deleted = 0. Mutating methods return the number of rows they
// affected so callers can branch on it the way the reconciliation engine does.
type SaleItemRepository interface {
	// FindOpenOrderID returns the lowest order id that has at least one active
	// item for the customer at exactly saleAt.
	FindOpenOrderID(ctx context.Context, customerID int64, saleAt time.Time) (int64, bool, error)

	// ListOpenOrderIDs lists open order ids for the customer at saleAt, excluding one order
	ListOpenOrderIDs(ctx context.Context, customerID int64, saleAt time.Time, excludeSaleID int64) ([]int64, error)

	// FindOrderKey returns the customer and sale time of an order with active items
	FindOrderKey(ctx context.Context, saleID int64) (*OrderKey, error)

	// Insert creates a line item and sets its ID
	Insert(ctx context.Context, item *SaleItem) error

	// AddToActiveItem increments quantity and price of the active (saleID, productID) row
	AddToActiveItem(ctx context.Context, saleID, productID, quantity, price int64) (int64, error)

	// ListActiveBySaleID lists the active items of an order
	ListActiveBySaleID(ctx context.Context, saleID int64) ([]SaleItem, error)

	// ListActivePair lists active rows of a pair, lowest row id first
	ListActivePair(ctx context.Context, saleID, productID int64) ([]SaleItem, error)

	// SetTotals overwrites quantity and price of one row
	SetTotals(ctx context.Context, id, quantity, price int64) error

	// HardDeleteActiveExcept removes active rows of the pair other than keepID
	HardDeleteActiveExcept(ctx context.Context, saleID, productID, keepID int64) (int64, error)

	// HardDeleteSoftDeleted removes soft-deleted rows of the pair
	HardDeleteSoftDeleted(ctx context.Context, saleID, productID int64) (int64, error)

	// SoftDeletePair marks the active rows of the pair deleted
	SoftDeletePair(ctx context.Context, saleID, productID int64) (int64, error)

	// SoftDeleteBySaleID marks every active row of an order deleted
	SoftDeleteBySaleID(ctx context.Context, saleID int64) (int64, error)

	// UpdateOrderKey moves every row of an order to key's customer and sale time
	UpdateOrderKey(ctx context.Context, saleID int64, key OrderKey) (int64, error)

	// SetBillStatus sets the billing flag on the active rows of the given orders
	SetBillStatus(ctx context.Context, saleIDs []int64, status BillStatus) (int64, error)

	// ListSales lists active items whose sale time falls in the range
	ListSales(ctx context.Context, period shared.DateRange) ([]SaleItemView, error)

	// ListItemViews lists the active items of one order with joined names
	ListItemViews(ctx context.Context, saleID int64) ([]SaleItemView, error)

	// TopProductNames lists the most purchased product names of a customer
	TopProductNames(ctx context.Context, customerID int64, limit int) ([]string, error)
}

// OrderIDGenerator issues identifiers for new orders
type OrderIDGenerator interface {
	NextOrderID() int64
}
