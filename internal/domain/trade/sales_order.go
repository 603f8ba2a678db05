package trade

import (
	"time"

	"github.com/moon8997/my-erp/internal/domain/shared"
)

// BillStatus tells whether a line item is covered by a bill
type BillStatus int

const (
	BillStatusUnbound BillStatus = 0
	BillStatusBound   BillStatus = 1
)

// IsValid checks if the status is a valid BillStatus
func (s BillStatus) IsValid() bool {
	return s == BillStatusUnbound || s == BillStatusBound
}

// SaleItem is one line of a sales order.
//
// An order (sale) is the set of line items sharing a SaleID. UnitPrice holds
// the line total (sale price × quantity), not the per-unit price; the column
// name is kept for compatibility with existing data.
type SaleItem struct {
	ID         int64
	SaleID     int64
	CustomerID int64
	ProductID  int64
	Quantity   int64
	UnitPrice  int64
	SaleAt     time.Time
	Deleted    bool
	BillStatus BillStatus
	shared.Timestamps
}

// NewSaleItem creates an active, unbound line item
func NewSaleItem(saleID, customerID, productID, quantity, lineTotal int64, saleAt time.Time) *SaleItem {
	return &SaleItem{
		SaleID:     saleID,
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  lineTotal,
		SaleAt:     saleAt,
		BillStatus: BillStatusUnbound,
		Timestamps: shared.NewTimestamps(),
	}
}

// SaleItemView is a line item joined with its customer and product names
type SaleItemView struct {
	SaleItem
	CustomerName string
	ProductName  string
	ProductPrice int64
}

// OrderKey identifies the logical order of a customer on a given day
type OrderKey struct {
	CustomerID int64
	SaleAt     time.Time
}

// OrderLine is one requested product and quantity of a create/update request
type OrderLine struct {
	ProductName string
	Quantity    int64
}

// LineTotal computes the stored price of a line
func LineTotal(salePrice, quantity int64) int64 {
	return salePrice * quantity
}

// SumItems totals quantity and price across line items
func SumItems(items []SaleItem) (quantity, price int64) {
	for _, item := range items {
		quantity += item.Quantity
		price += item.UnitPrice
	}
	return quantity, price
}
