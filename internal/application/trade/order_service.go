// Package trade hosts the order reconciliation engine: it keeps one logical
// order per customer and day, and one active line per product in an order.
package trade

import (
	"context"
	"errors"
	"time"

	"github.com/moon8997/my-erp/internal/domain/catalog"
	"github.com/moon8997/my-erp/internal/domain/partner"
	"github.com/moon8997/my-erp/internal/domain/shared"
	"github.com/moon8997/my-erp/internal/domain/trade"
	"github.com/moon8997/my-erp/internal/infrastructure/logger"
	"github.com/moon8997/my-erp/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const topProductLimit = 5

// OrderService handles sales order reconciliation
type OrderService struct {
	items     trade.SaleItemRepository
	customers partner.CustomerRepository
	products  catalog.ProductRepository
	txManager shared.TransactionManager
	ids       trade.OrderIDGenerator
	metrics   *telemetry.Metrics
}

// NewOrderService creates a new OrderService
func NewOrderService(
	items trade.SaleItemRepository,
	customers partner.CustomerRepository,
	products catalog.ProductRepository,
	txManager shared.TransactionManager,
	ids trade.OrderIDGenerator,
) *OrderService {
	return &OrderService{
		items:     items,
		customers: customers,
		products:  products,
		txManager: txManager,
		ids:       ids,
	}
}

// SetMetrics attaches Prometheus counters
func (s *OrderService) SetMetrics(m *telemetry.Metrics) {
	s.metrics = m
}

// resolvedLine is a requested line with its product looked up
type resolvedLine struct {
	product  *catalog.Product
	quantity int64
}

// CreateOrder records the requested lines for a customer and day. Lines join
// the customer's open order of that day when there is one; otherwise the
// first inserted line opens a new order. Returns the number of inserted rows.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (inserted int, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "create", attribute.Int("items", len(req.Items)))
	defer func(start time.Time) {
		s.metrics.RecordOperation("order.create", start, err)
		telemetry.EndSpan(span, err)
	}(time.Now())

	if len(req.Items) == 0 {
		return 0, shared.NewInvalidArgument("items are required")
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.customers.FindByCompanyName(ctx, shared.CleanName(req.CustomerName))
		if err != nil {
			return err
		}
		saleAt, err := shared.ParseBusinessDate(req.SaleDate)
		if err != nil {
			return err
		}

		lines := make([]resolvedLine, 0, len(req.Items))
		for _, item := range req.Items {
			product, err := s.products.FindByName(ctx, shared.CleanName(item.ProductName))
			if err != nil {
				return err
			}
			if err := validateLine(product, item.Quantity); err != nil {
				return err
			}
			lines = append(lines, resolvedLine{product: product, quantity: item.Quantity})
		}

		orderID, found, err := s.items.FindOpenOrderID(ctx, customer.ID, saleAt)
		if err != nil {
			return err
		}

		for _, line := range lines {
			total := trade.LineTotal(line.product.SalePrice, line.quantity)
			if found {
				n, err := s.items.AddToActiveItem(ctx, orderID, line.product.ID, line.quantity, total)
				if err != nil {
					return err
				}
				if n > 0 {
					continue
				}
			} else {
				orderID = s.ids.NextOrderID()
				found = true
			}

			item := trade.NewSaleItem(orderID, customer.ID, line.product.ID, line.quantity, total, saleAt)
			if err := s.items.Insert(ctx, item); err != nil {
				return err
			}
			inserted++
		}

		logger.L(ctx).Info("Order lines recorded",
			zap.Int64("sale_id", orderID),
			zap.Int64("customer_id", customer.ID),
			zap.Int("inserted", inserted),
		)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// UpdateOrder makes the active lines of saleID match the requested items.
// Lines missing from the request, or requested with a quantity of zero or
// less, are removed. Present lines move by the quantity delta and new lines
// are inserted. The customer and sale date are applied to every row of the order.
func (s *OrderService) UpdateOrder(ctx context.Context, saleID int64, req UpdateOrderRequest) (result *UpdateOrderResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update", attribute.Int64("sale_id", saleID))
	defer func(start time.Time) {
		s.metrics.RecordOperation("order.update", start, err)
		telemetry.EndSpan(span, err)
	}(time.Now())

	result = &UpdateOrderResult{}
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.customers.FindByCompanyName(ctx, shared.CleanName(req.CustomerName))
		if err != nil {
			return err
		}
		saleAt, err := shared.ParseBusinessDate(req.SaleDate)
		if err != nil {
			return err
		}

		current, err := s.items.ListActiveBySaleID(ctx, saleID)
		if err != nil {
			return err
		}
		currentQty := make(map[int64]int64, len(current))
		for _, item := range current {
			currentQty[item.ProductID] += item.Quantity
		}

		// repeated product names in one request are summed
		var order []int64
		requested := make(map[int64]*resolvedLine, len(req.Items))
		for _, item := range req.Items {
			product, err := s.products.FindByName(ctx, shared.CleanName(item.ProductName))
			if err != nil {
				return err
			}
			if line, ok := requested[product.ID]; ok {
				line.quantity += item.Quantity
				continue
			}
			requested[product.ID] = &resolvedLine{product: product, quantity: item.Quantity}
			order = append(order, product.ID)
		}

		for _, item := range current {
			if _, ok := requested[item.ProductID]; ok {
				continue
			}
			if _, done := currentQty[item.ProductID]; !done {
				continue
			}
			if err := s.removeLine(ctx, saleID, item.ProductID); err != nil {
				return err
			}
			delete(currentQty, item.ProductID)
			result.Removed++
		}

		for _, productID := range order {
			line := requested[productID]
			have, exists := currentQty[productID]

			switch {
			case line.quantity <= 0:
				if !exists {
					continue
				}
				if err := s.removeLine(ctx, saleID, productID); err != nil {
					return err
				}
				result.Removed++

			case exists:
				delta := line.quantity - have
				if delta == 0 {
					continue
				}
				if line.product.SalePrice <= 0 {
					return shared.NewInvalidArgument("product %q has no sale price", line.product.ProductName)
				}
				if _, err := s.mergeDuplicateItems(ctx, saleID, productID); err != nil {
					return err
				}
				if _, err := s.items.AddToActiveItem(ctx, saleID, productID, delta,
					trade.LineTotal(line.product.SalePrice, delta)); err != nil {
					return err
				}
				result.Updated++

			default:
				if err := validateLine(line.product, line.quantity); err != nil {
					return err
				}
				item := trade.NewSaleItem(saleID, customer.ID, productID, line.quantity,
					trade.LineTotal(line.product.SalePrice, line.quantity), saleAt)
				if err := s.items.Insert(ctx, item); err != nil {
					return err
				}
				result.Inserted++
			}
		}

		// a changed customer or date moves the whole order, deleted rows included
		_, err = s.items.UpdateOrderKey(ctx, saleID, trade.OrderKey{CustomerID: customer.ID, SaleAt: saleAt})
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteOrderItem removes one product line from an order
func (s *OrderService) DeleteOrderItem(ctx context.Context, saleID, productID int64) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "delete_item",
		attribute.Int64("sale_id", saleID),
		attribute.Int64("product_id", productID),
	)
	defer func(start time.Time) {
		s.metrics.RecordOperation("order.delete_item", start, err)
		telemetry.EndSpan(span, err)
	}(time.Now())

	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		active, err := s.mergeDuplicateItems(ctx, saleID, productID)
		if err != nil {
			return err
		}
		if active == 0 {
			return shared.NewNotFound("order %d has no product %d", saleID, productID)
		}
		_, err = s.items.SoftDeletePair(ctx, saleID, productID)
		return err
	})
}

// MergeDuplicateItems folds all active rows of an order/product pair into the
// lowest-id row and purges the pair's soft-deleted rows. It returns the
// number of active rows found before merging.
func (s *OrderService) MergeDuplicateItems(ctx context.Context, saleID, productID int64) (active int, err error) {
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		active, err = s.mergeDuplicateItems(ctx, saleID, productID)
		return err
	})
	return active, err
}

func (s *OrderService) mergeDuplicateItems(ctx context.Context, saleID, productID int64) (int, error) {
	rows, err := s.items.ListActivePair(ctx, saleID, productID)
	if err != nil {
		return 0, err
	}

	if len(rows) > 1 {
		quantity, price := trade.SumItems(rows)
		keep := rows[0]
		if err := s.items.SetTotals(ctx, keep.ID, quantity, price); err != nil {
			return 0, err
		}
		if _, err := s.items.HardDeleteActiveExcept(ctx, saleID, productID, keep.ID); err != nil {
			return 0, err
		}
		logger.L(ctx).Warn("Merged duplicate order lines",
			zap.Int64("sale_id", saleID),
			zap.Int64("product_id", productID),
			zap.Int("rows", len(rows)),
		)
	}

	if _, err := s.items.HardDeleteSoftDeleted(ctx, saleID, productID); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (s *OrderService) removeLine(ctx context.Context, saleID, productID int64) error {
	if _, err := s.mergeDuplicateItems(ctx, saleID, productID); err != nil {
		return err
	}
	_, err := s.items.SoftDeletePair(ctx, saleID, productID)
	return err
}

// ResetBillStatusForSaleID unbinds an order from billing and absorbs the
// customer's other open orders of the same day into it. Returns the number
// of absorbed orders.
func (s *OrderService) ResetBillStatusForSaleID(ctx context.Context, saleID int64) (absorbed int, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "reset_bill_status", attribute.Int64("sale_id", saleID))
	defer func(start time.Time) {
		s.metrics.RecordOperation("order.reset_bill_status", start, err)
		telemetry.EndSpan(span, err)
	}(time.Now())

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		key, err := s.items.FindOrderKey(ctx, saleID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil
			}
			return err
		}

		if _, err := s.items.SetBillStatus(ctx, []int64{saleID}, trade.BillStatusUnbound); err != nil {
			return err
		}

		others, err := s.items.ListOpenOrderIDs(ctx, key.CustomerID, key.SaleAt, saleID)
		if err != nil {
			return err
		}

		for _, other := range others {
			if err := s.absorbOrder(ctx, saleID, other, *key); err != nil {
				return err
			}
			absorbed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return absorbed, nil
}

// absorbOrder moves every active line of src into dst, then retires src
func (s *OrderService) absorbOrder(ctx context.Context, dst, src int64, key trade.OrderKey) error {
	lines, err := s.items.ListActiveBySaleID(ctx, src)
	if err != nil {
		return err
	}

	for _, line := range lines {
		n, err := s.items.AddToActiveItem(ctx, dst, line.ProductID, line.Quantity, line.UnitPrice)
		if err != nil {
			return err
		}
		if n == 0 {
			item := trade.NewSaleItem(dst, key.CustomerID, line.ProductID, line.Quantity, line.UnitPrice, key.SaleAt)
			if err := s.items.Insert(ctx, item); err != nil {
				return err
			}
		}
		if _, err := s.mergeDuplicateItems(ctx, dst, line.ProductID); err != nil {
			return err
		}
	}

	if _, err := s.items.SoftDeleteBySaleID(ctx, src); err != nil {
		return err
	}
	logger.L(ctx).Info("Absorbed open order",
		zap.Int64("sale_id", dst),
		zap.Int64("absorbed_sale_id", src),
		zap.Int("lines", len(lines)),
	)
	return nil
}

// ListSales lists active lines sold between startDate and endDate inclusive.
// Empty dates mean today.
func (s *OrderService) ListSales(ctx context.Context, startDate, endDate string) ([]SaleItemResponse, error) {
	period, err := shared.NewDateRange(startDate, endDate, shared.Now())
	if err != nil {
		return nil, err
	}
	views, err := s.items.ListSales(ctx, period)
	if err != nil {
		return nil, err
	}
	return ToSaleItemResponses(views), nil
}

// GetSaleItems lists the active lines of one order
func (s *OrderService) GetSaleItems(ctx context.Context, saleID int64) ([]SaleItemResponse, error) {
	views, err := s.items.ListItemViews(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return ToSaleItemResponses(views), nil
}

// TopProductNames lists the products a customer buys most. A blank or
// unknown company name yields an empty list.
func (s *OrderService) TopProductNames(ctx context.Context, companyName string) ([]string, error) {
	name := shared.CleanName(companyName)
	if name == "" {
		return []string{}, nil
	}

	customer, err := s.customers.FindByCompanyName(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	return s.items.TopProductNames(ctx, customer.ID, topProductLimit)
}

func validateLine(product *catalog.Product, quantity int64) error {
	if quantity <= 0 {
		return shared.NewInvalidArgument("quantity of %q must be positive", product.ProductName)
	}
	if product.SalePrice <= 0 {
		return shared.NewInvalidArgument("product %q has no sale price", product.ProductName)
	}
	return nil
}
