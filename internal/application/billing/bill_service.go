// Package billing hosts the billing engine: bills over one or more sales
// orders, their collection state, and the bill/order mapping.
package billing

import (
	"context"
	"time"

	"github.com/moon8997/my-erp/internal/domain/billing"
	"github.com/moon8997/my-erp/internal/domain/shared"
	"github.com/moon8997/my-erp/internal/domain/trade"
	"github.com/moon8997/my-erp/internal/infrastructure/logger"
	"github.com/moon8997/my-erp/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// OrderBinder flags the line items of orders as covered by a bill
type OrderBinder interface {
	SetBillStatus(ctx context.Context, saleIDs []int64, status trade.BillStatus) (int64, error)
}

// OrderResetter releases an order from billing and re-consolidates it
type OrderResetter interface {
	ResetBillStatusForSaleID(ctx context.Context, saleID int64) (int, error)
}

// BillService handles bill creation, collection and removal
type BillService struct {
	billRepo  billing.BillRepository
	orders    OrderBinder
	resetter  OrderResetter
	txManager shared.TransactionManager
	metrics   *telemetry.Metrics
}

// NewBillService creates a new BillService
func NewBillService(
	billRepo billing.BillRepository,
	orders OrderBinder,
	resetter OrderResetter,
	txManager shared.TransactionManager,
) *BillService {
	return &BillService{
		billRepo:  billRepo,
		orders:    orders,
		resetter:  resetter,
		txManager: txManager,
	}
}

// SetMetrics attaches Prometheus counters
func (s *BillService) SetMetrics(m *telemetry.Metrics) {
	s.metrics = m
}

// CreateBills creates every bill of the batch in one transaction and returns
// the number of bills inserted. Any failure rolls back the whole batch.
func (s *BillService) CreateBills(ctx context.Context, reqs []CreateBillRequest) (inserted int, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill", "create_batch", attribute.Int("bills", len(reqs)))
	defer func(start time.Time) {
		s.metrics.RecordOperation("bill.create", start, err)
		telemetry.EndSpan(span, err)
	}(time.Now())

	if len(reqs) == 0 {
		return 0, nil
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		for i := range reqs {
			if _, err := s.createBill(ctx, reqs[i]); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// CreateBill creates one bill and binds its orders
func (s *BillService) CreateBill(ctx context.Context, req CreateBillRequest) (*BillResponse, error) {
	var bill *billing.Bill
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		bill, err = s.createBill(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	response := ToBillResponse(bill)
	return &response, nil
}

func (s *BillService) createBill(ctx context.Context, req CreateBillRequest) (*billing.Bill, error) {
	if req.TotalCost == nil {
		return nil, shared.NewInvalidArgument("totalCost is required")
	}
	var status *billing.BillStatus
	if req.Status != nil {
		st := billing.BillStatus(*req.Status)
		status = &st
	}

	bill, err := billing.NewBill(req.CustomerID, *req.TotalCost, req.RemainCost, status)
	if err != nil {
		return nil, err
	}
	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}

	salesIDs := billing.DistinctSalesIDs(req.SalesIDs)
	if len(salesIDs) > 0 {
		if _, err := s.orders.SetBillStatus(ctx, salesIDs, trade.BillStatusBound); err != nil {
			return nil, err
		}
		if err := s.billRepo.InsertMappings(ctx, bill.ID, salesIDs); err != nil {
			return nil, err
		}
	}
	bill.SalesIDs = salesIDs

	logger.L(ctx).Info("Bill created",
		zap.Int64("bill_id", bill.ID),
		zap.Int64("customer_id", bill.CustomerID),
		zap.Int64s("sales_ids", salesIDs),
	)
	return bill, nil
}

// ApplyReceive records a partial payment. An amount above the remaining
// balance is rejected and leaves the bill unchanged.
func (s *BillService) ApplyReceive(ctx context.Context, billID, amount int64) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill", "receive",
		attribute.Int64("bill_id", billID),
		attribute.Int64("amount", amount),
	)
	defer func(start time.Time) {
		s.metrics.RecordOperation("bill.receive", start, err)
		telemetry.EndSpan(span, err)
	}(time.Now())

	if amount <= 0 {
		return shared.NewInvalidArgument("amount must be positive")
	}

	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		rows, err := s.billRepo.ApplyReceive(ctx, billID, amount)
		if err != nil {
			return err
		}
		if rows > 0 {
			return nil
		}
		// nothing matched: either the bill is gone or the amount is too large
		bill, err := s.billRepo.FindByID(ctx, billID)
		if err != nil {
			return err
		}
		return shared.NewInvalidArgument("amount %d exceeds remaining balance %d", amount, bill.RemainCost)
	})
}

// SettleBill marks a bill fully collected
func (s *BillService) SettleBill(ctx context.Context, billID int64) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill", "settle", attribute.Int64("bill_id", billID))
	defer func(start time.Time) {
		s.metrics.RecordOperation("bill.settle", start, err)
		telemetry.EndSpan(span, err)
	}(time.Now())

	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		rows, err := s.billRepo.Settle(ctx, billID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return shared.NewNotFound("bill %d not found", billID)
		}
		return nil
	})
}

// RollbackBill restores the full balance of a bill. Member orders stay bound.
func (s *BillService) RollbackBill(ctx context.Context, billID int64) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill", "rollback", attribute.Int64("bill_id", billID))
	defer func(start time.Time) {
		s.metrics.RecordOperation("bill.rollback", start, err)
		telemetry.EndSpan(span, err)
	}(time.Now())

	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		rows, err := s.billRepo.Rollback(ctx, billID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return shared.NewNotFound("bill %d not found", billID)
		}
		return nil
	})
}

// DeleteBillBySaleID removes the bill covering saleID and releases every
// order it covered. It reports false when no bill maps the order.
func (s *BillService) DeleteBillBySaleID(ctx context.Context, saleID int64) (deleted bool, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill", "delete_by_sale", attribute.Int64("sale_id", saleID))
	defer func(start time.Time) {
		s.metrics.RecordOperation("bill.delete", start, err)
		telemetry.EndSpan(span, err)
	}(time.Now())

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		billID, found, err := s.billRepo.FindBillIDBySaleID(ctx, saleID)
		if err != nil || !found {
			return err
		}

		salesIDs, err := s.billRepo.ListSalesIDs(ctx, billID)
		if err != nil {
			return err
		}
		for _, id := range salesIDs {
			if _, err := s.resetter.ResetBillStatusForSaleID(ctx, id); err != nil {
				return err
			}
		}

		if err := s.billRepo.DeleteMappings(ctx, billID); err != nil {
			return err
		}
		if err := s.billRepo.Delete(ctx, billID); err != nil {
			return err
		}

		logger.L(ctx).Info("Bill deleted",
			zap.Int64("bill_id", billID),
			zap.Int64("sale_id", saleID),
			zap.Int64s("released_sales_ids", salesIDs),
		)
		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// GetBill returns one bill
func (s *BillService) GetBill(ctx context.Context, billID int64) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	response := ToBillResponse(bill)
	return &response, nil
}

// ListByCustomer lists a customer's bills with their order ids
func (s *BillService) ListByCustomer(ctx context.Context, customerID int64) ([]BillResponse, error) {
	bills, err := s.billRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToBillResponses(bills), nil
}

// ListBillsWithSales lists unpaid bills, one row per mapped order
func (s *BillService) ListBillsWithSales(ctx context.Context) ([]BillWithSaleResponse, error) {
	rows, err := s.billRepo.ListUnpaidWithSales(ctx)
	if err != nil {
		return nil, err
	}
	return ToBillWithSaleResponses(rows), nil
}

// ListSalesIDs lists the order ids mapped to a bill
func (s *BillService) ListSalesIDs(ctx context.Context, billID int64) ([]int64, error) {
	return s.billRepo.ListSalesIDs(ctx, billID)
}

// ListBills lists bills created between startDate and endDate inclusive.
// Empty dates mean today.
func (s *BillService) ListBills(ctx context.Context, startDate, endDate string) ([]BillListingResponse, error) {
	period, err := shared.NewDateRange(startDate, endDate, shared.Now())
	if err != nil {
		return nil, err
	}
	listings, err := s.billRepo.ListByCreatedAt(ctx, period)
	if err != nil {
		return nil, err
	}
	return ToBillListingResponses(listings), nil
}
