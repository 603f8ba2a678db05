package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/moon8997/my-erp/internal/domain/billing"
	"github.com/moon8997/my-erp/internal/domain/shared"
	"github.com/moon8997/my-erp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBillRepository implements BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

func (r *GormBillRepository) bills(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).Model(&models.BillModel{})
}

// Create inserts a bill and sets its ID
func (r *GormBillRepository) Create(ctx context.Context, bill *billing.Bill) error {
	model := &models.BillModel{}
	model.FromDomain(bill)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	bill.ID = model.BillID
	return nil
}

// FindByID finds a bill by ID
func (r *GormBillRepository) FindByID(ctx context.Context, id int64) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.bills(ctx).Where("bill_id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFound("bill %d not found", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByCustomer lists a customer's bills, newest first, with their sale ids
func (r *GormBillRepository) ListByCustomer(ctx context.Context, customerID int64) ([]billing.Bill, error) {
	var rows []models.BillModel
	if err := r.bills(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Order("bill_id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []billing.Bill{}, nil
	}

	billIDs := make([]int64, len(rows))
	for i := range rows {
		billIDs[i] = rows[i].BillID
	}

	var mappings []models.BillSaleModel
	if err := dbFromContext(ctx, r.db).
		Where("bill_id IN ?", billIDs).
		Order("bill_id").
		Order("sales_id").
		Find(&mappings).Error; err != nil {
		return nil, err
	}

	salesByBill := make(map[int64][]int64, len(rows))
	for _, m := range mappings {
		salesByBill[m.BillID] = append(salesByBill[m.BillID], m.SalesID)
	}

	bills := make([]billing.Bill, len(rows))
	for i := range rows {
		bills[i] = *rows[i].ToDomain()
		if ids, ok := salesByBill[rows[i].BillID]; ok {
			bills[i].SalesIDs = ids
		}
	}
	return bills, nil
}

// ListUnpaidWithSales lists unpaid bills, one row per mapped sale id
func (r *GormBillRepository) ListUnpaidWithSales(ctx context.Context) ([]billing.BillWithSale, error) {
	var rows []models.BillWithSaleRow
	if err := dbFromContext(ctx, r.db).
		Table("bills AS b").
		Select("b.bill_id, b.customer_id, b.total_cost, b.remain_cost, b.status, b.created_at, bs.sales_id").
		Joins("JOIN bills_sales bs ON bs.bill_id = b.bill_id").
		Where("b.status = ?", int(billing.BillStatusUnpaid)).
		Order("b.bill_id").
		Order("bs.sales_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]billing.BillWithSale, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// ListByCreatedAt lists bills created within the period
func (r *GormBillRepository) ListByCreatedAt(ctx context.Context, period shared.DateRange) ([]billing.BillListing, error) {
	var rows []models.BillListingRow
	if err := dbFromContext(ctx, r.db).
		Table("bills AS b").
		Select("b.bill_id, b.customer_id, b.total_cost, b.remain_cost, b.status, b.created_at, c.company_name").
		Joins("LEFT JOIN customers c ON c.customer_id = b.customer_id").
		Where("b.created_at >= ? AND b.created_at < ?", period.Start, period.End).
		Order("b.created_at DESC").
		Order("b.bill_id DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]billing.BillListing, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// ListSalesIDs lists the order ids mapped to a bill
func (r *GormBillRepository) ListSalesIDs(ctx context.Context, billID int64) ([]int64, error) {
	ids := []int64{}
	if err := dbFromContext(ctx, r.db).
		Model(&models.BillSaleModel{}).
		Where("bill_id = ?", billID).
		Order("sales_id").
		Pluck("sales_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// InsertMappings maps order ids to a bill
func (r *GormBillRepository) InsertMappings(ctx context.Context, billID int64, salesIDs []int64) error {
	if len(salesIDs) == 0 {
		return nil
	}
	rows := make([]models.BillSaleModel, len(salesIDs))
	for i, id := range salesIDs {
		rows[i] = models.BillSaleModel{BillID: billID, SalesID: id}
	}
	if err := dbFromContext(ctx, r.db).Create(&rows).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflict("bill %d already maps one of the given orders", billID)
		}
		return err
	}
	return nil
}

// FindBillIDBySaleID returns the bill that maps the given order
func (r *GormBillRepository) FindBillIDBySaleID(ctx context.Context, saleID int64) (int64, bool, error) {
	var ids []int64
	if err := dbFromContext(ctx, r.db).
		Model(&models.BillSaleModel{}).
		Where("sales_id = ?", saleID).
		Order("bill_id").
		Limit(1).
		Pluck("bill_id", &ids).Error; err != nil {
		return 0, false, err
	}
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

// receiveStatusExpr picks the status after a receive. The CASE sees the
// balance before the update. Both results are literals: postgres types
// placeholder-only CASE branches as text, which cannot be assigned to the
// smallint status column.
var receiveStatusExpr = fmt.Sprintf("CASE WHEN remain_cost = ? THEN %d ELSE %d END",
	int(billing.BillStatusSettled), int(billing.BillStatusPartiallyReceived))

// ApplyReceive decrements the balance by amount in one statement. The guard on
// remain_cost makes an overpayment affect no row.
func (r *GormBillRepository) ApplyReceive(ctx context.Context, billID, amount int64) (int64, error) {
	result := r.bills(ctx).
		Where("bill_id = ? AND remain_cost >= ?", billID, amount).
		Updates(map[string]any{
			"remain_cost": gorm.Expr("remain_cost - ?", amount),
			"status":      gorm.Expr(receiveStatusExpr, amount),
		})
	return result.RowsAffected, result.Error
}

// Settle zeroes the balance and marks the bill settled
func (r *GormBillRepository) Settle(ctx context.Context, billID int64) (int64, error) {
	result := r.bills(ctx).Where("bill_id = ?", billID).Updates(map[string]any{
		"remain_cost": 0,
		"status":      int(billing.BillStatusSettled),
	})
	return result.RowsAffected, result.Error
}

// Rollback restores the balance to the total and marks the bill unpaid
func (r *GormBillRepository) Rollback(ctx context.Context, billID int64) (int64, error) {
	result := r.bills(ctx).Where("bill_id = ?", billID).Updates(map[string]any{
		"remain_cost": gorm.Expr("total_cost"),
		"status":      int(billing.BillStatusUnpaid),
	})
	return result.RowsAffected, result.Error
}

// DeleteMappings removes all order mappings of a bill
func (r *GormBillRepository) DeleteMappings(ctx context.Context, billID int64) error {
	return dbFromContext(ctx, r.db).Where("bill_id = ?", billID).Delete(&models.BillSaleModel{}).Error
}

// Delete removes a bill row
func (r *GormBillRepository) Delete(ctx context.Context, billID int64) error {
	return dbFromContext(ctx, r.db).Where("bill_id = ?", billID).Delete(&models.BillModel{}).Error
}
