package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/moon8997/my-erp/internal/domain/shared"
	"github.com/moon8997/my-erp/internal/domain/trade"
	"github.com/moon8997/my-erp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const saleItemViewColumns = "s.id, s.sale_id, s.customer_id, s.product_id, s.quantity, s.unit_price, " +
	"s.sale_at, s.deleted, s.bill_status, s.created_at, s.updated_at, " +
	"c.company_name, p.product_name, p.sale_price AS product_price"

// GormSaleItemRepository implements SaleItemRepository using GORM.
// Every statement resolves its connection from the context, so calls made
// inside TxManager.WithinTransaction share one transaction.
type GormSaleItemRepository struct {
	db *gorm.DB
}

// NewGormSaleItemRepository creates a new GormSaleItemRepository
func NewGormSaleItemRepository(db *gorm.DB) *GormSaleItemRepository {
	return &GormSaleItemRepository{db: db}
}

func (r *GormSaleItemRepository) sales(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).Model(&models.SaleItemModel{})
}

func (r *GormSaleItemRepository) activePair(ctx context.Context, saleID, productID int64) *gorm.DB {
	return r.sales(ctx).Where("sale_id = ? AND product_id = ? AND deleted = 0", saleID, productID)
}

// FindOpenOrderID returns the lowest order id with an active item for the
// customer at exactly saleAt.
func (r *GormSaleItemRepository) FindOpenOrderID(ctx context.Context, customerID int64, saleAt time.Time) (int64, bool, error) {
	var ids []int64
	if err := r.sales(ctx).
		Where("customer_id = ? AND sale_at = ? AND deleted = 0", customerID, saleAt).
		Order("sale_id").
		Limit(1).
		Pluck("sale_id", &ids).Error; err != nil {
		return 0, false, err
	}
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

// ListOpenOrderIDs lists open order ids for the customer at saleAt, excluding one order
func (r *GormSaleItemRepository) ListOpenOrderIDs(ctx context.Context, customerID int64, saleAt time.Time, excludeSaleID int64) ([]int64, error) {
	ids := []int64{}
	if err := r.sales(ctx).
		Distinct("sale_id").
		Where("customer_id = ? AND sale_at = ? AND deleted = 0 AND sale_id <> ?", customerID, saleAt, excludeSaleID).
		Order("sale_id").
		Pluck("sale_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// FindOrderKey returns the customer and sale time of an order with active items
func (r *GormSaleItemRepository) FindOrderKey(ctx context.Context, saleID int64) (*trade.OrderKey, error) {
	var model models.SaleItemModel
	if err := r.sales(ctx).
		Select("customer_id", "sale_at").
		Where("sale_id = ? AND deleted = 0", saleID).
		Order("id").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFound("order %d has no active items", saleID)
		}
		return nil, err
	}
	return &trade.OrderKey{CustomerID: model.CustomerID, SaleAt: model.SaleAt}, nil
}

// Insert creates a line item and sets its ID
func (r *GormSaleItemRepository) Insert(ctx context.Context, item *trade.SaleItem) error {
	model := models.SaleItemModelFromDomain(item)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	item.ID = model.ID
	return nil
}

// AddToActiveItem increments quantity and price of the active (saleID, productID) row
func (r *GormSaleItemRepository) AddToActiveItem(ctx context.Context, saleID, productID, quantity, price int64) (int64, error) {
	result := r.activePair(ctx, saleID, productID).Updates(map[string]any{
		"quantity":   gorm.Expr("quantity + ?", quantity),
		"unit_price": gorm.Expr("unit_price + ?", price),
		"updated_at": shared.Now(),
	})
	return result.RowsAffected, result.Error
}

// ListActiveBySaleID lists the active items of an order
func (r *GormSaleItemRepository) ListActiveBySaleID(ctx context.Context, saleID int64) ([]trade.SaleItem, error) {
	var rows []models.SaleItemModel
	if err := r.sales(ctx).Where("sale_id = ? AND deleted = 0", saleID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSaleItems(rows), nil
}

// ListActivePair lists active rows of a pair, lowest row id first
func (r *GormSaleItemRepository) ListActivePair(ctx context.Context, saleID, productID int64) ([]trade.SaleItem, error) {
	var rows []models.SaleItemModel
	if err := r.activePair(ctx, saleID, productID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSaleItems(rows), nil
}

// SetTotals overwrites quantity and price of one row
func (r *GormSaleItemRepository) SetTotals(ctx context.Context, id, quantity, price int64) error {
	return r.sales(ctx).Where("id = ?", id).Updates(map[string]any{
		"quantity":   quantity,
		"unit_price": price,
		"updated_at": shared.Now(),
	}).Error
}

// HardDeleteActiveExcept removes active rows of the pair other than keepID
func (r *GormSaleItemRepository) HardDeleteActiveExcept(ctx context.Context, saleID, productID, keepID int64) (int64, error) {
	result := dbFromContext(ctx, r.db).
		Where("sale_id = ? AND product_id = ? AND deleted = 0 AND id <> ?", saleID, productID, keepID).
		Delete(&models.SaleItemModel{})
	return result.RowsAffected, result.Error
}

// HardDeleteSoftDeleted removes soft-deleted rows of the pair
func (r *GormSaleItemRepository) HardDeleteSoftDeleted(ctx context.Context, saleID, productID int64) (int64, error) {
	result := dbFromContext(ctx, r.db).
		Where("sale_id = ? AND product_id = ? AND deleted = 1", saleID, productID).
		Delete(&models.SaleItemModel{})
	return result.RowsAffected, result.Error
}

// SoftDeletePair marks the active rows of the pair deleted
func (r *GormSaleItemRepository) SoftDeletePair(ctx context.Context, saleID, productID int64) (int64, error) {
	result := r.activePair(ctx, saleID, productID).Updates(map[string]any{
		"deleted":    1,
		"updated_at": shared.Now(),
	})
	return result.RowsAffected, result.Error
}

// SoftDeleteBySaleID marks every active row of an order deleted
func (r *GormSaleItemRepository) SoftDeleteBySaleID(ctx context.Context, saleID int64) (int64, error) {
	result := r.sales(ctx).Where("sale_id = ? AND deleted = 0", saleID).Updates(map[string]any{
		"deleted":    1,
		"updated_at": shared.Now(),
	})
	return result.RowsAffected, result.Error
}

// UpdateOrderKey moves every row of an order to key's customer and sale time
func (r *GormSaleItemRepository) UpdateOrderKey(ctx context.Context, saleID int64, key trade.OrderKey) (int64, error) {
	result := r.sales(ctx).Where("sale_id = ?", saleID).Updates(map[string]any{
		"customer_id": key.CustomerID,
		"sale_at":     key.SaleAt,
		"updated_at":  shared.Now(),
	})
	return result.RowsAffected, result.Error
}

// SetBillStatus sets the billing flag on the active rows of the given orders
func (r *GormSaleItemRepository) SetBillStatus(ctx context.Context, saleIDs []int64, status trade.BillStatus) (int64, error) {
	if len(saleIDs) == 0 {
		return 0, nil
	}
	result := r.sales(ctx).Where("sale_id IN ? AND deleted = 0", saleIDs).Updates(map[string]any{
		"bill_status": int(status),
		"updated_at":  shared.Now(),
	})
	return result.RowsAffected, result.Error
}

func (r *GormSaleItemRepository) views(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).
		Table("sales AS s").
		Select(saleItemViewColumns).
		Joins("JOIN customers c ON c.customer_id = s.customer_id").
		Joins("JOIN products p ON p.product_id = s.product_id").
		Where("s.deleted = 0")
}

// ListSales lists active items whose sale time falls in the range
func (r *GormSaleItemRepository) ListSales(ctx context.Context, period shared.DateRange) ([]trade.SaleItemView, error) {
	var rows []models.SaleItemViewRow
	if err := r.views(ctx).
		Where("s.sale_at >= ? AND s.sale_at < ?", period.Start, period.End).
		Order("s.sale_at DESC").
		Order("s.sale_id").
		Order("p.product_name").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toSaleItemViews(rows), nil
}

// ListItemViews lists the active items of one order with joined names
func (r *GormSaleItemRepository) ListItemViews(ctx context.Context, saleID int64) ([]trade.SaleItemView, error) {
	var rows []models.SaleItemViewRow
	if err := r.views(ctx).
		Where("s.sale_id = ?", saleID).
		Order("s.id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toSaleItemViews(rows), nil
}

// TopProductNames lists the most purchased product names of a customer
func (r *GormSaleItemRepository) TopProductNames(ctx context.Context, customerID int64, limit int) ([]string, error) {
	names := []string{}
	if err := dbFromContext(ctx, r.db).
		Table("sales AS s").
		Select("p.product_name").
		Joins("JOIN products p ON p.product_id = s.product_id").
		Where("s.customer_id = ? AND s.deleted = 0", customerID).
		Group("p.product_id, p.product_name").
		Order("SUM(s.quantity) DESC").
		Order("p.product_name").
		Limit(limit).
		Scan(&names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func toSaleItems(rows []models.SaleItemModel) []trade.SaleItem {
	items := make([]trade.SaleItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items
}

func toSaleItemViews(rows []models.SaleItemViewRow) []trade.SaleItemView {
	views := make([]trade.SaleItemView, len(rows))
	for i := range rows {
		views[i] = rows[i].ToDomain()
	}
	return views
}
