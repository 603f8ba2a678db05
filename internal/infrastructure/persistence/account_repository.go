package persistence

import (
	"context"
	"errors"

	"github.com/moon8997/my-erp/internal/domain/identity"
	"github.com/moon8997/my-erp/internal/domain/shared"
	"github.com/moon8997/my-erp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by login id
func (r *GormAccountRepository) FindByID(ctx context.Context, id string) (*identity.Account, error) {
	var model models.AccountModel
	if err := dbFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFound("account %q not found", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByID checks whether a login id is taken
func (r *GormAccountRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := dbFromContext(ctx, r.db).Model(&models.AccountModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts an account
func (r *GormAccountRepository) Create(ctx context.Context, account *identity.Account) error {
	model := &models.AccountModel{}
	model.FromDomain(account)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflict("account %q already exists", account.ID)
		}
		return err
	}
	return nil
}

// GormMenuRepository implements MenuRepository using GORM
type GormMenuRepository struct {
	db *gorm.DB
}

// NewGormMenuRepository creates a new GormMenuRepository
func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// FindAll lists menus ordered by display order
func (r *GormMenuRepository) FindAll(ctx context.Context) ([]identity.Menu, error) {
	var rows []models.MenuModel
	if err := dbFromContext(ctx, r.db).Order("display_order").Order("menu_code").Find(&rows).Error; err != nil {
		return nil, err
	}

	menus := make([]identity.Menu, len(rows))
	for i := range rows {
		menus[i] = *rows[i].ToDomain()
	}
	return menus, nil
}

// FindByCode finds a menu by its code
func (r *GormMenuRepository) FindByCode(ctx context.Context, code int) (*identity.Menu, error) {
	var model models.MenuModel
	if err := dbFromContext(ctx, r.db).Where("menu_code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFound("menu %d not found", code)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
