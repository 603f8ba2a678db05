package identity

import (
	"context"

	"github.com/moon8997/my-erp/internal/domain/identity"
)

// MenuService serves the back-office navigation
type MenuService struct {
	menuRepo identity.MenuRepository
}

// NewMenuService creates a new MenuService
func NewMenuService(menuRepo identity.MenuRepository) *MenuService {
	return &MenuService{menuRepo: menuRepo}
}

// List returns all menus ordered by display order
func (s *MenuService) List(ctx context.Context) ([]MenuResponse, error) {
	menus, err := s.menuRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToMenuResponses(menus), nil
}

// GetByCode returns one menu
func (s *MenuService) GetByCode(ctx context.Context, code int) (*MenuResponse, error) {
	menu, err := s.menuRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToMenuResponse(menu)
	return &response, nil
}
