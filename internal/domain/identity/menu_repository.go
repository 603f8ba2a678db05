package identity

import "context"

// MenuRepository defines read access to navigation menus
type MenuRepository interface {
	// FindAll lists menus ordered by display order
	FindAll(ctx context.Context) ([]Menu, error)

	// FindByCode finds a menu by its code
	FindByCode(ctx context.Context, code int) (*Menu, error)
}
