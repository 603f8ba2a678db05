package identity

import "context"

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	// FindByID finds an account by login id
	FindByID(ctx context.Context, id string) (*Account, error)

	// ExistsByID checks whether a login id is taken
	ExistsByID(ctx context.Context, id string) (bool, error)

	// Create inserts an account
	Create(ctx context.Context, account *Account) error
}
