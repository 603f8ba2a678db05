package shared

import "context"

// TransactionManager runs a unit of work atomically.
//
// The transaction is carried inside the context handed to fn; repositories
// resolve their connection from that context, so every repository call made
// with it joins the same transaction. Returning an error from fn rolls the
// transaction back.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
