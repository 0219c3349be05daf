package port_persistence

import "context"

// UnitOfWork runs fn inside one durable, all-or-nothing boundary. Repository
// calls made with the context passed to fn join that boundary.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
