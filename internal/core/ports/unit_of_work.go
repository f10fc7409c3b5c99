package ports

import (
	"context"
)

// UnitOfWorkFactory opens a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one database transaction spanning couriers and orders.
//
// Repositories obtained before Begin run without a transaction; repositories obtained
// after Begin share it. Rollback after Commit reports an error and changes nothing.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	CourierRepository() CourierRepository
	OrderRepository() OrderRepository
}
