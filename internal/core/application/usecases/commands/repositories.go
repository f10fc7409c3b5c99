// Package commands contains the write side of the dispatch service: bulk imports,
// courier profile changes, order assignment and order completion.
//
// Every handler validates its command, opens one unit of work, works through the
// repositories it hands out and commits. The deferred rollback is a no-op after a
// successful commit.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Handlers depend on the narrowest unit of work that covers the tables they touch.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// OrderUoW serves CreateOrdersCommandHandler.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW serves CreateCouriersCommandHandler.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW spans both tables. Assignment, completion and profile updates lock the
	// courier row first and then read or write its orders in the same transaction:
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil {
	//	    return err
	//	}
	//	defer func() { _ = uow.Rollback(ctx) }()
	//
	//	c, err := uow.CourierRepository().GetForUpdate(ctx, courierID)
	//	// ... work with uow.OrderRepository()
	//
	//	return uow.Commit(ctx)
	UoW interface {
		TxManager
		CourierRepoFactory
		OrderRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
