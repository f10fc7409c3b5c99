package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// Returns errs.ErrObjectAlreadyExists when the id is taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the assignment and completion state of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// ExistingIDs returns the subset of ids that are already stored.
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)

	// FindAssignable returns the unassigned orders located in one of regions whose
	// weight does not exceed maxWeight, ordered by id. Working-hour matching is left
	// to the caller.
	FindAssignable(ctx context.Context, regions []int64, maxWeight decimal.Decimal) ([]*order.Order, error)

	// Claim stores the assignment of orders that were assigned in memory to the same
	// courier at the same time. Only orders that are still unassigned in storage are
	// written; the ids actually claimed are returned in ascending order.
	Claim(ctx context.Context, orders []*order.Order) ([]int64, error)

	// GetOpenByCourier returns the orders held by the courier that are not completed.
	GetOpenByCourier(ctx context.Context, courierID int64) ([]*order.Order, error)

	// Release stores the release of orders previously held by courierID. Orders that
	// were completed or moved to another courier in the meantime are left untouched;
	// the ids actually released are returned in ascending order.
	Release(ctx context.Context, courierID int64, orders []*order.Order) ([]int64, error)

	// GetOpenForCourier returns the order with orderID if it is held by courierID and
	// not completed. Returns errs.ErrObjectNotFound otherwise.
	GetOpenForCourier(ctx context.Context, courierID, orderID int64) (*order.Order, error)

	// GetCompletedByCourierInRegion returns the completed orders of the courier in the
	// region, latest completion first.
	GetCompletedByCourierInRegion(ctx context.Context, courierID, region int64) ([]*order.Order, error)
}
