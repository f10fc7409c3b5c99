// Package ports defines repository interfaces for the dispatch domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate.
	// Returns errs.ErrObjectAlreadyExists when the id is taken.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists profile and statistics changes of an existing courier.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier by id.
	// Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id int64) (*courier.Courier, error)

	// GetForUpdate retrieves a courier by id and locks its row until the surrounding
	// transaction ends. Operations that read and then rewrite courier statistics or
	// held orders must load the courier through this method so that concurrent
	// requests for the same courier are serialised.
	GetForUpdate(ctx context.Context, id int64) (*courier.Courier, error)

	// ExistingIDs returns the subset of ids that are already stored.
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}
