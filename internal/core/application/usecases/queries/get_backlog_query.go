package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	ErrGetBacklogQueryIsNotConstructed = errors.New(
		"GetBacklogQuery must be created via NewGetBacklogQuery constructor",
	)
)

// GetBacklogQuery counts orders per lifecycle stage.
type GetBacklogQuery struct {
	guard guard.ConstructorGuard
}

func NewGetBacklogQuery() GetBacklogQuery {
	return GetBacklogQuery{guard: guard.NewConstructorGuard()}
}

func (q GetBacklogQuery) Validate() error {
	return q.guard.Validate(ErrGetBacklogQueryIsNotConstructed)
}

// GetBacklogQueryResponse holds the order counts.
// InFlight orders are assigned but not yet completed.
type GetBacklogQueryResponse struct {
	Unassigned int64
	InFlight   int64
	Completed  int64
}
