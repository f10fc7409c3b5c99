package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/services"
)

// AssignOrdersResult lists the orders claimed by one assignment call.
// AssignTime is nil when nothing was claimed.
type AssignOrdersResult struct {
	OrderIDs   []int64
	AssignTime *time.Time
}

// AssignOrdersCommandHandler is the assignment engine. In one transaction it:
//   - locks the courier row
//   - loads pooled orders in the courier regions that fit its capacity
//   - keeps those whose delivery hours overlap the courier working hours
//   - claims them with one shared assignment time and the current salary coefficient
//
// Orders claimed concurrently by another courier are skipped, so a call may return
// fewer orders than matched, or none.
type AssignOrdersCommandHandler struct {
	uowFactory UoWFactory
	matcher    services.OrderMatcher
	now        func() time.Time
}

// NewAssignOrdersCommandHandler creates the handler. now defaults to time.Now.
func NewAssignOrdersCommandHandler(uowFactory UoWFactory, now func() time.Time) AssignOrdersCommandHandler {
	if now == nil {
		now = time.Now
	}

	return AssignOrdersCommandHandler{
		uowFactory: uowFactory,
		matcher:    services.NewOrderMatcher(),
		now:        now,
	}
}

func (h AssignOrdersCommandHandler) Handle(ctx context.Context, command AssignOrdersCommand) (AssignOrdersResult, error) {
	if err := command.Validate(); err != nil {
		return AssignOrdersResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignOrdersResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	c, err := courierRepo.GetForUpdate(ctx, command.CourierID())
	if err != nil {
		return AssignOrdersResult{}, err
	}

	profile := c.Profile()

	candidates, err := orderRepo.FindAssignable(ctx, c.Regions(), profile.Capacity)
	if err != nil {
		return AssignOrdersResult{}, err
	}

	eligible, err := h.matcher.SelectAssignable(c, candidates)
	if err != nil {
		return AssignOrdersResult{}, err
	}
	if len(eligible) == 0 {
		return AssignOrdersResult{OrderIDs: []int64{}}, nil
	}

	assignTime := h.now().UTC().Truncate(time.Microsecond)
	for _, o := range eligible {
		if err = o.Assign(c.ID(), profile.SalaryCoefficient, assignTime); err != nil {
			return AssignOrdersResult{}, err
		}
	}

	claimed, err := orderRepo.Claim(ctx, eligible)
	if err != nil {
		return AssignOrdersResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignOrdersResult{}, err
	}

	result := AssignOrdersResult{OrderIDs: claimed}
	if len(claimed) > 0 {
		result.AssignTime = &assignTime
	}

	return result, nil
}
