package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// WithdrawalReconciler returns to the pool the open orders a courier can no longer
// take after its profile changed. It runs inside the caller's transaction and must
// be given a courier loaded with GetForUpdate.
type WithdrawalReconciler struct {
	matcher services.OrderMatcher
}

func NewWithdrawalReconciler() WithdrawalReconciler {
	return WithdrawalReconciler{matcher: services.NewOrderMatcher()}
}

// Reconcile releases every ineligible open order held by c and returns their ids in
// ascending order. Eligible orders keep their assignment, including the salary
// coefficient captured when they were assigned.
func (r WithdrawalReconciler) Reconcile(
	ctx context.Context,
	orders ports.OrderRepository,
	c *courier.Courier,
) ([]int64, error) {
	held, err := orders.GetOpenByCourier(ctx, c.ID())
	if err != nil {
		return nil, err
	}

	withdrawable, err := r.matcher.SelectWithdrawable(c, held)
	if err != nil {
		return nil, err
	}
	if len(withdrawable) == 0 {
		return []int64{}, nil
	}

	for _, o := range withdrawable {
		if err = o.Release(); err != nil {
			return nil, err
		}
	}

	return orders.Release(ctx, c.ID(), withdrawable)
}
