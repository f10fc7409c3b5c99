package services

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
)

// OrderMatcher decides which orders fit a courier profile.
//
// Business rules:
//   - Only pooled orders are offered to a courier
//   - Eligibility is decided by courier.Courier.CanTakeOrder
//   - The input order is preserved in the output
//
// Example usage:
//
//	matcher := services.NewOrderMatcher()
//	eligible, err := matcher.SelectAssignable(c, candidates)
type OrderMatcher struct{}

func NewOrderMatcher() OrderMatcher {
	return OrderMatcher{}
}

// SelectAssignable returns the pooled orders among candidates that the courier can take.
func (m OrderMatcher) SelectAssignable(c *courier.Courier, candidates []*order.Order) ([]*order.Order, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var eligible []*order.Order
	for _, o := range candidates {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if o.Status() != order.Created {
			continue
		}

		ok, err := c.CanTakeOrder(o)
		if err != nil {
			return nil, err
		}
		if ok {
			eligible = append(eligible, o)
		}
	}

	return eligible, nil
}

// SelectWithdrawable returns the open orders held by the courier that its current
// profile no longer allows. Orders held by another courier and completed orders are
// never returned.
func (m OrderMatcher) SelectWithdrawable(c *courier.Courier, held []*order.Order) ([]*order.Order, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var withdrawable []*order.Order
	for _, o := range held {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if !o.IsHeldBy(c.ID()) {
			continue
		}

		ok, err := c.CanTakeOrder(o)
		if err != nil {
			return nil, err
		}
		if !ok {
			withdrawable = append(withdrawable, o)
		}
	}

	return withdrawable, nil
}
