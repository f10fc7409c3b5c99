package services

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// RatingCalculator folds a freshly completed order into the courier statistics.
//
// Business rules:
//   - The average is taken over the delivery times of every completed order of the
//     courier in the region, the new one included
//   - The rating only moves when the average beats the fastest average so far
//   - Earnings grow by courier.BasePayment times the coefficient snapshot of the order
//     on every completion
type RatingCalculator struct{}

func NewRatingCalculator() RatingCalculator {
	return RatingCalculator{}
}

// UpdateCourier applies completed to c. previous holds the other completed orders of
// the courier in the same region; completed must already carry its delivery time.
func (r RatingCalculator) UpdateCourier(c *courier.Courier, previous []*order.Order, completed *order.Order) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := completed.Validate(); err != nil {
		return err
	}
	if completed.DeliveryTime() == nil {
		return errs.NewValueIsRequiredError("delivery time")
	}
	if completed.SalaryCoefficient() == nil {
		return errs.NewValueIsRequiredError("salary coefficient")
	}

	avg := AverageDeliveryTime(append([]*order.Order{completed}, previous...))

	if _, err := c.ApplyAverageDeliveryTime(avg); err != nil {
		return err
	}

	return c.AddEarnings(*completed.SalaryCoefficient())
}

// AverageDeliveryTime is the mean delivery time of the orders that have one.
// Duplicates of the same order are counted once.
func AverageDeliveryTime(orders []*order.Order) time.Duration {
	var (
		total time.Duration
		n     int64
		seen  = make(map[int64]struct{}, len(orders))
	)

	for _, o := range orders {
		if o.DeliveryTime() == nil {
			continue
		}
		if _, ok := seen[o.ID()]; ok {
			continue
		}
		seen[o.ID()] = struct{}{}
		total += *o.DeliveryTime()
		n++
	}

	if n == 0 {
		return 0
	}
	return total / time.Duration(n)
}
