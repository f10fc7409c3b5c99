package services

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

var ErrOrderIsNotCompleted = errors.New("order is not completed")

// DeliveryTimeCalculator derives how long a courier spent on a completed order.
//
// The first completion of a courier in a region is measured from the assignment
// time. Any later completion is measured from the latest earlier completion of the
// same courier in the same region.
type DeliveryTimeCalculator struct{}

func NewDeliveryTimeCalculator() DeliveryTimeCalculator {
	return DeliveryTimeCalculator{}
}

// Calculate returns the delivery time of completed, given the courier's other
// completed orders in the order region.
//
// Entries of previous that are the order itself, belong to another region or
// completed after completed are ignored, so completions reported out of order still
// produce a non-negative duration.
func (c DeliveryTimeCalculator) Calculate(completed *order.Order, previous []*order.Order) (time.Duration, error) {
	if err := completed.Validate(); err != nil {
		return 0, err
	}
	if completed.Status() != order.Completed {
		return 0, errs.NewValueIsInvalidErrorWithCause("order", ErrOrderIsNotCompleted)
	}

	completeTime := *completed.CompleteTime()
	since := *completed.AssignTime()

	var latest *time.Time
	for _, p := range previous {
		if p.IsEqual(completed) || p.Region() != completed.Region() || p.CompleteTime() == nil {
			continue
		}
		pt := *p.CompleteTime()
		if pt.After(completeTime) {
			continue
		}
		if latest == nil || pt.After(*latest) {
			latest = &pt
		}
	}

	if latest != nil {
		since = *latest
	}

	return completeTime.Sub(since).Truncate(time.Second), nil
}
