package commands

import (
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand reports that a courier delivered one of its orders.
type CompleteOrderCommand struct {
	courierID    int64
	orderID      int64
	completeTime time.Time
	guard        guard.ConstructorGuard
}

func NewCompleteOrderCommand(courierID, orderID int64, completeTime time.Time) (CompleteOrderCommand, error) {
	var validationErrs []error
	if courierID <= 0 {
		validationErrs = append(validationErrs,
			errs.NewValueIsOutOfRangeError("courier id", courierID, 1, "unbounded"))
	}
	if orderID <= 0 {
		validationErrs = append(validationErrs,
			errs.NewValueIsOutOfRangeError("order id", orderID, 1, "unbounded"))
	}
	if completeTime.IsZero() {
		validationErrs = append(validationErrs, errs.NewValueIsRequiredError("complete time"))
	}
	if err := errors.Join(validationErrs...); err != nil {
		return CompleteOrderCommand{}, err
	}

	return CompleteOrderCommand{
		courierID:    courierID,
		orderID:      orderID,
		completeTime: completeTime,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteOrderCommand) CourierID() int64 {
	return c.courierID
}

func (c CompleteOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c CompleteOrderCommand) CompleteTime() time.Time {
	return c.completeTime
}

func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}
