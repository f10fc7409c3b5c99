package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrCompleteTimeBeforeAssignTime = errors.New("complete time must be after assign time")
)

// Order is a delivery order and the aggregate root of its lifecycle.
//
// Order follows these invariants:
//   - id is positive and never changes
//   - weight is within kernel.MinWeight..kernel.MaxWeight
//   - region is positive
//   - courierID, assignTime and salaryCoefficient are either all set or all unset
//   - completeTime is only set on assigned orders and is after assignTime
type Order struct {
	id            int64
	weight        kernel.Weight
	region        int64
	deliveryHours []kernel.TimeInterval

	courierID         *int64
	assignTime        *time.Time
	salaryCoefficient *int
	completeTime      *time.Time
	deliveryTime      *time.Duration

	guard guard.ConstructorGuard
}

// NewOrder creates an unassigned order.
//
// Example:
//
//	weight, _ := kernel.NewWeightFromFloat(1)
//	hours, _ := kernel.ParseTimeIntervals([]string{"12:00-14:30"})
//	o, err := order.NewOrder(5, weight, 5, hours)
func NewOrder(id int64, weight kernel.Weight, region int64, deliveryHours []kernel.TimeInterval) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setWeight(weight),
		o.setRegion(region),
		o.setDeliveryHours(deliveryHours),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Assignment carries the persisted assignment and completion state of an order.
// The zero value describes an order that sits in the pool.
type Assignment struct {
	CourierID         *int64
	AssignTime        *time.Time
	SalaryCoefficient *int
	CompleteTime      *time.Time
	DeliveryTime      *time.Duration
}

// RestoreOrder rebuilds an order from persisted state and checks lifecycle consistency.
func RestoreOrder(
	id int64,
	weight kernel.Weight,
	region int64,
	deliveryHours []kernel.TimeInterval,
	assignment Assignment,
) (*Order, error) {
	o, err := NewOrder(id, weight, region, deliveryHours)
	if err != nil {
		return nil, err
	}

	if err = o.setAssignment(assignment); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() int64 {
	return o.id
}

func (o *Order) Weight() kernel.Weight {
	return o.weight
}

func (o *Order) Region() int64 {
	return o.region
}

// DeliveryHours returns a copy of the delivery windows.
func (o *Order) DeliveryHours() []kernel.TimeInterval {
	return slices.Clone(o.deliveryHours)
}

// Courier returns the id of the holding courier, nil while the order is pooled.
func (o *Order) Courier() *int64 {
	return o.courierID
}

func (o *Order) AssignTime() *time.Time {
	return o.assignTime
}

// SalaryCoefficient returns the coefficient captured at assignment.
func (o *Order) SalaryCoefficient() *int {
	return o.salaryCoefficient
}

func (o *Order) CompleteTime() *time.Time {
	return o.completeTime
}

func (o *Order) DeliveryTime() *time.Duration {
	return o.deliveryTime
}

// Status derives the lifecycle state from the stored timestamps.
func (o *Order) Status() Status {
	switch {
	case o.assignTime == nil:
		return Created
	case o.completeTime == nil:
		return Assigned
	default:
		return Completed
	}
}

// IsHeldBy reports whether the order is currently assigned to courierID and open.
func (o *Order) IsHeldBy(courierID int64) bool {
	return o.Status() == Assigned && o.courierID != nil && *o.courierID == courierID
}

// Assign hands the order to a courier and snapshots its salary coefficient.
func (o *Order) Assign(courierID int64, salaryCoefficient int, at time.Time) error {
	if courierID <= 0 {
		return errs.NewValueIsOutOfRangeError("courier id", courierID, 1, "unbounded")
	}
	if salaryCoefficient <= 0 {
		return errs.NewValueIsOutOfRangeError("salary coefficient", salaryCoefficient, 1, "unbounded")
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("assign time")
	}

	if _, err := o.Status().Assign(); err != nil {
		return err
	}

	o.courierID = &courierID
	o.salaryCoefficient = &salaryCoefficient
	o.assignTime = &at
	return nil
}

// Release puts an assigned, undelivered order back into the pool, clearing the
// courier, the assignment time and the coefficient snapshot.
func (o *Order) Release() error {
	if _, err := o.Status().Release(); err != nil {
		return err
	}

	o.courierID = nil
	o.assignTime = nil
	o.salaryCoefficient = nil
	return nil
}

// Complete marks the order delivered at the given time.
func (o *Order) Complete(at time.Time) error {
	if _, err := o.Status().Complete(); err != nil {
		return err
	}
	if !at.After(*o.assignTime) {
		return errs.NewValueIsInvalidErrorWithCause("complete time", ErrCompleteTimeBeforeAssignTime)
	}

	o.completeTime = &at
	return nil
}

// RecordDeliveryTime stores the computed delivery duration of a completed order.
// Durations are kept with whole-second precision.
func (o *Order) RecordDeliveryTime(d time.Duration) error {
	if o.Status() != Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to record delivery time", o.Status()),
		)
	}
	if d < 0 {
		return errs.NewValueIsOutOfRangeError("delivery time", d, 0, "unbounded")
	}

	d = d.Truncate(time.Second)
	o.deliveryTime = &d
	return nil
}

func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("order id", id, 1, "unbounded")
	}
	o.id = id
	return nil
}

func (o *Order) setWeight(weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}
	o.weight = weight
	return nil
}

func (o *Order) setRegion(region int64) error {
	if region <= 0 {
		return errs.NewValueIsOutOfRangeError("region", region, 1, "unbounded")
	}
	o.region = region
	return nil
}

func (o *Order) setDeliveryHours(hours []kernel.TimeInterval) error {
	for _, interval := range hours {
		if err := interval.Validate(); err != nil {
			return err
		}
	}
	o.deliveryHours = slices.Clone(hours)
	return nil
}

func (o *Order) setAssignment(a Assignment) error {
	assigned := a.CourierID != nil && a.AssignTime != nil && a.SalaryCoefficient != nil
	pooled := a.CourierID == nil && a.AssignTime == nil && a.SalaryCoefficient == nil

	switch {
	case pooled:
		if a.CompleteTime != nil || a.DeliveryTime != nil {
			return errs.NewValueIsInvalidErrorWithCause(
				"status is invalid", errors.New("unassigned order cannot be completed"))
		}
		return nil
	case !assigned:
		return errs.NewValueIsInvalidErrorWithCause(
			"assignment", errors.New("courier, assign time and coefficient must be set together"))
	}

	if err := o.Assign(*a.CourierID, *a.SalaryCoefficient, *a.AssignTime); err != nil {
		return err
	}

	if a.CompleteTime == nil {
		if a.DeliveryTime != nil {
			return errs.NewValueIsInvalidErrorWithCause(
				"delivery time", errors.New("delivery time requires a complete time"))
		}
		return nil
	}

	if err := o.Complete(*a.CompleteTime); err != nil {
		return err
	}

	if a.DeliveryTime != nil {
		return o.RecordDeliveryTime(*a.DeliveryTime)
	}
	return nil
}
