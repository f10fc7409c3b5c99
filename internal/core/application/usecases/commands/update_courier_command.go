package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateCourierCommandIsNotConstructed = errors.New(
	"UpdateCourierCommand must be created via NewUpdateCourierCommand constructor",
)

// CourierPatch holds the profile fields to change. A nil field is left as is; an
// empty non-nil slice clears the field.
type CourierPatch struct {
	Type         *string
	Regions      *[]int64
	WorkingHours *[]string
}

func (p CourierPatch) isEmpty() bool {
	return p.Type == nil && p.Regions == nil && p.WorkingHours == nil
}

// UpdateCourierCommand changes a courier profile and withdraws the orders the new
// profile no longer allows.
type UpdateCourierCommand struct {
	courierID int64
	patch     CourierPatch
	guard     guard.ConstructorGuard
}

func NewUpdateCourierCommand(courierID int64, patch CourierPatch) (UpdateCourierCommand, error) {
	if courierID <= 0 {
		return UpdateCourierCommand{}, errs.NewValueIsOutOfRangeError("courier id", courierID, 1, "unbounded")
	}
	if patch.isEmpty() {
		return UpdateCourierCommand{}, errs.NewValueIsRequiredError("courier patch")
	}

	return UpdateCourierCommand{
		courierID: courierID,
		patch:     patch,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCourierCommand) CourierID() int64 {
	return c.courierID
}

func (c UpdateCourierCommand) Patch() CourierPatch {
	return c.patch
}

func (c UpdateCourierCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierCommandIsNotConstructed)
}
