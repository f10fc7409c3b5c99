package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrdersCommandIsNotConstructed = errors.New(
	"AssignOrdersCommand must be created via NewAssignOrdersCommand constructor",
)

// AssignOrdersCommand hands every pooled order the courier can take to the courier.
//
// Example:
//
//	cmd, _ := NewAssignOrdersCommand(2)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	if len(result.OrderIDs) == 0 {
//	    // nothing to deliver right now
//	}
type AssignOrdersCommand struct {
	courierID int64
	guard     guard.ConstructorGuard
}

func NewAssignOrdersCommand(courierID int64) (AssignOrdersCommand, error) {
	if courierID <= 0 {
		return AssignOrdersCommand{}, errs.NewValueIsOutOfRangeError("courier id", courierID, 1, "unbounded")
	}

	return AssignOrdersCommand{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignOrdersCommand) CourierID() int64 {
	return c.courierID
}

func (c AssignOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrdersCommandIsNotConstructed)
}
