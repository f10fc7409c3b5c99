package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateCouriersCommandIsNotConstructed = errors.New(
	"CreateCouriersCommand must be created via NewCreateCouriersCommand constructor",
)

// CourierImportItem is one courier of a bulk import as received from a client.
type CourierImportItem struct {
	ID           int64
	Type         string
	Regions      []int64
	WorkingHours []string
}

// CreateCouriersCommand registers a batch of couriers. The batch is stored only when
// every item is valid and no id is taken.
//
// Example:
//
//	cmd, err := NewCreateCouriersCommand([]CourierImportItem{
//	    {ID: 1, Type: "foot", Regions: []int64{1, 12}, WorkingHours: []string{"11:35-14:05"}},
//	})
type CreateCouriersCommand struct {
	items []CourierImportItem
	guard guard.ConstructorGuard
}

// NewCreateCouriersCommand creates a command for a non-empty batch.
func NewCreateCouriersCommand(items []CourierImportItem) (CreateCouriersCommand, error) {
	if len(items) == 0 {
		return CreateCouriersCommand{}, errs.NewValueIsRequiredError("couriers")
	}

	return CreateCouriersCommand{
		items: items,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCouriersCommand) Items() []CourierImportItem {
	return c.items
}

func (c CreateCouriersCommand) Validate() error {
	return c.guard.Validate(ErrCreateCouriersCommandIsNotConstructed)
}
