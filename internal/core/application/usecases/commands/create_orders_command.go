package commands

import (
	"errors"

	"github.com/shopspring/decimal"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrdersCommandIsNotConstructed = errors.New(
	"CreateOrdersCommand must be created via NewCreateOrdersCommand constructor",
)

// OrderImportItem is one order of a bulk import as received from a client.
type OrderImportItem struct {
	ID            int64
	Weight        decimal.Decimal
	Region        int64
	DeliveryHours []string
}

// CreateOrdersCommand puts a batch of orders into the pool. The batch is stored only
// when every item is valid and no id is taken.
type CreateOrdersCommand struct {
	items []OrderImportItem
	guard guard.ConstructorGuard
}

// NewCreateOrdersCommand creates a command for a non-empty batch.
func NewCreateOrdersCommand(items []OrderImportItem) (CreateOrdersCommand, error) {
	if len(items) == 0 {
		return CreateOrdersCommand{}, errs.NewValueIsRequiredError("orders")
	}

	return CreateOrdersCommand{
		items: items,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrdersCommand) Items() []OrderImportItem {
	return c.items
}

func (c CreateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrdersCommandIsNotConstructed)
}
