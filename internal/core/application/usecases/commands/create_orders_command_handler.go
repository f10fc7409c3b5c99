package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// CreateOrdersCommandHandler imports orders all-or-nothing, with the same rejection
// rules as CreateCouriersCommandHandler.
type CreateOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrdersCommandHandler(uowFactory OrderUoWFactory) CreateOrdersCommandHandler {
	return CreateOrdersCommandHandler{uowFactory: uowFactory}
}

// Handle returns the ids of the stored orders in batch order.
func (h CreateOrdersCommandHandler) Handle(ctx context.Context, command CreateOrdersCommand) ([]int64, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	invalid := newInvalidImportError("orders")
	orders := make([]*order.Order, 0, len(command.Items()))
	seen := make(map[int64]struct{}, len(command.Items()))

	for _, item := range command.Items() {
		if _, dup := seen[item.ID]; dup {
			invalid.add(item.ID, errs.NewObjectAlreadyExistsError("order", item.ID))
			continue
		}
		seen[item.ID] = struct{}{}

		o, err := buildOrder(item)
		if err != nil {
			invalid.add(item.ID, err)
			continue
		}
		orders = append(orders, o)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	candidates := make([]int64, 0, len(orders))
	for _, o := range orders {
		candidates = append(candidates, o.ID())
	}

	existing, err := repo.ExistingIDs(ctx, candidates)
	if err != nil {
		return nil, err
	}
	for _, id := range existing {
		invalid.add(id, errs.NewObjectAlreadyExistsError("order", id))
	}

	if !invalid.empty() {
		return nil, invalid
	}

	for _, o := range orders {
		if err = repo.Add(ctx, o); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return candidates, nil
}

func buildOrder(item OrderImportItem) (*order.Order, error) {
	weight, weightErr := kernel.NewWeight(item.Weight)
	hours, hoursErr := kernel.ParseTimeIntervals(item.DeliveryHours)
	if weightErr != nil || hoursErr != nil {
		return nil, errors.Join(weightErr, hoursErr)
	}

	return order.NewOrder(item.ID, weight, item.Region, hours)
}
