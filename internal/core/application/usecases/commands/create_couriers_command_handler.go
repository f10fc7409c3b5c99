package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// CreateCouriersCommandHandler imports couriers all-or-nothing.
//
// An item is rejected when it fails domain validation, repeats an id seen earlier in
// the batch or uses an id that is already stored. Any rejection aborts the batch
// with *InvalidImportError.
type CreateCouriersCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewCreateCouriersCommandHandler(uowFactory CourierUoWFactory) CreateCouriersCommandHandler {
	return CreateCouriersCommandHandler{uowFactory: uowFactory}
}

// Handle returns the ids of the stored couriers in batch order.
func (h CreateCouriersCommandHandler) Handle(ctx context.Context, command CreateCouriersCommand) ([]int64, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	invalid := newInvalidImportError("couriers")
	couriers := make([]*courier.Courier, 0, len(command.Items()))
	seen := make(map[int64]struct{}, len(command.Items()))

	for _, item := range command.Items() {
		if _, dup := seen[item.ID]; dup {
			invalid.add(item.ID, errs.NewObjectAlreadyExistsError("courier", item.ID))
			continue
		}
		seen[item.ID] = struct{}{}

		c, err := buildCourier(item)
		if err != nil {
			invalid.add(item.ID, err)
			continue
		}
		couriers = append(couriers, c)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CourierRepository()

	existing, err := repo.ExistingIDs(ctx, candidateCourierIDs(couriers))
	if err != nil {
		return nil, err
	}
	for _, id := range existing {
		invalid.add(id, errs.NewObjectAlreadyExistsError("courier", id))
	}

	if !invalid.empty() {
		return nil, invalid
	}

	ids := make([]int64, 0, len(couriers))
	for _, c := range couriers {
		if err = repo.Add(ctx, c); err != nil {
			return nil, err
		}
		ids = append(ids, c.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}

func buildCourier(item CourierImportItem) (*courier.Courier, error) {
	courierType, typeErr := courier.ParseType(item.Type)
	hours, hoursErr := kernel.ParseTimeIntervals(item.WorkingHours)
	if typeErr != nil || hoursErr != nil {
		return nil, errors.Join(typeErr, hoursErr)
	}

	return courier.NewCourier(item.ID, courierType, item.Regions, hours)
}

func candidateCourierIDs(couriers []*courier.Courier) []int64 {
	ids := make([]int64, 0, len(couriers))
	for _, c := range couriers {
		ids = append(ids, c.ID())
	}
	return ids
}
