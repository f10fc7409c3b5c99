package commands

import (
	"context"

	"dispatch/internal/core/domain/services"
)

// CompleteOrderCommandHandler is the completion processor. It locks the courier,
// marks the order delivered, derives its delivery time from the courier's previous
// completion in the region and folds the result into the courier rating and earnings.
//
// An order that is unknown, held by another courier or already completed yields
// errs.ErrObjectNotFound.
type CompleteOrderCommandHandler struct {
	uowFactory       UoWFactory
	deliveryTimeCalc services.DeliveryTimeCalculator
	ratingCalc       services.RatingCalculator
}

func NewCompleteOrderCommandHandler(uowFactory UoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory:       uowFactory,
		deliveryTimeCalc: services.NewDeliveryTimeCalculator(),
		ratingCalc:       services.NewRatingCalculator(),
	}
}

// Handle returns the id of the completed order.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, command CompleteOrderCommand) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	c, err := courierRepo.GetForUpdate(ctx, command.CourierID())
	if err != nil {
		return 0, err
	}

	o, err := orderRepo.GetOpenForCourier(ctx, c.ID(), command.OrderID())
	if err != nil {
		return 0, err
	}

	previous, err := orderRepo.GetCompletedByCourierInRegion(ctx, c.ID(), o.Region())
	if err != nil {
		return 0, err
	}

	if err = o.Complete(command.CompleteTime()); err != nil {
		return 0, err
	}

	deliveryTime, err := h.deliveryTimeCalc.Calculate(o, previous)
	if err != nil {
		return 0, err
	}

	if err = o.RecordDeliveryTime(deliveryTime); err != nil {
		return 0, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return 0, err
	}

	if err = h.ratingCalc.UpdateCourier(c, previous, o); err != nil {
		return 0, err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return o.ID(), nil
}
