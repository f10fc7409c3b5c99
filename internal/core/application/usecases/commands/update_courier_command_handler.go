package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// UpdateCourierResult is the courier after the patch and the orders taken away from it.
type UpdateCourierResult struct {
	Courier  *courier.Courier
	Released []int64
}

// UpdateCourierCommandHandler applies a courier patch and reconciles held orders in
// the same transaction.
type UpdateCourierCommandHandler struct {
	uowFactory UoWFactory
	reconciler WithdrawalReconciler
}

func NewUpdateCourierCommandHandler(uowFactory UoWFactory) UpdateCourierCommandHandler {
	return UpdateCourierCommandHandler{
		uowFactory: uowFactory,
		reconciler: NewWithdrawalReconciler(),
	}
}

func (h UpdateCourierCommandHandler) Handle(ctx context.Context, command UpdateCourierCommand) (UpdateCourierResult, error) {
	if err := command.Validate(); err != nil {
		return UpdateCourierResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateCourierResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	c, err := courierRepo.GetForUpdate(ctx, command.CourierID())
	if err != nil {
		return UpdateCourierResult{}, err
	}

	if err = applyPatch(c, command.Patch()); err != nil {
		return UpdateCourierResult{}, err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return UpdateCourierResult{}, err
	}

	released, err := h.reconciler.Reconcile(ctx, orderRepo, c)
	if err != nil {
		return UpdateCourierResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateCourierResult{}, err
	}

	return UpdateCourierResult{Courier: c, Released: released}, nil
}

func applyPatch(c *courier.Courier, patch CourierPatch) error {
	var patchErrs []error

	if patch.Type != nil {
		courierType, err := courier.ParseType(*patch.Type)
		if err == nil {
			err = c.ChangeType(courierType)
		}
		patchErrs = append(patchErrs, err)
	}

	if patch.Regions != nil {
		patchErrs = append(patchErrs, c.ChangeRegions(*patch.Regions))
	}

	if patch.WorkingHours != nil {
		hours, err := kernel.ParseTimeIntervals(*patch.WorkingHours)
		if err == nil {
			err = c.ChangeWorkingHours(hours)
		}
		patchErrs = append(patchErrs, err)
	}

	return errors.Join(patchErrs...)
}
