package commands

import (
	"context"
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/serviceperiod"
	"pizzeria/internal/pkg/errs"
)

// OpenServiceCommandHandler handles opening a service period.
// The at-most-one-open rule is checked with a transactional read here and
// backstopped by a partial unique index in the store, so two concurrent
// opens cannot both succeed. Orders placed earlier the same day while no
// period was open are adopted into the new one.
type OpenServiceCommandHandler struct {
	uowFactory ServiceUoWFactory
}

// NewOpenServiceCommandHandler creates a handler for opening service
// periods.
func NewOpenServiceCommandHandler(uowFactory ServiceUoWFactory) OpenServiceCommandHandler {
	return OpenServiceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the open command.
// Returns serviceperiod.ErrServiceAlreadyOpen when a period is open.
func (h OpenServiceCommandHandler) Handle(ctx context.Context, cmd OpenServiceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	serviceRepo := uow.ServicePeriodRepository()

	_, err := serviceRepo.GetOpen(ctx)
	if err == nil {
		return serviceperiod.ErrServiceAlreadyOpen
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	period, err := serviceperiod.OpenServicePeriod(cmd.ServiceID(), now)
	if err != nil {
		return err
	}

	if err = serviceRepo.Add(ctx, period); err != nil {
		return err
	}

	if err = h.adoptOrphans(ctx, uow, period, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// adoptOrphans attaches same-day orders that were placed while no period
// was open.
func (h OpenServiceCommandHandler) adoptOrphans(
	ctx context.Context,
	uow ServiceUoW,
	period *serviceperiod.ServicePeriod,
	now time.Time,
) error {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	orderRepo := uow.OrderRepository()
	orphans, err := orderRepo.GetAllUnattachedSince(ctx, startOfDay)
	if err != nil {
		return err
	}

	for _, orphan := range orphans {
		// Cancelled (or otherwise terminal) orders stay out of the period.
		if orphan.Status().IsTerminal() {
			continue
		}
		if err = orphan.AttachToService(period.ID()); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, orphan); err != nil {
			return err
		}
	}

	return nil
}
