package commands

import (
	"context"
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/serviceperiod"
	"pizzeria/internal/pkg/errs"
)

// CloseServiceCommandHandler handles closing the open service period.
// Every order of the period still in a live status is force-transitioned
// to not_delivered, then the period's closing stats are computed over the
// fulfilled orders and frozen onto it. The sweep, the stats and the status
// flip commit together.
type CloseServiceCommandHandler struct {
	uowFactory ServiceUoWFactory
}

// NewCloseServiceCommandHandler creates a handler for closing service
// periods.
func NewCloseServiceCommandHandler(uowFactory ServiceUoWFactory) CloseServiceCommandHandler {
	return CloseServiceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the close command.
// Returns serviceperiod.ErrNoServiceOpen when no period is open.
func (h CloseServiceCommandHandler) Handle(ctx context.Context, cmd CloseServiceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	serviceRepo := uow.ServicePeriodRepository()

	period, err := serviceRepo.GetOpen(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return serviceperiod.ErrNoServiceOpen
	}
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.GetAllByService(ctx, period.ID())
	if err != nil {
		return err
	}

	for _, aggregate := range orders {
		if aggregate.Status().IsTerminal() {
			continue
		}
		if err = aggregate.ForceNotDelivered(); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	stats, err := closingStats(orders)
	if err != nil {
		return err
	}

	if err = period.Close(stats, time.Now().UTC()); err != nil {
		return err
	}

	if err = serviceRepo.Update(ctx, period); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// closingStats aggregates the period's fulfilled orders. Cancelled and
// swept orders are excluded from the count and revenue; the top item is
// the product name with the highest total quantity.
func closingStats(orders []*order.Order) (serviceperiod.ClosingStats, error) {
	count := 0
	revenue := kernel.ZeroMoney()
	quantities := make(map[string]int)

	for _, aggregate := range orders {
		if aggregate.Status() == order.StatusCancelled ||
			aggregate.Status() == order.StatusNotDelivered {
			continue
		}

		count++
		revenue = revenue.Add(aggregate.TotalAmount())
		for _, item := range aggregate.Items() {
			quantities[item.Name()] += item.Quantity()
		}
	}

	topItem := ""
	topQuantity := 0
	for name, quantity := range quantities {
		if quantity > topQuantity || (quantity == topQuantity && (topItem == "" || name < topItem)) {
			topItem = name
			topQuantity = quantity
		}
	}

	return serviceperiod.NewClosingStats(count, revenue, topItem)
}
