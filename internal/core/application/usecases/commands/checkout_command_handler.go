package commands

import (
	"context"
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/policy"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

// CheckoutCommandHandler handles the business logic for order placement.
// Resolves or creates the customer by phone, secures the cart pricing
// against the catalog, applies the delivery and loyalty rules, and
// persists the customer mutation together with the new order in a single
// transaction. A failure anywhere leaves no partial order behind.
type CheckoutCommandHandler struct {
	uowFactory     CheckoutUoWFactory
	catalog        ports.ProductCatalog
	policyProvider ports.PolicyProvider
}

// CheckoutResult reports the loyalty side effects of a placed order so the
// API can echo them back to the customer.
type CheckoutResult struct {
	StampsEarned   int
	PointsDeducted int
}

// NewCheckoutCommandHandler creates a handler for order placement.
// Requires a CheckoutUoWFactory for transactional persistence plus the
// read-only catalog and policy lookups.
func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	catalog ports.ProductCatalog,
	policyProvider ports.PolicyProvider,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory:     uowFactory,
		catalog:        catalog,
		policyProvider: policyProvider,
	}
}

// Handle processes the checkout command.
// Pricing and zone validation run before the transaction; everything that
// mutates state (customer profile, loyalty balance, stamps, addresses, the
// order itself) runs inside one transaction and is rolled back together.
func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (CheckoutResult, error) {
	if err := cmd.Validate(); err != nil {
		return CheckoutResult{}, err
	}

	operatingPolicy, err := h.policyProvider.Get(ctx)
	if err != nil {
		return CheckoutResult{}, err
	}

	cart, err := h.priceCart(ctx, cmd, operatingPolicy)
	if err != nil {
		return CheckoutResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CheckoutResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customerRepo := uow.CustomerRepository()

	buyer, err := h.resolveCustomer(ctx, customerRepo, cmd.Customer())
	if err != nil {
		return CheckoutResult{}, err
	}

	var addressID *kernel.UUID
	deliveryFee := kernel.ZeroMoney()
	if cmd.Mode() == order.ModeDelivery {
		address, err := h.resolveAddress(ctx, customerRepo, buyer.ID(), *cmd.Address())
		if err != nil {
			return CheckoutResult{}, err
		}
		id := address.ID()
		addressID = &id

		deliveryFee, err = services.NewDeliveryPolicy().Fee(
			cmd.Address().PostalCode, cart.Subtotal, operatingPolicy)
		if err != nil {
			return CheckoutResult{}, err
		}
	}

	if cart.RewardCost > 0 {
		if err = buyer.RedeemPoints(cart.RewardCost); err != nil {
			return CheckoutResult{}, err
		}
	}

	stamps := services.NewStampCounter().Count(cart.Items, operatingPolicy.Loyalty())
	if stamps > 0 {
		if err = buyer.EarnStamps(stamps); err != nil {
			return CheckoutResult{}, err
		}
	}

	if err = customerRepo.Update(ctx, buyer); err != nil {
		return CheckoutResult{}, err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), buyer.ID(), addressID, cmd.Mode(),
		cart.Items, deliveryFee, cmd.Comment(), now)
	if err != nil {
		return CheckoutResult{}, err
	}

	openPeriod, err := uow.ServicePeriodRepository().GetOpen(ctx)
	switch {
	case err == nil:
		if err = newOrder.AttachToService(openPeriod.ID()); err != nil {
			return CheckoutResult{}, err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		// No service open: the order stays unattached and is adopted
		// when the next period opens the same day.
	default:
		return CheckoutResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return CheckoutResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CheckoutResult{}, err
	}

	return CheckoutResult{
		StampsEarned:   stamps,
		PointsDeducted: cart.RewardCost,
	}, nil
}

func (h CheckoutCommandHandler) priceCart(
	ctx context.Context,
	cmd CheckoutCommand,
	operatingPolicy policy.Policy,
) (services.PricedCart, error) {
	ids := make([]kernel.UUID, 0, len(cmd.Lines()))
	lines := make([]services.CartLine, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		ids = append(ids, line.ProductID)
		lines = append(lines, services.CartLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			IsReward:  line.IsReward,
			IsFree:    line.IsFree,
			Notes:     line.Notes,
		})
	}

	catalog, err := h.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return services.PricedCart{}, err
	}

	return services.NewCartPricer().Price(lines, catalog, operatingPolicy.Loyalty())
}

func (h CheckoutCommandHandler) resolveCustomer(
	ctx context.Context,
	repo ports.CustomerRepository,
	block CheckoutCustomer,
) (*customer.Customer, error) {
	buyer, err := repo.GetByPhone(ctx, block.Phone)
	if errors.Is(err, errs.ErrObjectNotFound) {
		buyer, err = customer.NewCustomer(kernel.NewUUID(), block.Phone, block.Name, block.Email)
		if err != nil {
			return nil, err
		}
		if err = repo.Add(ctx, buyer); err != nil {
			return nil, err
		}
		return buyer, nil
	}
	if err != nil {
		return nil, err
	}

	buyer.Refresh(block.Name, block.Email)
	return buyer, nil
}

func (h CheckoutCommandHandler) resolveAddress(
	ctx context.Context,
	repo ports.CustomerRepository,
	customerID kernel.UUID,
	block CheckoutAddress,
) (*customer.Address, error) {
	address, err := repo.FindAddress(ctx, customerID, block.Street, block.PostalCode, block.City)
	if errors.Is(err, errs.ErrObjectNotFound) {
		address, err = customer.NewAddress(kernel.NewUUID(), customerID,
			block.Street, block.PostalCode, block.City, block.Label, block.AdditionalInfo)
		if err != nil {
			return nil, err
		}
		if err = repo.AddAddress(ctx, address); err != nil {
			return nil, err
		}
		return address, nil
	}
	if err != nil {
		return nil, err
	}

	address.RefreshDetails(block.Label, block.AdditionalInfo)
	if err = repo.UpdateAddress(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}
