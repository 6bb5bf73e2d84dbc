package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/product"
	"pizzeria/internal/core/domain/model/serviceperiod"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/pkg/errs"
)

func checkoutCatalogOf(products ...product.Product) map[kernel.UUID]product.Product {
	catalog := make(map[kernel.UUID]product.Product, len(products))
	for _, p := range products {
		catalog[p.ID()] = p
	}
	return catalog
}

func TestCheckoutCommandHandler_Handle_PickupNewCustomer(t *testing.T) {
	ctx := t.Context()

	margherita := testProduct(t, "Margherita", 9.50, "pizza", true)
	cmd, err := commands.NewCheckoutCommand(
		kernel.NewUUID(),
		commands.CheckoutCustomer{Phone: "+33612345678", Name: "Ada"},
		order.ModePickup,
		nil,
		[]commands.CheckoutLine{{ProductID: margherita.ID(), Quantity: 2}},
		"",
	)
	require.NoError(t, err)

	policyProvider := new(MockPolicyProvider)
	catalog := new(MockProductCatalog)
	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	serviceRepo := new(MockServicePeriodRepository)
	uow := new(MockCheckoutUoW)

	var addedOrder *order.Order
	var addedCustomer *customer.Customer

	policyProvider.On("Get", ctx).Return(testPolicy(t), nil).Once()
	catalog.On("GetByIDs", ctx, mock.Anything).Return(checkoutCatalogOf(margherita), nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("GetByPhone", ctx, "+33612345678").Return(nil, errs.ErrObjectNotFound).Once(),
		customerRepo.On("Add", ctx, mock.AnythingOfType("*customer.Customer")).
			Run(func(args mock.Arguments) { addedCustomer = args.Get(1).(*customer.Customer) }).
			Return(nil).Once(),
		customerRepo.On("Update", ctx, mock.AnythingOfType("*customer.Customer")).Return(nil).Once(),
		uow.On("ServicePeriodRepository").Return(serviceRepo).Once(),
		serviceRepo.On("GetOpen", ctx).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { addedOrder = args.Get(1).(*order.Order) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCheckoutCommandHandler(factory, catalog, policyProvider)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, addedOrder)
	assert.Equal(t, order.StatusPending, addedOrder.Status())
	assert.True(t, addedOrder.TotalAmount().IsEqual(testMoney(t, 19.00)))
	assert.True(t, addedOrder.DeliveryFee().IsZero())
	assert.Nil(t, addedOrder.ServiceID())

	// Two paid pizza units earn two stamps, reported back to the caller.
	require.NotNil(t, addedCustomer)
	assert.Equal(t, 2, addedCustomer.LoyaltyPoints())
	assert.Equal(t, 2, result.StampsEarned)
	assert.Equal(t, 0, result.PointsDeducted)

	uow.AssertExpectations(t)
	customerRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCheckoutCommandHandler_Handle_DeliveryChargesFeeAndAttachesService(t *testing.T) {
	ctx := t.Context()

	margherita := testProduct(t, "Margherita", 9.50, "pizza", true)
	address := &commands.CheckoutAddress{Street: "1 Main St", PostalCode: "75001", City: "Paris"}
	cmd, err := commands.NewCheckoutCommand(
		kernel.NewUUID(),
		commands.CheckoutCustomer{Phone: "+33612345678"},
		order.ModeDelivery,
		address,
		[]commands.CheckoutLine{{ProductID: margherita.ID(), Quantity: 2}},
		"",
	)
	require.NoError(t, err)

	buyer, err := customer.RestoreCustomer(kernel.NewUUID(), "+33612345678", "Ada", "", 5)
	require.NoError(t, err)
	savedAddress, err := customer.RestoreAddress(kernel.NewUUID(), buyer.ID(),
		"1 Main St", "75001", "Paris", "home", "")
	require.NoError(t, err)
	openPeriod, err := serviceperiod.OpenServicePeriod(kernel.NewUUID(), time.Now().UTC())
	require.NoError(t, err)

	policyProvider := new(MockPolicyProvider)
	catalog := new(MockProductCatalog)
	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	serviceRepo := new(MockServicePeriodRepository)
	uow := new(MockCheckoutUoW)

	var addedOrder *order.Order

	policyProvider.On("Get", ctx).Return(testPolicy(t), nil).Once()
	catalog.On("GetByIDs", ctx, mock.Anything).Return(checkoutCatalogOf(margherita), nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("GetByPhone", ctx, "+33612345678").Return(buyer, nil).Once(),
		customerRepo.On("FindAddress", ctx, buyer.ID(), "1 Main St", "75001", "Paris").
			Return(savedAddress, nil).Once(),
		customerRepo.On("UpdateAddress", ctx, mock.AnythingOfType("*customer.Address")).Return(nil).Once(),
		customerRepo.On("Update", ctx, mock.AnythingOfType("*customer.Customer")).Return(nil).Once(),
		uow.On("ServicePeriodRepository").Return(serviceRepo).Once(),
		serviceRepo.On("GetOpen", ctx).Return(openPeriod, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { addedOrder = args.Get(1).(*order.Order) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCheckoutCommandHandler(factory, catalog, policyProvider)
	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, addedOrder)
	assert.True(t, addedOrder.DeliveryFee().IsEqual(testMoney(t, 3.00)))
	assert.True(t, addedOrder.TotalAmount().IsEqual(testMoney(t, 22.00)))
	require.NotNil(t, addedOrder.ServiceID())
	assert.True(t, addedOrder.ServiceID().IsEqual(openPeriod.ID()))
	require.NotNil(t, addedOrder.AddressID())
	assert.True(t, addedOrder.AddressID().IsEqual(savedAddress.ID()))
}

func TestCheckoutCommandHandler_Handle_InsufficientBalanceRollsBack(t *testing.T) {
	ctx := t.Context()

	margherita := testProduct(t, "Margherita", 9.50, "pizza", true)
	cmd, err := commands.NewCheckoutCommand(
		kernel.NewUUID(),
		commands.CheckoutCustomer{Phone: "+33612345678"},
		order.ModePickup,
		nil,
		[]commands.CheckoutLine{{ProductID: margherita.ID(), Quantity: 1, IsReward: true}},
		"",
	)
	require.NoError(t, err)

	// Balance 5 cannot cover the 10 point reward cost.
	buyer, err := customer.RestoreCustomer(kernel.NewUUID(), "+33612345678", "Ada", "", 5)
	require.NoError(t, err)

	policyProvider := new(MockPolicyProvider)
	catalog := new(MockProductCatalog)
	customerRepo := new(MockCustomerRepository)
	uow := new(MockCheckoutUoW)

	policyProvider.On("Get", ctx).Return(testPolicy(t), nil).Once()
	catalog.On("GetByIDs", ctx, mock.Anything).Return(checkoutCatalogOf(margherita), nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("GetByPhone", ctx, "+33612345678").Return(buyer, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCheckoutCommandHandler(factory, catalog, policyProvider)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, customer.ErrInsufficientLoyaltyBalance)
	assert.Equal(t, 5, buyer.LoyaltyPoints())
	uow.AssertNotCalled(t, "Commit", ctx)
	customerRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestCheckoutCommandHandler_Handle_UnknownProductFailsBeforeTransaction(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewCheckoutCommand(
		kernel.NewUUID(),
		commands.CheckoutCustomer{Phone: "+33612345678"},
		order.ModePickup,
		nil,
		[]commands.CheckoutLine{{ProductID: kernel.NewUUID(), Quantity: 1}},
		"",
	)
	require.NoError(t, err)

	policyProvider := new(MockPolicyProvider)
	catalog := new(MockProductCatalog)

	policyProvider.On("Get", ctx).Return(testPolicy(t), nil).Once()
	catalog.On("GetByIDs", ctx, mock.Anything).
		Return(map[kernel.UUID]product.Product{}, nil).Once()

	factory := new(MockCheckoutUoWFactory)

	handler := commands.NewCheckoutCommandHandler(factory, catalog, policyProvider)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
	factory.AssertNotCalled(t, "Create")
}

func TestCheckoutCommandHandler_Handle_UndeliverableZone(t *testing.T) {
	ctx := t.Context()

	margherita := testProduct(t, "Margherita", 9.50, "pizza", true)
	address := &commands.CheckoutAddress{Street: "1 Far Rd", PostalCode: "99999", City: "Nowhere"}
	cmd, err := commands.NewCheckoutCommand(
		kernel.NewUUID(),
		commands.CheckoutCustomer{Phone: "+33612345678"},
		order.ModeDelivery,
		address,
		[]commands.CheckoutLine{{ProductID: margherita.ID(), Quantity: 2}},
		"",
	)
	require.NoError(t, err)

	buyer, err := customer.RestoreCustomer(kernel.NewUUID(), "+33612345678", "Ada", "", 0)
	require.NoError(t, err)
	savedAddress, err := customer.RestoreAddress(kernel.NewUUID(), buyer.ID(),
		"1 Far Rd", "99999", "Nowhere", "", "")
	require.NoError(t, err)

	policyProvider := new(MockPolicyProvider)
	catalog := new(MockProductCatalog)
	customerRepo := new(MockCustomerRepository)
	uow := new(MockCheckoutUoW)

	policyProvider.On("Get", ctx).Return(testPolicy(t), nil).Once()
	catalog.On("GetByIDs", ctx, mock.Anything).Return(checkoutCatalogOf(margherita), nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("GetByPhone", ctx, "+33612345678").Return(buyer, nil).Once(),
		customerRepo.On("FindAddress", ctx, buyer.ID(), "1 Far Rd", "99999", "Nowhere").
			Return(savedAddress, nil).Once(),
		customerRepo.On("UpdateAddress", ctx, mock.AnythingOfType("*customer.Address")).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCheckoutCommandHandler(factory, catalog, policyProvider)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrUndeliverableZone)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCheckoutCommandHandler_Handle_RewardReportsDeductedPoints(t *testing.T) {
	ctx := t.Context()

	margherita := testProduct(t, "Margherita", 9.50, "pizza", true)
	cmd, err := commands.NewCheckoutCommand(
		kernel.NewUUID(),
		commands.CheckoutCustomer{Phone: "+33612345678"},
		order.ModePickup,
		nil,
		[]commands.CheckoutLine{
			{ProductID: margherita.ID(), Quantity: 1},
			{ProductID: margherita.ID(), Quantity: 1, IsReward: true},
		},
		"",
	)
	require.NoError(t, err)

	buyer, err := customer.RestoreCustomer(kernel.NewUUID(), "+33612345678", "Ada", "", 12)
	require.NoError(t, err)

	policyProvider := new(MockPolicyProvider)
	catalog := new(MockProductCatalog)
	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	serviceRepo := new(MockServicePeriodRepository)
	uow := new(MockCheckoutUoW)

	policyProvider.On("Get", ctx).Return(testPolicy(t), nil).Once()
	catalog.On("GetByIDs", ctx, mock.Anything).Return(checkoutCatalogOf(margherita), nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("GetByPhone", ctx, "+33612345678").Return(buyer, nil).Once(),
		customerRepo.On("Update", ctx, mock.AnythingOfType("*customer.Customer")).Return(nil).Once(),
		uow.On("ServicePeriodRepository").Return(serviceRepo).Once(),
		serviceRepo.On("GetOpen", ctx).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCheckoutCommandHandler(factory, catalog, policyProvider)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 10, result.PointsDeducted)
	// Only the paid unit earns a stamp; the reward line does not.
	assert.Equal(t, 1, result.StampsEarned)
	// 12 − 10 redeemed + 1 earned.
	assert.Equal(t, 3, buyer.LoyaltyPoints())
}
