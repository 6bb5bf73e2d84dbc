package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/policy"
	"pizzeria/internal/core/domain/model/product"
	"pizzeria/internal/core/domain/model/serviceperiod"
	"pizzeria/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllByService(ctx context.Context, serviceID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllUnattachedSince(ctx context.Context, since time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) AddAddress(ctx context.Context, address *customer.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateAddress(ctx context.Context, address *customer.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetAddress(ctx context.Context, id kernel.UUID) (*customer.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Address), args.Error(1)
}

func (m *MockCustomerRepository) FindAddress(
	ctx context.Context, customerID kernel.UUID, street, postalCode, city string,
) (*customer.Address, error) {
	args := m.Called(ctx, customerID, street, postalCode, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Address), args.Error(1)
}

type MockServicePeriodRepository struct{ mock.Mock }

func (m *MockServicePeriodRepository) Add(ctx context.Context, aggregate *serviceperiod.ServicePeriod) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockServicePeriodRepository) Update(ctx context.Context, aggregate *serviceperiod.ServicePeriod) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockServicePeriodRepository) Get(ctx context.Context, id kernel.UUID) (*serviceperiod.ServicePeriod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*serviceperiod.ServicePeriod), args.Error(1)
}

func (m *MockServicePeriodRepository) GetOpen(ctx context.Context) (*serviceperiod.ServicePeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*serviceperiod.ServicePeriod), args.Error(1)
}

type MockProductCatalog struct{ mock.Mock }

func (m *MockProductCatalog) GetByIDs(
	ctx context.Context, ids []kernel.UUID,
) (map[kernel.UUID]product.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]product.Product), args.Error(1)
}

type MockPolicyProvider struct{ mock.Mock }

func (m *MockPolicyProvider) Get(ctx context.Context) (policy.Policy, error) {
	args := m.Called(ctx)
	return args.Get(0).(policy.Policy), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCheckoutUoW struct{ mock.Mock }

func (m *MockCheckoutUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockCheckoutUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockCheckoutUoW) ServicePeriodRepository() ports.ServicePeriodRepository {
	args := m.Called()
	return args.Get(0).(ports.ServicePeriodRepository)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

type MockServiceUoW struct{ mock.Mock }

func (m *MockServiceUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockServiceUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockServiceUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockServiceUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockServiceUoW) ServicePeriodRepository() ports.ServicePeriodRepository {
	args := m.Called()
	return args.Get(0).(ports.ServicePeriodRepository)
}

type MockServiceUoWFactory struct{ mock.Mock }

func (m *MockServiceUoWFactory) Create() commands.ServiceUoW {
	args := m.Called()
	return args.Get(0).(commands.ServiceUoW)
}

// Shared fixtures.

func timeNowUTC() time.Time {
	return time.Now().UTC()
}

func testMoney(t *testing.T, amount float64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromFloat(amount)
	require.NoError(t, err)
	return m
}

func testProduct(t *testing.T, name string, price float64, category string, loyaltyEligible bool) product.Product {
	t.Helper()
	p, err := product.RestoreProduct(kernel.NewUUID(), name, testMoney(t, price), category, loyaltyEligible, true)
	require.NoError(t, err)
	return p
}

func testPolicy(t *testing.T) policy.Policy {
	t.Helper()
	p, err := policy.NewPolicy(
		[]policy.ZoneTier{{
			MinOrder: testMoney(t, 15.00),
			Zones:    []policy.Zone{{Zip: "75001", City: "Paris"}},
		}},
		policy.LoyaltyProgram{RewardCost: 10, StampCategories: []string{"pizza"}},
		policy.PromoOffer{BuyCount: 10},
		testMoney(t, 3.00),
		testMoney(t, 30.00),
	)
	require.NoError(t, err)
	return p
}

func testPaidItem(t *testing.T, name string, price float64, quantity int) order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), name, "pizza", testMoney(t, price), quantity, "", order.ItemPaid)
	require.NoError(t, err)
	return item
}

func testPickupOrder(t *testing.T) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, order.ModePickup,
		[]order.Item{testPaidItem(t, "Margherita", 9.50, 2)}, kernel.ZeroMoney(), "", time.Now().UTC())
	require.NoError(t, err)
	return aggregate
}

func testDeliveryOrder(t *testing.T) *order.Order {
	t.Helper()
	addressID := kernel.NewUUID()
	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), &addressID, order.ModeDelivery,
		[]order.Item{testPaidItem(t, "Margherita", 9.50, 2)}, testMoney(t, 3.00), "", time.Now().UTC())
	require.NoError(t, err)
	return aggregate
}
