package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/serviceperiod"
	"pizzeria/internal/pkg/errs"
)

func TestOpenServiceCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	serviceID := kernel.NewUUID()
	cmd, err := commands.NewOpenServiceCommand(serviceID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	serviceRepo := new(MockServicePeriodRepository)
	uow := new(MockServiceUoW)

	var addedPeriod *serviceperiod.ServicePeriod

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ServicePeriodRepository").Return(serviceRepo).Once(),
		serviceRepo.On("GetOpen", ctx).Return(nil, errs.ErrObjectNotFound).Once(),
		serviceRepo.On("Add", ctx, mock.AnythingOfType("*serviceperiod.ServicePeriod")).
			Run(func(args mock.Arguments) {
				addedPeriod = args.Get(1).(*serviceperiod.ServicePeriod)
			}).
			Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllUnattachedSince", ctx, mock.AnythingOfType("time.Time")).
			Return([]*order.Order{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockServiceUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewOpenServiceCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, addedPeriod)
	assert.True(t, addedPeriod.ID().IsEqual(serviceID))
	assert.True(t, addedPeriod.IsOpen())
	uow.AssertExpectations(t)
}

func TestOpenServiceCommandHandler_Handle_AdoptsSameDayOrphans(t *testing.T) {
	ctx := t.Context()

	serviceID := kernel.NewUUID()
	cmd, err := commands.NewOpenServiceCommand(serviceID)
	require.NoError(t, err)

	orphan := testPickupOrder(t)
	require.Nil(t, orphan.ServiceID())

	orderRepo := new(MockOrderRepository)
	serviceRepo := new(MockServicePeriodRepository)
	uow := new(MockServiceUoW)

	var sinceArg time.Time

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ServicePeriodRepository").Return(serviceRepo).Once(),
		serviceRepo.On("GetOpen", ctx).Return(nil, errs.ErrObjectNotFound).Once(),
		serviceRepo.On("Add", ctx, mock.AnythingOfType("*serviceperiod.ServicePeriod")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllUnattachedSince", ctx, mock.AnythingOfType("time.Time")).
			Run(func(args mock.Arguments) { sinceArg = args.Get(1).(time.Time) }).
			Return([]*order.Order{orphan}, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockServiceUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewOpenServiceCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, orphan.ServiceID())
	assert.True(t, orphan.ServiceID().IsEqual(serviceID))

	// Adoption only reaches back to the start of the current day.
	now := time.Now().UTC()
	assert.Equal(t, time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), sinceArg)
}

func TestOpenServiceCommandHandler_Handle_LeavesCancelledOrphansUnattached(t *testing.T) {
	ctx := t.Context()

	serviceID := kernel.NewUUID()
	cmd, err := commands.NewOpenServiceCommand(serviceID)
	require.NoError(t, err)

	cancelled := testPickupOrder(t)
	require.NoError(t, cancelled.OverrideStatus(order.StatusCancelled))

	orderRepo := new(MockOrderRepository)
	serviceRepo := new(MockServicePeriodRepository)
	uow := new(MockServiceUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ServicePeriodRepository").Return(serviceRepo).Once(),
		serviceRepo.On("GetOpen", ctx).Return(nil, errs.ErrObjectNotFound).Once(),
		serviceRepo.On("Add", ctx, mock.AnythingOfType("*serviceperiod.ServicePeriod")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllUnattachedSince", ctx, mock.AnythingOfType("time.Time")).
			Return([]*order.Order{cancelled}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockServiceUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewOpenServiceCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Nil(t, cancelled.ServiceID())
	orderRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
}

func TestOpenServiceCommandHandler_Handle_AlreadyOpen(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewOpenServiceCommand(kernel.NewUUID())
	require.NoError(t, err)

	openPeriod, err := serviceperiod.OpenServicePeriod(kernel.NewUUID(), time.Now().UTC())
	require.NoError(t, err)

	serviceRepo := new(MockServicePeriodRepository)
	uow := new(MockServiceUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ServicePeriodRepository").Return(serviceRepo).Once(),
		serviceRepo.On("GetOpen", ctx).Return(openPeriod, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockServiceUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewOpenServiceCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, serviceperiod.ErrServiceAlreadyOpen)
	serviceRepo.AssertNotCalled(t, "Add", ctx, mock.Anything)
}
