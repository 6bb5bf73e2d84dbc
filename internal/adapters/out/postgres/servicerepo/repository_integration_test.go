package servicerepo_test

import (
	"context"
	"testing"
	"time"

	"pizzeria/internal/adapters/out/postgres/servicerepo"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/serviceperiod"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// ServicePeriodRepositoryIntegrationTestSuite provides integration tests for
// ServicePeriodRepository using PostgreSQL containers, including the partial
// unique index that backs the single-open-period invariant.
type ServicePeriodRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *servicerepo.GormServicePeriodRepository
	tracker    *MockAggregateTracker
}

func (suite *ServicePeriodRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	// TranslateError maps the unique violation from the partial index to
	// gorm.ErrDuplicatedKey.
	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&servicerepo.ServicePeriodDTO{}))
}

func (suite *ServicePeriodRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE service_periods").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = servicerepo.NewGormServicePeriodRepository(suite.db, suite.tracker)
}

func (suite *ServicePeriodRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ServicePeriodRepositoryIntegrationTestSuite) TestAdd_OpenPeriod_Success() {
	ctx := context.Background()

	period := suite.openPeriod()
	suite.tracker.On("TrackAggregate", period.ID(), period).Once()

	err := suite.repository.Add(ctx, period)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, period.ID())
	suite.Require().NoError(err)
	suite.Equal(period.ID(), retrieved.ID())
	suite.True(retrieved.IsOpen())
	suite.Nil(retrieved.EndTime())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ServicePeriodRepositoryIntegrationTestSuite) TestAdd_SecondOpenPeriod_ReturnsAlreadyOpenError() {
	ctx := context.Background()

	first := suite.openPeriod()
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	// The partial unique index rejects a second open row even though the
	// IDs differ.
	second := suite.openPeriod()
	err := suite.repository.Add(ctx, second)
	suite.Require().ErrorIs(err, serviceperiod.ErrServiceAlreadyOpen)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ServicePeriodRepositoryIntegrationTestSuite) TestAdd_OpenAfterClose_Success() {
	ctx := context.Background()

	first := suite.openPeriod()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	suite.closePeriod(first)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	second := suite.openPeriod()
	suite.Require().NoError(suite.repository.Add(ctx, second))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ServicePeriodRepositoryIntegrationTestSuite) TestUpdate_ClosedPeriod_FreezesStats() {
	ctx := context.Background()

	period := suite.openPeriod()
	suite.tracker.On("TrackAggregate", period.ID(), period).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, period))

	suite.closePeriod(period)
	suite.Require().NoError(suite.repository.Update(ctx, period))

	retrieved, err := suite.repository.Get(ctx, period.ID())
	suite.Require().NoError(err)

	suite.False(retrieved.IsOpen())
	suite.Require().NotNil(retrieved.EndTime())
	suite.Equal(4, retrieved.Stats().OrderCount)
	suite.Equal("80.00", retrieved.Stats().TotalRevenue.String())
	suite.Equal("20.00", retrieved.Stats().AverageTicket.String())
	suite.Equal("Margherita", retrieved.Stats().TopItem)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ServicePeriodRepositoryIntegrationTestSuite) TestGetOpen_NoOpenPeriod_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.GetOpen(ctx)

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ServicePeriodRepositoryIntegrationTestSuite) TestGetOpen_SkipsClosedPeriods() {
	ctx := context.Background()

	closed := suite.openPeriod()
	open := suite.openPeriod()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	suite.Require().NoError(suite.repository.Add(ctx, closed))
	suite.closePeriod(closed)
	suite.Require().NoError(suite.repository.Update(ctx, closed))
	suite.Require().NoError(suite.repository.Add(ctx, open))

	retrieved, err := suite.repository.GetOpen(ctx)
	suite.Require().NoError(err)
	suite.Equal(open.ID(), retrieved.ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ServicePeriodRepositoryIntegrationTestSuite) openPeriod() *serviceperiod.ServicePeriod {
	period, err := serviceperiod.OpenServicePeriod(
		kernel.NewUUID(), time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return period
}

func (suite *ServicePeriodRepositoryIntegrationTestSuite) closePeriod(period *serviceperiod.ServicePeriod) {
	revenue, err := kernel.NewMoneyFromFloat(80.00)
	suite.Require().NoError(err)
	stats, err := serviceperiod.NewClosingStats(4, revenue, "Margherita")
	suite.Require().NoError(err)
	suite.Require().NoError(period.Close(stats, time.Now().UTC().Truncate(time.Microsecond)))
}

func TestServicePeriodRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ServicePeriodRepositoryIntegrationTestSuite))
}
