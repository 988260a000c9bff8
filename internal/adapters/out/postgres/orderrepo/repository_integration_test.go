package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"lockers/internal/adapters/out/postgres/orderrepo"
	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/core/domain/model/order"
	"lockers/internal/core/domain/model/person"
	"lockers/internal/pkg/errs"

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

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers to verify persistence of the
// order aggregate and its locker binding.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	customer, err := person.NewCustomer("Alice", "555-1234")
	suite.Require().NoError(err)

	pkg, err := order.NewPackage(kernel.NewUUID(), kernel.SizeMedium)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(kernel.NewUUID(), customer, pkg)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(aggregate.ID().IsEqual(loaded.ID()))
	suite.Equal("Alice", loaded.Customer().Name())
	suite.Equal("555-1234", loaded.Customer().Contact())
	suite.Equal(kernel.SizeMedium, loaded.Package().Size())
	suite.Nil(loaded.LockerID())
	suite.Empty(loaded.AccessCode())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsBinding() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	lockerID := kernel.NewUUID()
	deadline := time.Now().Add(time.Hour).UTC().Truncate(time.Microsecond)
	suite.Require().NoError(aggregate.BindLocker(lockerID, "482913", &deadline))

	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded.LockerID())
	suite.True(lockerID.IsEqual(*loaded.LockerID()))
	suite.Equal("482913", loaded.AccessCode())
	suite.Require().NotNil(loaded.ExpiresAt())
	suite.True(deadline.Equal(loaded.ExpiresAt().UTC()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ClearedBindingPersistsNulls() {
	ctx := context.Background()
	aggregate := suite.createTestOrder()
	suite.Require().NoError(aggregate.BindLocker(kernel.NewUUID(), "482913", nil))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	aggregate.ReleaseLocker()
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Nil(loaded.LockerID())
	suite.Empty(loaded.AccessCode())
	suite.Nil(loaded.ExpiresAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	aggregate := suite.createTestOrder()
	err := suite.repository.Update(context.Background(), aggregate)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllExpired_ReturnsOnlyPastDeadlines() {
	ctx := context.Background()
	now := time.Now()

	expired := suite.createTestOrder()
	pastDeadline := now.Add(-time.Hour)
	suite.Require().NoError(expired.BindLocker(kernel.NewUUID(), "111111", &pastDeadline))
	suite.Require().NoError(suite.repository.Add(ctx, expired))

	live := suite.createTestOrder()
	futureDeadline := now.Add(time.Hour)
	suite.Require().NoError(live.BindLocker(kernel.NewUUID(), "222222", &futureDeadline))
	suite.Require().NoError(suite.repository.Add(ctx, live))

	unbounded := suite.createTestOrder()
	suite.Require().NoError(unbounded.BindLocker(kernel.NewUUID(), "333333", nil))
	suite.Require().NoError(suite.repository.Add(ctx, unbounded))

	expiredOrders, err := suite.repository.GetAllExpired(ctx, now)
	suite.Require().NoError(err)
	suite.Require().Len(expiredOrders, 1)
	suite.True(expired.ID().IsEqual(expiredOrders[0].ID()))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
