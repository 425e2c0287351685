package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	engine     pricing.Engine
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
	suite.engine = pricing.NewEngine(pricing.DefaultPolicy())
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items, orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(decimal.Zero, 2)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertCount(&orderrepo.OrderDTO{}, 1)
	suite.assertCount(&orderrepo.OrderItemDTO{}, 2)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NotConstructedOrder_Fails() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertCount(&orderrepo.OrderDTO{}, 0)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsAlreadyExists() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(decimal.Zero, 1)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	err := suite.repository.Add(ctx, testOrder)

	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
	suite.assertCount(&orderrepo.OrderDTO{}, 1)
	suite.tracker.AssertExpectations(suite.T())
}

// Two transactions insert the same order id; the second insert waits on the
// primary key and fails once the first commits.
func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ConcurrentDuplicate_LoserReturnsAlreadyExists() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(decimal.Zero, 1)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	first := suite.db.Begin()
	suite.Require().NoError(first.Error)
	second := suite.db.Begin()
	suite.Require().NoError(second.Error)
	defer second.Rollback()

	suite.Require().NoError(orderrepo.NewGormOrderRepository(first, suite.tracker).Add(ctx, testOrder))

	result := make(chan error, 1)
	go func() {
		result <- orderrepo.NewGormOrderRepository(second, suite.tracker).Add(ctx, testOrder)
	}()

	suite.Require().NoError(first.Commit().Error)

	select {
	case err := <-result:
		suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
	case <-time.After(10 * time.Second):
		suite.FailNow("second insert did not finish")
	}
	suite.assertCount(&orderrepo.OrderDTO{}, 1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsEveryField() {
	ctx := context.Background()
	original := suite.createTestOrder(decimal.RequireFromString("0.0825"), 2)
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	restored, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), restored.ID())
	suite.Equal(original.UserID(), restored.UserID())
	suite.Equal(order.Received, restored.Status())
	suite.Equal(original.Totals(), restored.Totals())
	suite.True(original.TaxRate().Equal(restored.TaxRate()))
	suite.True(original.ShippingAddress().IsEqual(restored.ShippingAddress()))
	suite.Equal(original.PaymentMethod().Kind(), restored.PaymentMethod().Kind())
	suite.Equal(original.PaymentMethod().Reference(), restored.PaymentMethod().Reference())
	suite.WithinDuration(original.CreatedAt(), restored.CreatedAt(), time.Millisecond)

	suite.Require().Len(restored.Items(), 2)
	for i, it := range restored.Items() {
		suite.Equal(original.Items()[i].ProductID(), it.ProductID())
		suite.Equal(original.Items()[i].ProductName(), it.ProductName())
		suite.Equal(original.Items()[i].Quantity(), it.Quantity())
		suite.Equal(original.Items()[i].Price(), it.Price())
	}
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_InvalidID_ReturnsRequiredError() {
	_, err := suite.repository.Get(context.Background(), kernel.UUID{})

	suite.Require().ErrorIs(err, kernel.ErrUUIDIsNotConstructed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_CorruptedTotals_Rejected() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(decimal.Zero, 1)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(suite.db.Exec(
		"UPDATE orders SET total_cents = total_cents + 1 WHERE id = ?", testOrder.ID().Bytes(),
	).Error)

	_, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, order.ErrTotalsMismatch)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ReplacesItemsAndAddress() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(decimal.Zero, 2)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	item, err := order.NewItem(kernel.NewUUID(), "Honey", 3, kernel.MustMoneyFromCents(1000))
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.ReplaceItems([]order.Item{item}, suite.engine))
	address, err := kernel.NewAddress("Ana Ruiz", "9 Elm St", "Shelbyville", "54321", "555-0100")
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.ChangeShippingAddress(address))

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().Len(restored.Items(), 1)
	suite.Equal("Honey", restored.Items()[0].ProductName())
	suite.Equal("30.00", restored.Totals().Total.String())
	suite.Equal("Shelbyville", restored.ShippingAddress().City())
	suite.assertCount(&orderrepo.OrderItemDTO{}, 1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFound() {
	err := suite.repository.Update(context.Background(), suite.createTestOrder(decimal.Zero, 1))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_CompareAndSwap() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(decimal.Zero, 1)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	changed, err := testOrder.Advance(order.Processing)
	suite.Require().NoError(err)
	suite.True(changed)
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, testOrder, order.Received))

	// a second writer still holding the received snapshot loses
	stale, err := order.RestoreOrder(
		testOrder.ID(), testOrder.UserID(), testOrder.Items(), order.Received, testOrder.Totals(),
		testOrder.TaxRate(), testOrder.ShippingAddress(), testOrder.PaymentMethod(), testOrder.CreatedAt(),
	)
	suite.Require().NoError(err)
	_, err = stale.Advance(order.Processing)
	suite.Require().NoError(err)

	err = suite.repository.UpdateStatus(ctx, stale, order.Received)
	var concurrentErr *errs.ConcurrentModificationError
	suite.Require().ErrorAs(err, &concurrentErr)

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Processing, restored.Status())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AfterStatusMovedOn_Fails() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(decimal.Zero, 1)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// another writer advances the stored order
	advanced, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	_, err = advanced.Advance(order.Processing)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", advanced.ID(), advanced).Once()
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, advanced, order.Received))

	address, err := kernel.NewAddress("Ana Ruiz", "9 Elm St", "Shelbyville", "54321", "")
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.ChangeShippingAddress(address))

	err = suite.repository.Update(ctx, testOrder)
	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal("Springfield", restored.ShippingAddress().City())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_NonExistentOrder_ReturnsNotFound() {
	testOrder := suite.createTestOrder(decimal.Zero, 1)
	_, err := testOrder.Advance(order.Processing)
	suite.Require().NoError(err)

	err = suite.repository.UpdateStatus(context.Background(), testOrder, order.Received)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestOrderRepository_ConcurrentReads() {
	ctx := context.Background()
	initial := suite.createTestOrder(decimal.Zero, 1)
	suite.tracker.On("TrackAggregate", initial.ID(), initial).Once()
	suite.Require().NoError(suite.repository.Add(ctx, initial))

	results := make(chan *order.Order, 3)
	errors := make(chan error, 3)
	for range 3 {
		go func() {
			retrieved, readErr := suite.repository.Get(ctx, initial.ID())
			if readErr != nil {
				errors <- readErr
			} else {
				results <- retrieved
			}
		}()
	}

	for range 3 {
		select {
		case result := <-results:
			suite.Equal(initial.ID(), result.ID())
		case readErr := <-errors:
			suite.Failf("Unexpected error in concurrent read", "%v", readErr)
		}
	}
	suite.tracker.AssertExpectations(suite.T())
}

// createTestOrder builds a received order with itemCount lines of 12.00 x 1.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(taxRate decimal.Decimal, itemCount int) *order.Order {
	items := make([]order.Item, 0, itemCount)
	for range itemCount {
		it, err := order.NewItem(kernel.NewUUID(), "Heirloom tomatoes", 1, kernel.MustMoneyFromCents(1200))
		suite.Require().NoError(err)
		items = append(items, it)
	}

	address, err := kernel.NewAddress("Ana Ruiz", "1 Main St", "Springfield", "12345", "")
	suite.Require().NoError(err)
	payment, err := order.NewPaymentMethod(order.Card, "pi_123")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), items, address, payment, suite.engine, taxRate, time.Now(),
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) assertCount(model any, expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
