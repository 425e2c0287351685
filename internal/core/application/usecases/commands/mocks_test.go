package commands_test

import (
	"context"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/pricing"
	"storefront/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateStock(ctx context.Context, p *catalog.Product, expected int) error {
	args := m.Called(ctx, p, expected)
	return args.Error(0)
}

func (m *MockProductRepository) AddReview(ctx context.Context, productID kernel.UUID, r catalog.Review) error {
	args := m.Called(ctx, productID, r)
	return args.Error(0)
}

type MockCategoryRepository struct{ mock.Mock }

func (m *MockCategoryRepository) Add(ctx context.Context, c catalog.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Get(ctx context.Context, id kernel.UUID) (catalog.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

// MockUnitOfWork satisfies every unit of work view used by the handlers.
type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUnitOfWork) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockUnitOfWork) CategoryRepository() ports.CategoryRepository {
	args := m.Called()
	return args.Get(0).(ports.CategoryRepository)
}

type MockOrderUoWFactory struct{ uow *MockUnitOfWork }

func (f MockOrderUoWFactory) Create() commands.OrderUoW { return f.uow }

type MockCatalogUoWFactory struct{ uow *MockUnitOfWork }

func (f MockCatalogUoWFactory) Create() commands.CatalogUoW { return f.uow }

type MockUoWFactory struct{ uow *MockUnitOfWork }

func (f MockUoWFactory) Create() commands.UoW { return f.uow }

func testAddress() kernel.Address {
	address, _ := kernel.NewAddress("Ana Ruiz", "1 Main St", "Springfield", "12345", "")
	return address
}

func testPayment() order.PaymentMethod {
	payment, _ := order.NewPaymentMethod(order.Card, "pi_123")
	return payment
}

// testOrder builds an order of 2 x 12.00 in the given status.
func testOrder(status order.Status) *order.Order {
	item, _ := order.NewItem(kernel.NewUUID(), "Heirloom tomatoes", 2, kernel.MustMoneyFromCents(1200))
	o, _ := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), []order.Item{item}, testAddress(), testPayment(),
		pricing.NewEngine(pricing.DefaultPolicy()), decimal.Zero, time.Now(),
	)
	for s := order.Processing; s <= status; s++ {
		_, _ = o.Advance(s)
	}
	return o
}

func testProduct(stock int) *catalog.Product {
	p, _ := catalog.NewProduct(kernel.NewUUID(), catalog.Attributes{
		Name:       "Heirloom tomatoes",
		Slug:       "heirloom-tomatoes",
		Price:      kernel.MustMoneyFromCents(1200),
		CategoryID: kernel.NewUUID(),
		Stock:      stock,
	})
	return p
}
