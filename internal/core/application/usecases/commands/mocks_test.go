package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id int64) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetForUpdate(ctx context.Context, id int64) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockOrderRepository) FindAssignable(
	ctx context.Context,
	regions []int64,
	maxWeight decimal.Decimal,
) ([]*order.Order, error) {
	args := m.Called(ctx, regions, maxWeight)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Claim(ctx context.Context, orders []*order.Order) ([]int64, error) {
	args := m.Called(ctx, orders)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockOrderRepository) GetOpenByCourier(ctx context.Context, courierID int64) ([]*order.Order, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Release(ctx context.Context, courierID int64, orders []*order.Order) ([]int64, error) {
	args := m.Called(ctx, courierID, orders)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockOrderRepository) GetOpenForCourier(ctx context.Context, courierID, orderID int64) (*order.Order, error) {
	args := m.Called(ctx, courierID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetCompletedByCourierInRegion(
	ctx context.Context,
	courierID, region int64,
) ([]*order.Order, error) {
	args := m.Called(ctx, courierID, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockUoWFactory struct{ uow *MockUoW }

func (f MockUoWFactory) Create() commands.UoW { return f.uow }

type MockCourierUoWFactory struct{ uow *MockUoW }

func (f MockCourierUoWFactory) Create() commands.CourierUoW { return f.uow }

type MockOrderUoWFactory struct{ uow *MockUoW }

func (f MockOrderUoWFactory) Create() commands.OrderUoW { return f.uow }

// fixture wires a MockUoW to fresh repository mocks. Rollback is always allowed
// because handlers defer it unconditionally.
type fixture struct {
	uow      *MockUoW
	couriers *MockCourierRepository
	orders   *MockOrderRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		uow:      new(MockUoW),
		couriers: new(MockCourierRepository),
		orders:   new(MockOrderRepository),
	}
	f.uow.On("CourierRepository").Return(f.couriers).Maybe()
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return f
}

func (f fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.uow.AssertExpectations(t)
	f.couriers.AssertExpectations(t)
	f.orders.AssertExpectations(t)
}

var baseTime = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func mustHours(t *testing.T, values ...string) []kernel.TimeInterval {
	t.Helper()
	hours, err := kernel.ParseTimeIntervals(values)
	require.NoError(t, err)
	return hours
}

func newCourier(t *testing.T, id int64, courierType courier.Type, regions []int64, hours ...string) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(id, courierType, regions, mustHours(t, hours...))
	require.NoError(t, err)
	return c
}

func newOrder(t *testing.T, id int64, weight float64, region int64, hours ...string) *order.Order {
	t.Helper()
	w, err := kernel.NewWeightFromFloat(weight)
	require.NoError(t, err)
	o, err := order.NewOrder(id, w, region, mustHours(t, hours...))
	require.NoError(t, err)
	return o
}

func orderIDs(orders []*order.Order) []int64 {
	out := make([]int64, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID())
	}
	return out
}
