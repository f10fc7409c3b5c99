package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/testdb"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

var assignedAt = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *testdb.Database
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := testdb.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Stop(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(id int64, weight float64, region int64, hours ...string) *order.Order {
	w, err := kernel.NewWeightFromFloat(weight)
	suite.Require().NoError(err)
	intervals, err := kernel.ParseTimeIntervals(hours)
	suite.Require().NoError(err)
	o, err := order.NewOrder(id, w, region, intervals)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) addOrders(orders ...*order.Order) {
	for _, o := range orders {
		suite.Require().NoError(suite.repository.Add(context.Background(), o))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) assign(courierID int64, coefficient int, orders ...*order.Order) []int64 {
	for _, o := range orders {
		suite.Require().NoError(o.Assign(courierID, coefficient, assignedAt))
	}
	claimed, err := suite.repository.Claim(context.Background(), orders)
	suite.Require().NoError(err)
	return claimed
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTrips() {
	ctx := context.Background()
	suite.addOrders(suite.newOrder(1, 0.23, 12, "09:00-18:00"))

	got, err := suite.repository.Get(ctx, 1)

	suite.Require().NoError(err)
	suite.Equal("0.23", got.Weight().String())
	suite.Equal(int64(12), got.Region())
	suite.Equal([]string{"09:00-18:00"}, kernel.FormatTimeIntervals(got.DeliveryHours()))
	suite.Equal(order.Created, got.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsAlreadyExists() {
	suite.addOrders(suite.newOrder(1, 1, 1))

	err := suite.repository.Add(context.Background(), suite.newOrder(1, 2, 2))

	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_Unknown_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), 77)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindAssignable_FiltersRegionWeightAndAssignment() {
	ctx := context.Background()
	suite.addOrders(
		suite.newOrder(5, 9.99, 1, "10:00-11:00"),
		suite.newOrder(2, 10, 2, "10:00-11:00"),
		suite.newOrder(3, 10.01, 1, "10:00-11:00"),
		suite.newOrder(4, 1, 3, "10:00-11:00"),
		suite.newOrder(1, 1, 1, "10:00-11:00"),
	)
	taken := suite.newOrder(6, 1, 1)
	suite.addOrders(taken)
	suite.assign(9, 2, taken)

	candidates, err := suite.repository.FindAssignable(ctx, []int64{1, 2}, decimal.NewFromInt(10))

	suite.Require().NoError(err)
	suite.Equal([]int64{1, 2, 5}, ids(candidates))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindAssignable_NoRegions_ReturnsEmpty() {
	suite.addOrders(suite.newOrder(1, 1, 1))

	candidates, err := suite.repository.FindAssignable(context.Background(), nil, decimal.NewFromInt(50))

	suite.Require().NoError(err)
	suite.Empty(candidates)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_WritesAssignment() {
	ctx := context.Background()
	o1, o2 := suite.newOrder(1, 1, 1), suite.newOrder(2, 1, 1)
	suite.addOrders(o1, o2)

	claimed := suite.assign(7, 9, o2, o1)

	suite.Equal([]int64{1, 2}, claimed)
	got, err := suite.repository.Get(ctx, 2)
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, got.Status())
	suite.Equal(int64(7), *got.Courier())
	suite.Equal(9, *got.SalaryCoefficient())
	suite.True(assignedAt.Equal(*got.AssignTime()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_SkipsAlreadyClaimedOrders() {
	ctx := context.Background()
	suite.addOrders(suite.newOrder(1, 1, 1), suite.newOrder(2, 1, 1))

	first, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal([]int64{1}, suite.assign(7, 2, first))

	staleFirst := suite.newOrder(1, 1, 1)
	second, err := suite.repository.Get(ctx, 2)
	suite.Require().NoError(err)

	claimed := suite.assign(8, 9, staleFirst, second)

	suite.Equal([]int64{2}, claimed)
	got, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal(int64(7), *got.Courier())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_ConcurrentCouriersNeverShareAnOrder() {
	ctx := context.Background()
	for id := int64(1); id <= 20; id++ {
		suite.addOrders(suite.newOrder(id, 1, 1))
	}

	var (
		wg      sync.WaitGroup
		results = make([][]int64, 2)
		errList = make([]error, 2)
	)
	for i := range 2 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tx := suite.database.DB.Begin()
			repo := orderrepo.NewGormOrderRepository(tx)
			candidates, err := repo.FindAssignable(ctx, []int64{1}, decimal.NewFromInt(50))
			if err != nil {
				tx.Rollback()
				errList[i] = err
				return
			}
			for _, o := range candidates {
				_ = o.Assign(int64(i+1), 2, assignedAt)
			}
			results[i], errList[i] = repo.Claim(ctx, candidates)
			if errList[i] != nil {
				tx.Rollback()
				return
			}
			errList[i] = tx.Commit().Error
		}(i)
	}
	wg.Wait()

	suite.Require().NoError(errList[0])
	suite.Require().NoError(errList[1])
	seen := map[int64]bool{}
	for _, claimed := range results {
		for _, id := range claimed {
			suite.False(seen[id], "order %d claimed twice", id)
			seen[id] = true
		}
	}
	suite.Len(seen, 20)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_RejectsMixedAssignments() {
	o1, o2 := suite.newOrder(1, 1, 1), suite.newOrder(2, 1, 1)
	suite.addOrders(o1, o2)
	suite.Require().NoError(o1.Assign(1, 2, assignedAt))
	suite.Require().NoError(o2.Assign(2, 2, assignedAt))

	_, err := suite.repository.Claim(context.Background(), []*order.Order{o1, o2})

	suite.Require().ErrorIs(err, orderrepo.ErrMixedAssignment)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRelease_OnlyTouchesOpenOrdersOfCourier() {
	ctx := context.Background()
	o1, o2, o3 := suite.newOrder(1, 1, 1), suite.newOrder(2, 1, 1), suite.newOrder(3, 1, 1)
	suite.addOrders(o1, o2, o3)
	suite.assign(5, 9, o1, o2)
	suite.assign(6, 2, o3)

	suite.Require().NoError(o2.Complete(assignedAt.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, o2))

	stale2, err := order.RestoreOrder(2, o2.Weight(), 1, nil, order.Assignment{})
	suite.Require().NoError(err)
	suite.Require().NoError(o1.Release())
	foreign, err := order.RestoreOrder(3, o3.Weight(), 1, nil, order.Assignment{})
	suite.Require().NoError(err)

	released, err := suite.repository.Release(ctx, 5, []*order.Order{o1, stale2, foreign})

	suite.Require().NoError(err)
	suite.Equal([]int64{1}, released)

	open, err := suite.repository.GetOpenByCourier(ctx, 5)
	suite.Require().NoError(err)
	suite.Empty(open)

	got, err := suite.repository.Get(ctx, 2)
	suite.Require().NoError(err)
	suite.Equal(order.Completed, got.Status())

	got, err = suite.repository.Get(ctx, 3)
	suite.Require().NoError(err)
	suite.True(got.IsHeldBy(6))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetOpenForCourier() {
	ctx := context.Background()
	o1, o2 := suite.newOrder(1, 1, 1), suite.newOrder(2, 1, 1)
	suite.addOrders(o1, o2)
	suite.assign(5, 2, o1)

	got, err := suite.repository.GetOpenForCourier(ctx, 5, 1)
	suite.Require().NoError(err)
	suite.True(got.IsHeldBy(5))

	_, err = suite.repository.GetOpenForCourier(ctx, 6, 1)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetOpenForCourier(ctx, 5, 2)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.Require().NoError(o1.Complete(assignedAt.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, o1))

	_, err = suite.repository.GetOpenForCourier(ctx, 5, 1)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsCompletionAndDeliveryTime() {
	ctx := context.Background()
	o := suite.newOrder(1, 1, 1)
	suite.addOrders(o)
	suite.assign(5, 2, o)
	suite.Require().NoError(o.Complete(assignedAt.Add(25 * time.Minute)))
	suite.Require().NoError(o.RecordDeliveryTime(25 * time.Minute))

	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal(order.Completed, got.Status())
	suite.Equal(25*time.Minute, *got.DeliveryTime())
	suite.True(assignedAt.Add(25 * time.Minute).Equal(*got.CompleteTime()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetCompletedByCourierInRegion_LatestFirst() {
	ctx := context.Background()
	o1, o2, o3, o4 := suite.newOrder(1, 1, 1), suite.newOrder(2, 1, 1), suite.newOrder(3, 1, 2), suite.newOrder(4, 1, 1)
	suite.addOrders(o1, o2, o3, o4)
	suite.assign(5, 2, o1, o2, o3, o4)

	for i, o := range []*order.Order{o2, o1, o3} {
		suite.Require().NoError(o.Complete(assignedAt.Add(time.Duration(i+1) * time.Minute)))
		suite.Require().NoError(suite.repository.Update(ctx, o))
	}

	completed, err := suite.repository.GetCompletedByCourierInRegion(ctx, 5, 1)

	suite.Require().NoError(err)
	suite.Equal([]int64{1, 2}, ids(completed))
}

func ids(orders []*order.Order) []int64 {
	out := make([]int64, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID())
	}
	return out
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration suite needs docker")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
