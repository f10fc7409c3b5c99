package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

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

func assigned(t *testing.T, o *order.Order, c *courier.Courier, at time.Time) *order.Order {
	t.Helper()
	require.NoError(t, o.Assign(c.ID(), c.Profile().SalaryCoefficient, at))
	return o
}

func completed(t *testing.T, o *order.Order, at time.Time, delivery time.Duration) *order.Order {
	t.Helper()
	require.NoError(t, o.Complete(at))
	require.NoError(t, o.RecordDeliveryTime(delivery))
	return o
}

func ids(orders []*order.Order) []int64 {
	out := make([]int64, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID())
	}
	return out
}
