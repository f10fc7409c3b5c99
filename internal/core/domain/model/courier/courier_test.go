package courier_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHours(t *testing.T, values ...string) []kernel.TimeInterval {
	t.Helper()
	hours, err := kernel.ParseTimeIntervals(values)
	require.NoError(t, err)
	return hours
}

func mustOrder(t *testing.T, id int64, weight float64, region int64, hours ...string) *order.Order {
	t.Helper()
	w, err := kernel.NewWeightFromFloat(weight)
	require.NoError(t, err)
	o, err := order.NewOrder(id, w, region, mustHours(t, hours...))
	require.NoError(t, err)
	return o
}

func mustCourier(t *testing.T, courierType courier.Type, regions []int64, hours ...string) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(1, courierType, regions, mustHours(t, hours...))
	require.NoError(t, err)
	return c
}

func TestNewCourier(t *testing.T) {
	t.Run("should create courier with valid parameters", func(t *testing.T) {
		c, err := courier.NewCourier(2, courier.Bike, []int64{22}, mustHours(t, "09:00-18:00"))

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, int64(2), c.ID())
		assert.Equal(t, courier.Bike, c.Type())
		assert.Equal(t, []int64{22}, c.Regions())
		assert.Equal(t, []string{"09:00-18:00"}, kernel.FormatTimeIntervals(c.WorkingHours()))
		assert.Nil(t, c.Rating())
		assert.Nil(t, c.MinDeliveryTime())
		assert.Zero(t, c.Earnings())
		assert.Equal(t, 5, c.Profile().SalaryCoefficient)
	})

	t.Run("should allow empty regions and hours", func(t *testing.T) {
		c, err := courier.NewCourier(2, courier.Car, nil, nil)

		require.NoError(t, err)
		assert.Empty(t, c.Regions())
		assert.Empty(t, c.WorkingHours())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		c, err := courier.NewCourier(0, courier.Type("plane"), []int64{1, -2}, []kernel.TimeInterval{{}})

		require.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "courier id")
		assert.Contains(t, err.Error(), "courier type")
		assert.Contains(t, err.Error(), "region is -2")
		assert.Contains(t, err.Error(), "time interval must be created")
	})
}

func TestCourier_Validate(t *testing.T) {
	var nilCourier *courier.Courier
	require.ErrorIs(t, nilCourier.Validate(), courier.ErrCourierIsNotConstructed)
	require.ErrorIs(t, (&courier.Courier{}).Validate(), courier.ErrCourierIsNotConstructed)
}

func TestCourier_CanTakeOrder(t *testing.T) {
	tests := []struct {
		name  string
		c     *courier.Courier
		o     *order.Order
		taken bool
	}{
		{
			name:  "matching region weight and hours",
			c:     mustCourier(t, courier.Foot, []int64{1, 12}, "11:35-14:05"),
			o:     mustOrder(t, 1, 4, 12, "12:00-13:00"),
			taken: true,
		},
		{
			name:  "foreign region",
			c:     mustCourier(t, courier.Car, []int64{1}, "00:00-23:59"),
			o:     mustOrder(t, 1, 4, 2, "12:00-13:00"),
			taken: false,
		},
		{
			name:  "weight equal to capacity",
			c:     mustCourier(t, courier.Foot, []int64{1}, "09:00-10:00"),
			o:     mustOrder(t, 1, 10, 1, "09:30-09:45"),
			taken: true,
		},
		{
			name:  "weight above foot capacity",
			c:     mustCourier(t, courier.Foot, []int64{1}, "09:00-10:00"),
			o:     mustOrder(t, 1, 10.01, 1, "09:30-09:45"),
			taken: false,
		},
		{
			name:  "heavy order fits car",
			c:     mustCourier(t, courier.Car, []int64{1}, "09:00-10:00"),
			o:     mustOrder(t, 1, 49.5, 1, "09:30-09:45"),
			taken: true,
		},
		{
			name:  "touching intervals overlap",
			c:     mustCourier(t, courier.Bike, []int64{1}, "09:00-10:00"),
			o:     mustOrder(t, 1, 1, 1, "10:00-11:00"),
			taken: true,
		},
		{
			name:  "disjoint intervals",
			c:     mustCourier(t, courier.Bike, []int64{1}, "09:00-10:00"),
			o:     mustOrder(t, 1, 1, 1, "10:01-11:00"),
			taken: false,
		},
		{
			name:  "any working interval against any delivery interval",
			c:     mustCourier(t, courier.Bike, []int64{1}, "06:00-07:00", "20:00-21:00"),
			o:     mustOrder(t, 1, 1, 1, "12:00-13:00", "20:30-22:00"),
			taken: true,
		},
		{
			name:  "no working hours",
			c:     mustCourier(t, courier.Bike, []int64{1}),
			o:     mustOrder(t, 1, 1, 1, "12:00-13:00"),
			taken: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taken, err := tt.c.CanTakeOrder(tt.o)

			require.NoError(t, err)
			assert.Equal(t, tt.taken, taken)
		})
	}

	t.Run("should reject unconstructed order", func(t *testing.T) {
		c := mustCourier(t, courier.Car, []int64{1}, "09:00-10:00")

		_, err := c.CanTakeOrder(&order.Order{})

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}

func TestCourier_ProfileChanges(t *testing.T) {
	c := mustCourier(t, courier.Car, []int64{1}, "09:00-10:00")
	o := mustOrder(t, 1, 20, 1, "09:30-09:45")

	require.NoError(t, c.ChangeType(courier.Foot))
	taken, err := c.CanTakeOrder(o)
	require.NoError(t, err)
	assert.False(t, taken)

	require.NoError(t, c.ChangeType(courier.Car))
	require.NoError(t, c.ChangeRegions([]int64{2, 3}))
	assert.False(t, c.ServesRegion(1))
	assert.True(t, c.ServesRegion(3))

	require.NoError(t, c.ChangeWorkingHours(mustHours(t, "18:00-19:00")))
	assert.Equal(t, []string{"18:00-19:00"}, kernel.FormatTimeIntervals(c.WorkingHours()))

	require.Error(t, c.ChangeType("boat"))
	assert.Equal(t, courier.Car, c.Type())
	require.ErrorIs(t, c.ChangeRegions([]int64{0}), errs.ErrValueIsOutOfRange)
	assert.Equal(t, []int64{2, 3}, c.Regions())
}

func TestRatingFor(t *testing.T) {
	tests := []struct {
		avg  time.Duration
		want string
	}{
		{0, "5"},
		{1800 * time.Second, "2.5"},
		{1000 * time.Second, "3.61"},
		{3599 * time.Second, "0"},
		{3600 * time.Second, "0"},
		{5 * time.Hour, "0"},
		{600 * time.Second, "4.17"},
	}

	for _, tt := range tests {
		t.Run(tt.avg.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, courier.RatingFor(tt.avg).String())
		})
	}
}

func TestCourier_ApplyAverageDeliveryTime(t *testing.T) {
	t.Run("should set rating on first delivery", func(t *testing.T) {
		c := mustCourier(t, courier.Foot, []int64{1})

		changed, err := c.ApplyAverageDeliveryTime(1800 * time.Second)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "2.5", c.Rating().String())
		assert.Equal(t, 1800*time.Second, *c.MinDeliveryTime())
	})

	t.Run("should keep rating when average is slower", func(t *testing.T) {
		c := mustCourier(t, courier.Foot, []int64{1})
		_, err := c.ApplyAverageDeliveryTime(600 * time.Second)
		require.NoError(t, err)

		changed, err := c.ApplyAverageDeliveryTime(1200 * time.Second)

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, "4.17", c.Rating().String())
		assert.Equal(t, 600*time.Second, *c.MinDeliveryTime())
	})

	t.Run("should keep rating when average is equal", func(t *testing.T) {
		c := mustCourier(t, courier.Foot, []int64{1})
		_, err := c.ApplyAverageDeliveryTime(600 * time.Second)
		require.NoError(t, err)

		changed, err := c.ApplyAverageDeliveryTime(600 * time.Second)

		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("should raise rating when average improves", func(t *testing.T) {
		c := mustCourier(t, courier.Foot, []int64{1})
		_, err := c.ApplyAverageDeliveryTime(1800 * time.Second)
		require.NoError(t, err)

		changed, err := c.ApplyAverageDeliveryTime(360 * time.Second)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "4.5", c.Rating().String())
	})

	t.Run("should reject negative average", func(t *testing.T) {
		c := mustCourier(t, courier.Foot, []int64{1})

		_, err := c.ApplyAverageDeliveryTime(-time.Second)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Nil(t, c.Rating())
	})
}

func TestCourier_AddEarnings(t *testing.T) {
	c := mustCourier(t, courier.Foot, []int64{1})

	require.NoError(t, c.AddEarnings(2))
	require.NoError(t, c.AddEarnings(9))
	assert.Equal(t, int64(500*2+500*9), c.Earnings())

	require.Error(t, c.AddEarnings(0))
	assert.Equal(t, int64(5500), c.Earnings())
}

func TestRestoreCourier(t *testing.T) {
	rating := decimal.RequireFromString("4.17")
	minDelivery := 600 * time.Second

	t.Run("should restore statistics", func(t *testing.T) {
		c, err := courier.RestoreCourier(3, courier.Bike, []int64{1}, nil, courier.Statistics{
			Rating:          &rating,
			Earnings:        2500,
			MinDeliveryTime: &minDelivery,
		})

		require.NoError(t, err)
		assert.Equal(t, "4.17", c.Rating().String())
		assert.Equal(t, int64(2500), c.Earnings())
		assert.Equal(t, minDelivery, *c.MinDeliveryTime())
	})

	t.Run("should reject rating without min delivery time", func(t *testing.T) {
		c, err := courier.RestoreCourier(3, courier.Bike, nil, nil, courier.Statistics{Rating: &rating})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, c)
	})

	t.Run("should reject out of range rating", func(t *testing.T) {
		tooHigh := decimal.NewFromFloat(5.01)

		c, err := courier.RestoreCourier(3, courier.Bike, nil, nil, courier.Statistics{
			Rating:          &tooHigh,
			MinDeliveryTime: &minDelivery,
		})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Nil(t, c)
	})

	t.Run("should reject negative earnings", func(t *testing.T) {
		c, err := courier.RestoreCourier(3, courier.Bike, nil, nil, courier.Statistics{Earnings: -1})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Nil(t, c)
	})
}
