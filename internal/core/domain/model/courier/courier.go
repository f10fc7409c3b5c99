package courier

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// BasePayment is paid for every completed order, multiplied by the salary
	// coefficient captured when the order was assigned.
	BasePayment = 500

	// MaxRating is the rating of a courier whose fastest average delivery is instant.
	MaxRating = 5

	// ratingWindow is the average delivery time at and above which the rating is zero.
	ratingWindow = time.Hour

	ratingPlaces = 2
)

var (
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a courier registered in the dispatch service.
// It is an aggregate root that owns the courier profile and the statistics gathered
// from completed deliveries.
//
// Key responsibilities:
//   - Holding the profile used for matching (type, regions, working hours)
//   - Deciding whether a given order is eligible for the courier
//   - Accumulating earnings and keeping the rating in step with the fastest
//     average delivery time
//
// Example usage:
//
//	hours, _ := kernel.ParseTimeIntervals([]string{"11:35-14:05", "09:00-11:00"})
//	c, err := courier.NewCourier(1, courier.Foot, []int64{1, 12, 22}, hours)
//	if err != nil {
//	    // Handle construction error
//	}
type Courier struct {
	id           int64
	courierType  Type
	regions      []int64
	workingHours []kernel.TimeInterval

	// rating is nil until the first completed delivery
	rating          *decimal.Decimal
	earnings        int64
	minDeliveryTime *time.Duration

	guard guard.ConstructorGuard
}

// NewCourier creates a courier without delivery statistics.
//
// Parameters:
//   - id: externally assigned identifier (must be positive)
//   - courierType: one of Foot, Bike, Car
//   - regions: region ids served by the courier (each must be positive; may be empty)
//   - workingHours: daily working intervals (may be empty)
//
// Validation errors of all parameters are joined.
func NewCourier(id int64, courierType Type, regions []int64, workingHours []kernel.TimeInterval) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setType(courierType),
		c.setRegions(regions),
		c.setWorkingHours(workingHours),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Statistics carries the persisted delivery statistics of a courier.
type Statistics struct {
	Rating          *decimal.Decimal
	Earnings        int64
	MinDeliveryTime *time.Duration
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage.
//
// Rating and MinDeliveryTime must be both set or both unset, the rating must lie in
// 0..MaxRating and earnings must not be negative.
func RestoreCourier(
	id int64,
	courierType Type,
	regions []int64,
	workingHours []kernel.TimeInterval,
	stats Statistics,
) (*Courier, error) {
	c, err := NewCourier(id, courierType, regions, workingHours)
	if err != nil {
		return nil, err
	}

	if err = c.setStatistics(stats); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate reports whether the courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id == other.id
}

func (c *Courier) ID() int64 {
	return c.id
}

func (c *Courier) Type() Type {
	return c.courierType
}

// Regions returns a copy of the served regions.
func (c *Courier) Regions() []int64 {
	return slices.Clone(c.regions)
}

// WorkingHours returns a copy of the working intervals.
func (c *Courier) WorkingHours() []kernel.TimeInterval {
	return slices.Clone(c.workingHours)
}

// Rating returns the current rating or nil if the courier has no completed delivery.
func (c *Courier) Rating() *decimal.Decimal {
	return c.rating
}

func (c *Courier) Earnings() int64 {
	return c.earnings
}

// MinDeliveryTime returns the fastest average delivery time observed so far.
func (c *Courier) MinDeliveryTime() *time.Duration {
	return c.minDeliveryTime
}

// Profile returns the capacity and salary coefficient of the current type.
func (c *Courier) Profile() Profile {
	p, _ := c.courierType.Profile()
	return p
}

// ServesRegion reports whether region is one of the courier regions.
func (c *Courier) ServesRegion(region int64) bool {
	return slices.Contains(c.regions, region)
}

// ChangeType switches the means of transport. Orders already held are not touched
// here; the caller is responsible for reconciling them.
func (c *Courier) ChangeType(courierType Type) error {
	return c.setType(courierType)
}

// ChangeRegions replaces the served regions.
func (c *Courier) ChangeRegions(regions []int64) error {
	return c.setRegions(regions)
}

// ChangeWorkingHours replaces the working intervals.
func (c *Courier) ChangeWorkingHours(workingHours []kernel.TimeInterval) error {
	return c.setWorkingHours(workingHours)
}

// CanTakeOrder checks whether the order is eligible for the courier under its
// current profile.
//
// An order is eligible when all of the following hold:
//   - the order region is served by the courier
//   - the order weight does not exceed the capacity of the courier type
//   - at least one working interval overlaps at least one delivery interval
//
// Returns an error only when the order itself is not valid.
func (c *Courier) CanTakeOrder(o *order.Order) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	if !c.ServesRegion(o.Region()) {
		return false, nil
	}

	if !o.Weight().FitsInto(c.Profile().Capacity) {
		return false, nil
	}

	return kernel.AnyOverlap(c.workingHours, o.DeliveryHours()), nil
}

// ApplyAverageDeliveryTime records the average delivery time of the courier in a
// region. The fastest average and the rating are updated only when avg is faster
// than the fastest average seen so far.
//
// Returns true when the rating changed.
func (c *Courier) ApplyAverageDeliveryTime(avg time.Duration) (bool, error) {
	if avg < 0 {
		return false, errs.NewValueIsOutOfRangeError("average delivery time", avg, 0, "unbounded")
	}

	if c.minDeliveryTime != nil && avg >= *c.minDeliveryTime {
		return false, nil
	}

	rating := RatingFor(avg)
	c.minDeliveryTime = &avg
	c.rating = &rating
	return true, nil
}

// AddEarnings pays the courier for one completed order.
func (c *Courier) AddEarnings(salaryCoefficient int) error {
	if salaryCoefficient <= 0 {
		return errs.NewValueIsOutOfRangeError("salary coefficient", salaryCoefficient, 1, "unbounded")
	}
	c.earnings += int64(BasePayment * salaryCoefficient)
	return nil
}

// RatingFor maps an average delivery time to a rating:
//
//	(3600 - min(t, 3600)) / 3600 * 5
//
// where t is in seconds, rounded half away from zero to two decimals.
func RatingFor(avg time.Duration) decimal.Decimal {
	capped := min(avg, ratingWindow)
	elapsed := decimal.NewFromInt(int64(capped))
	window := decimal.NewFromInt(int64(ratingWindow))

	return window.Sub(elapsed).
		Div(window).
		Mul(decimal.NewFromInt(MaxRating)).
		Round(ratingPlaces)
}

func (c *Courier) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("courier id", id, 1, "unbounded")
	}
	c.id = id
	return nil
}

func (c *Courier) setType(courierType Type) error {
	if err := courierType.Validate(); err != nil {
		return err
	}
	c.courierType = courierType
	return nil
}

func (c *Courier) setRegions(regions []int64) error {
	for _, region := range regions {
		if region <= 0 {
			return errs.NewValueIsOutOfRangeError("region", region, 1, "unbounded")
		}
	}
	c.regions = slices.Clone(regions)
	return nil
}

func (c *Courier) setWorkingHours(workingHours []kernel.TimeInterval) error {
	for _, interval := range workingHours {
		if err := interval.Validate(); err != nil {
			return err
		}
	}
	c.workingHours = slices.Clone(workingHours)
	return nil
}

func (c *Courier) setStatistics(stats Statistics) error {
	if stats.Earnings < 0 {
		return errs.NewValueIsOutOfRangeError("earnings", stats.Earnings, 0, "unbounded")
	}

	if (stats.Rating == nil) != (stats.MinDeliveryTime == nil) {
		return errs.NewValueIsInvalidErrorWithCause("rating",
			errors.New("rating and min delivery time must be set together"))
	}

	if stats.Rating != nil {
		if stats.Rating.IsNegative() || stats.Rating.GreaterThan(decimal.NewFromInt(MaxRating)) {
			return errs.NewValueIsOutOfRangeError("rating", stats.Rating.String(), 0, MaxRating)
		}
		if *stats.MinDeliveryTime < 0 {
			return errs.NewValueIsInvalidErrorWithCause("min delivery time",
				fmt.Errorf("%s is negative", *stats.MinDeliveryTime))
		}
		rating := *stats.Rating
		minDeliveryTime := *stats.MinDeliveryTime
		c.rating = &rating
		c.minDeliveryTime = &minDeliveryTime
	}

	c.earnings = stats.Earnings
	return nil
}
