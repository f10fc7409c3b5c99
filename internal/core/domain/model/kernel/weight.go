package kernel

import (
	"github.com/shopspring/decimal"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const weightPlaces = 2

var (
	// MinWeight and MaxWeight bound every order weight (inclusive).
	MinWeight = decimal.RequireFromString("0.01")
	MaxWeight = decimal.NewFromInt(50)

	ErrWeightIsNotConstructed = errs.NewValueIsRequiredError("weight must be created via NewWeight")
)

// Weight is an order weight in kilograms rounded to two decimal places.
type Weight struct { //nolint:recvcheck //using for validation
	value decimal.Decimal
	guard guard.ConstructorGuard
}

// NewWeight rounds value to two decimals and checks it against MinWeight..MaxWeight.
func NewWeight(value decimal.Decimal) (Weight, error) {
	rounded := value.Round(weightPlaces)
	if rounded.LessThan(MinWeight) || rounded.GreaterThan(MaxWeight) {
		return Weight{}, errs.NewValueIsOutOfRangeError("weight", value.String(), MinWeight.String(), MaxWeight.String())
	}

	return Weight{value: rounded, guard: guard.NewConstructorGuard()}, nil
}

// NewWeightFromFloat is a convenience for JSON payloads that carry plain numbers.
func NewWeightFromFloat(value float64) (Weight, error) {
	return NewWeight(decimal.NewFromFloat(value))
}

func (w Weight) Decimal() decimal.Decimal {
	return w.value
}

func (w Weight) Float64() float64 {
	f, _ := w.value.Float64()
	return f
}

// FitsInto reports whether the weight does not exceed capacity.
func (w Weight) FitsInto(capacity decimal.Decimal) bool {
	return w.value.LessThanOrEqual(capacity)
}

func (w Weight) String() string {
	return w.value.StringFixed(weightPlaces)
}

func (w Weight) Validate() error {
	return w.guard.Validate(ErrWeightIsNotConstructed)
}
