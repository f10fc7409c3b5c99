package courier

import (
	"fmt"

	"github.com/shopspring/decimal"

	"dispatch/internal/pkg/errs"
)

// Type is the means of transport of a courier.
type Type string

const (
	Foot Type = "foot"
	Bike Type = "bike"
	Car  Type = "car"
)

// Profile describes what a courier type can carry and how it is paid.
type Profile struct {
	// Capacity is the maximum order weight in kilograms.
	Capacity decimal.Decimal
	// SalaryCoefficient multiplies the base payment of every completed order.
	SalaryCoefficient int
}

var profiles = map[Type]Profile{
	Foot: {Capacity: decimal.NewFromInt(10), SalaryCoefficient: 2},
	Bike: {Capacity: decimal.NewFromInt(15), SalaryCoefficient: 5},
	Car:  {Capacity: decimal.NewFromInt(50), SalaryCoefficient: 9},
}

// Types lists every known courier type.
func Types() []Type {
	return []Type{Foot, Bike, Car}
}

// ParseType converts the wire form of a courier type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t Type) String() string {
	return string(t)
}

func (t Type) Validate() error {
	if _, ok := profiles[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("courier type",
			fmt.Errorf("%q is not one of foot, bike, car", string(t)))
	}
	return nil
}

// Profile returns the capacity and salary coefficient of the type.
func (t Type) Profile() (Profile, error) {
	p, ok := profiles[t]
	if !ok {
		return Profile{}, t.Validate()
	}
	return p, nil
}
