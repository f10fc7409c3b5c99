// Package queries contains read operations for retrieving system state.
// Queries bypass the aggregates and read the tables directly.
package queries

import (
	"errors"

	"github.com/shopspring/decimal"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetCourierQueryIsNotConstructed = errors.New(
		"GetCourierQuery must be created via NewGetCourierQuery constructor",
	)
)

// GetCourierQuery retrieves the profile and statistics of one courier.
//
// Example:
//
//	query, err := NewGetCourierQuery(2)
//	if err != nil {
//	    return err
//	}
//
//	c, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown courier
//	}
type GetCourierQuery struct {
	courierID int64
	guard     guard.ConstructorGuard
}

func NewGetCourierQuery(courierID int64) (GetCourierQuery, error) {
	if courierID <= 0 {
		return GetCourierQuery{}, errs.NewValueIsOutOfRangeError("courier id", courierID, 1, "unbounded")
	}

	return GetCourierQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetCourierQuery) CourierID() int64 {
	return q.courierID
}

// Validate ensures the query was created through the constructor.
func (q GetCourierQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierQueryIsNotConstructed)
}

// GetCourierQueryResponse is the courier read model.
// Rating is nil until the courier completes a first order.
type GetCourierQueryResponse struct {
	ID           int64
	Type         string
	Regions      []int64
	WorkingHours []string
	Rating       *decimal.Decimal
	Earnings     int64
}
