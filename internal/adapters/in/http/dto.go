package http

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// Error is the body of every non-import failure.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type IDItem struct {
	ID int64 `json:"id"`
}

func toIDItems(ids []int64) []IDItem {
	items := make([]IDItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, IDItem{ID: id})
	}
	return items
}

// ImportValidationError lists the rejected items of a bulk import under their kind.
type ImportValidationError struct {
	ValidationError map[string][]IDItem `json:"validation_error"`
}

func newImportValidationError(kind string, ids []int64) ImportValidationError {
	return ImportValidationError{
		ValidationError: map[string][]IDItem{kind: toIDItems(ids)},
	}
}

type ImportRequest struct {
	Data []json.RawMessage `json:"data"`
}

type CourierItem struct {
	CourierID    int64    `json:"courier_id"`
	CourierType  string   `json:"courier_type"`
	Regions      []int64  `json:"regions"`
	WorkingHours []string `json:"working_hours"`
}

func (i CourierItem) toCommand() commands.CourierImportItem {
	return commands.CourierImportItem{
		ID:           i.CourierID,
		Type:         i.CourierType,
		Regions:      i.Regions,
		WorkingHours: i.WorkingHours,
	}
}

type CouriersIDs struct {
	Couriers []IDItem `json:"couriers"`
}

type OrderItem struct {
	OrderID       int64           `json:"order_id"`
	Weight        decimal.Decimal `json:"weight"`
	Region        int64           `json:"region"`
	DeliveryHours []string        `json:"delivery_hours"`
}

func (i OrderItem) toCommand() commands.OrderImportItem {
	return commands.OrderImportItem{
		ID:            i.OrderID,
		Weight:        i.Weight,
		Region:        i.Region,
		DeliveryHours: i.DeliveryHours,
	}
}

type OrdersIDs struct {
	Orders []IDItem `json:"orders"`
}

type CourierUpdateRequest struct {
	CourierType  *string   `json:"courier_type"`
	Regions      *[]int64  `json:"regions"`
	WorkingHours *[]string `json:"working_hours"`
}

func (r CourierUpdateRequest) toPatch() commands.CourierPatch {
	return commands.CourierPatch{
		Type:         r.CourierType,
		Regions:      r.Regions,
		WorkingHours: r.WorkingHours,
	}
}

// Courier is the public courier representation. Rating is omitted until the courier
// completes an order.
type Courier struct {
	CourierID    int64    `json:"courier_id"`
	CourierType  string   `json:"courier_type"`
	Regions      []int64  `json:"regions"`
	WorkingHours []string `json:"working_hours"`
	Rating       *float64 `json:"rating,omitempty"`
	Earnings     int64    `json:"earnings"`
}

func courierFromQuery(r queries.GetCourierQueryResponse) Courier {
	return Courier{
		CourierID:    r.ID,
		CourierType:  r.Type,
		Regions:      r.Regions,
		WorkingHours: r.WorkingHours,
		Rating:       ratingValue(r.Rating),
		Earnings:     r.Earnings,
	}
}

func courierFromDomain(c *courier.Courier) Courier {
	return Courier{
		CourierID:    c.ID(),
		CourierType:  c.Type().String(),
		Regions:      c.Regions(),
		WorkingHours: kernel.FormatTimeIntervals(c.WorkingHours()),
		Rating:       ratingValue(c.Rating()),
		Earnings:     c.Earnings(),
	}
}

func ratingValue(rating *decimal.Decimal) *float64 {
	if rating == nil {
		return nil
	}
	v := rating.InexactFloat64()
	return &v
}

type OrdersAssignRequest struct {
	CourierID int64 `json:"courier_id"`
}

type OrdersAssignResponse struct {
	Orders     []IDItem   `json:"orders"`
	AssignTime *time.Time `json:"assign_time,omitempty"`
}

type OrderCompleteRequest struct {
	CourierID    int64  `json:"courier_id"`
	OrderID      int64  `json:"order_id"`
	CompleteTime string `json:"complete_time"`
}

type OrderCompleteResponse struct {
	OrderID int64 `json:"order_id"`
}
