package http

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
)

const (
	importKindCouriers = "couriers"
	importKindOrders   = "orders"
)

// CreateCouriers handles POST /couriers. The batch is stored only if every item is
// valid; otherwise the ids of the rejected items are returned.
func (s *Server) CreateCouriers(ctx echo.Context) error {
	var body ImportRequest
	if err := s.readBody(ctx, "CouriersImportRequest", &body); err != nil {
		return s.writeError(ctx, err, http.StatusBadRequest)
	}

	items := make([]commands.CourierImportItem, 0, len(body.Data))
	var rejected []int64
	for _, raw := range body.Data {
		var item CourierItem
		if err := s.validator.Decode(raw, "CourierItem", &item); err != nil {
			id, ok := itemID(raw, "courier_id")
			if !ok {
				return s.writeError(ctx, err, http.StatusBadRequest)
			}
			rejected = append(rejected, id)
			continue
		}
		items = append(items, item.toCommand())
	}
	if len(rejected) > 0 {
		return ctx.JSON(http.StatusBadRequest, newImportValidationError(importKindCouriers, rejected))
	}

	cmd, err := commands.NewCreateCouriersCommand(items)
	if err != nil {
		return s.writeError(ctx, err, http.StatusBadRequest)
	}

	ids, err := s.createCouriersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err, http.StatusBadRequest)
	}

	return ctx.JSON(http.StatusCreated, CouriersIDs{Couriers: toIDItems(ids)})
}

// GetCourier handles GET /couriers/{courier_id}.
func (s *Server) GetCourier(ctx echo.Context) error {
	courierID, err := bindCourierID(ctx)
	if err != nil {
		return s.writeError(ctx, err, http.StatusNotFound)
	}

	query, err := queries.NewGetCourierQuery(courierID)
	if err != nil {
		return s.writeError(ctx, err, http.StatusNotFound)
	}

	c, err := s.getCourierHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err, http.StatusNotFound)
	}

	return ctx.JSON(http.StatusOK, courierFromQuery(c))
}

// UpdateCourier handles PATCH /couriers/{courier_id}. Orders the courier can no
// longer deliver are returned to the pool in the same transaction.
func (s *Server) UpdateCourier(ctx echo.Context) error {
	courierID, err := bindCourierID(ctx)
	if err != nil {
		return s.writeError(ctx, err, http.StatusNotFound)
	}

	var body CourierUpdateRequest
	if err = s.readBody(ctx, "CourierUpdateRequest", &body); err != nil {
		return s.writeError(ctx, err, http.StatusNotFound)
	}

	cmd, err := commands.NewUpdateCourierCommand(courierID, body.toPatch())
	if err != nil {
		return s.writeError(ctx, err, http.StatusNotFound)
	}

	result, err := s.updateCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err, http.StatusNotFound)
	}

	if len(result.Released) > 0 {
		s.logger.InfoContext(ctx.Request().Context(), "Orders withdrawn from courier",
			"courier_id", courierID,
			"orders", result.Released,
		)
	}

	return ctx.JSON(http.StatusOK, courierFromDomain(result.Courier))
}

// itemID extracts a positive integer id from a raw import item so a rejected item
// can still be reported.
func itemID(raw json.RawMessage, key string) (int64, bool) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return 0, false
	}

	value, ok := fields[key].(float64)
	if !ok || value < 1 || value != float64(int64(value)) {
		return 0, false
	}
	return int64(value), true
}
