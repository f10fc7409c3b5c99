package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/pkg/errs"
)

// CreateOrders handles POST /orders with the same all-or-nothing rules as couriers.
func (s *Server) CreateOrders(ctx echo.Context) error {
	var body ImportRequest
	if err := s.readBody(ctx, "OrdersImportRequest", &body); err != nil {
		return s.writeError(ctx, err, http.StatusBadRequest)
	}

	items := make([]commands.OrderImportItem, 0, len(body.Data))
	var rejected []int64
	for _, raw := range body.Data {
		var item OrderItem
		if err := s.validator.Decode(raw, "OrderItem", &item); err != nil {
			id, ok := itemID(raw, "order_id")
			if !ok {
				return s.writeError(ctx, err, http.StatusBadRequest)
			}
			rejected = append(rejected, id)
			continue
		}
		items = append(items, item.toCommand())
	}
	if len(rejected) > 0 {
		return ctx.JSON(http.StatusBadRequest, newImportValidationError(importKindOrders, rejected))
	}

	cmd, err := commands.NewCreateOrdersCommand(items)
	if err != nil {
		return s.writeError(ctx, err, http.StatusBadRequest)
	}

	ids, err := s.createOrdersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err, http.StatusBadRequest)
	}

	return ctx.JSON(http.StatusCreated, OrdersIDs{Orders: toIDItems(ids)})
}

// AssignOrders handles POST /orders/assign. An empty assignment is a success and
// carries no assign_time.
func (s *Server) AssignOrders(ctx echo.Context) error {
	var body OrdersAssignRequest
	if err := s.readBody(ctx, "OrdersAssignRequest", &body); err != nil {
		return s.writeError(ctx, err, http.StatusBadRequest)
	}

	cmd, err := commands.NewAssignOrdersCommand(body.CourierID)
	if err != nil {
		return s.writeError(ctx, err, http.StatusBadRequest)
	}

	result, err := s.assignOrdersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err, http.StatusBadRequest)
	}

	return ctx.JSON(http.StatusOK, OrdersAssignResponse{
		Orders:     toIDItems(result.OrderIDs),
		AssignTime: result.AssignTime,
	})
}

// CompleteOrder handles POST /orders/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	var body OrderCompleteRequest
	if err := s.readBody(ctx, "OrderCompleteRequest", &body); err != nil {
		return s.writeError(ctx, err, http.StatusBadRequest)
	}

	completeTime, err := time.Parse(time.RFC3339Nano, body.CompleteTime)
	if err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidErrorWithCause("complete_time", err), http.StatusBadRequest)
	}

	cmd, err := commands.NewCompleteOrderCommand(body.CourierID, body.OrderID, completeTime)
	if err != nil {
		return s.writeError(ctx, err, http.StatusBadRequest)
	}

	orderID, err := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err, http.StatusBadRequest)
	}

	return ctx.JSON(http.StatusOK, OrderCompleteResponse{OrderID: orderID})
}
