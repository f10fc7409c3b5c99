package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	echoSwagger "github.com/swaggo/echo-swagger"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/pkg/errs"
)

type CreateCouriersHandler interface {
	Handle(ctx context.Context, command commands.CreateCouriersCommand) ([]int64, error)
}

type UpdateCourierHandler interface {
	Handle(ctx context.Context, command commands.UpdateCourierCommand) (commands.UpdateCourierResult, error)
}

type GetCourierHandler interface {
	Handle(ctx context.Context, query queries.GetCourierQuery) (queries.GetCourierQueryResponse, error)
}

type CreateOrdersHandler interface {
	Handle(ctx context.Context, command commands.CreateOrdersCommand) ([]int64, error)
}

type AssignOrdersHandler interface {
	Handle(ctx context.Context, command commands.AssignOrdersCommand) (commands.AssignOrdersResult, error)
}

type CompleteOrderHandler interface {
	Handle(ctx context.Context, command commands.CompleteOrderCommand) (int64, error)
}

// Server handles HTTP requests and translates them into commands and queries.
type Server struct {
	// Command handlers
	createCouriersHandler CreateCouriersHandler
	updateCourierHandler  UpdateCourierHandler
	createOrdersHandler   CreateOrdersHandler
	assignOrdersHandler   AssignOrdersHandler
	completeOrderHandler  CompleteOrderHandler

	// Query handlers
	getCourierHandler GetCourierHandler

	validator *Validator
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createCouriersHandler CreateCouriersHandler,
	updateCourierHandler UpdateCourierHandler,
	getCourierHandler GetCourierHandler,
	createOrdersHandler CreateOrdersHandler,
	assignOrdersHandler AssignOrdersHandler,
	completeOrderHandler CompleteOrderHandler,
	validator *Validator,
	logger *slog.Logger,
) *Server {
	return &Server{
		createCouriersHandler: createCouriersHandler,
		updateCourierHandler:  updateCourierHandler,
		getCourierHandler:     getCourierHandler,
		createOrdersHandler:   createOrdersHandler,
		assignOrdersHandler:   assignOrdersHandler,
		completeOrderHandler:  completeOrderHandler,
		validator:             validator,
		logger:                logger.With("component", "http_server"),
	}
}

// RegisterHandlers mounts every route on e.
func (s *Server) RegisterHandlers(e *echo.Echo) {
	e.POST("/couriers", s.CreateCouriers)
	e.GET("/couriers/:courier_id", s.GetCourier)
	e.PATCH("/couriers/:courier_id", s.UpdateCourier)
	e.POST("/orders", s.CreateOrders)
	e.POST("/orders/assign", s.AssignOrders)
	e.POST("/orders/complete", s.CompleteOrder)
	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

func (s *Server) readBody(ctx echo.Context, schema string, dest any) error {
	raw, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return s.validator.Decode(raw, schema, dest)
}

func bindCourierID(ctx echo.Context) (int64, error) {
	var courierID int64
	err := runtime.BindStyledParameterWithOptions("simple", "courier_id", ctx.Param("courier_id"), &courierID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("courier_id", err)
	}
	return courierID, nil
}

// writeError maps application errors to status codes. A missing object answers
// notFoundStatus, which is 404 for courier resources and 400 for order actions.
func (s *Server) writeError(ctx echo.Context, err error, notFoundStatus int) error {
	var importErr *commands.InvalidImportError
	switch {
	case errors.As(err, &importErr):
		return ctx.JSON(http.StatusBadRequest, newImportValidationError(importErr.Kind, importErr.IDs))
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(notFoundStatus, Error{Code: notFoundStatus, Message: err.Error()})
	case errs.IsValidation(err), errors.Is(err, errs.ErrObjectAlreadyExists):
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})
	}

	s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
		"method", ctx.Request().Method,
		"path", ctx.Path(),
		"error", err,
	)
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
	})
}
