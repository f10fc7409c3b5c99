package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetBacklogQueryHandler aggregates the orders table in a single scan.
type GetBacklogQueryHandler struct {
	db *gorm.DB
}

func NewGetBacklogQueryHandler(db *gorm.DB) GetBacklogQueryHandler {
	return GetBacklogQueryHandler{db: db}
}

func (h GetBacklogQueryHandler) Handle(
	ctx context.Context,
	query GetBacklogQuery,
) (GetBacklogQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBacklogQueryResponse{}, err
	}

	var response GetBacklogQueryResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE assign_time IS NULL),
			COUNT(*) FILTER (WHERE assign_time IS NOT NULL AND complete_time IS NULL),
			COUNT(*) FILTER (WHERE complete_time IS NOT NULL)
		FROM orders
	`).Row().Scan(
		&response.Unassigned,
		&response.InFlight,
		&response.Completed,
	)
	if err != nil {
		return GetBacklogQueryResponse{}, err
	}

	return response, nil
}
