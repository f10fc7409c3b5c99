package queries

import (
	"context"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dispatch/internal/pkg/errs"
)

// GetCourierQueryHandler reads a courier straight from the couriers table.
type GetCourierQueryHandler struct {
	db *gorm.DB
}

func NewGetCourierQueryHandler(db *gorm.DB) GetCourierQueryHandler {
	return GetCourierQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound when the courier does not exist.
func (h GetCourierQueryHandler) Handle(
	ctx context.Context,
	query GetCourierQuery,
) (GetCourierQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			courier_type,
			regions,
			working_hours,
			rating,
			earnings
		FROM couriers
		WHERE id = ?
	`, query.CourierID()).Rows()
	if err != nil {
		return GetCourierQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetCourierQueryResponse{}, err
		}
		return GetCourierQueryResponse{}, errs.NewObjectNotFoundError("courier", query.CourierID())
	}

	var (
		response     GetCourierQueryResponse
		regions      pq.Int64Array
		workingHours pq.StringArray
		rating       decimal.NullDecimal
	)

	err = rows.Scan(
		&response.ID,
		&response.Type,
		&regions,
		&workingHours,
		&rating,
		&response.Earnings,
	)
	if err != nil {
		return GetCourierQueryResponse{}, err
	}

	response.Regions = []int64(regions)
	if response.Regions == nil {
		response.Regions = []int64{}
	}
	response.WorkingHours = []string(workingHours)
	if response.WorkingHours == nil {
		response.WorkingHours = []string{}
	}
	if rating.Valid {
		response.Rating = &rating.Decimal
	}

	return response, nil
}
