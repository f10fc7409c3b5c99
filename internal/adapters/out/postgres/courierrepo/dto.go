// Package courierrepo maps the Courier aggregate to the couriers table.
package courierrepo

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// secondsPlaces is the precision of min_delivery_time.
const secondsPlaces = 3

// CourierDTO represents a row of the couriers table.
type CourierDTO struct {
	ID              int64               `gorm:"primaryKey;autoIncrement:false"`
	CourierType     string              `gorm:"not null"`
	Regions         pq.Int64Array       `gorm:"type:bigint[];not null"`
	WorkingHours    pq.StringArray      `gorm:"type:text[];not null"`
	Rating          decimal.NullDecimal `gorm:"type:numeric(3,2)"`
	Earnings        int64               `gorm:"not null"`
	MinDeliveryTime decimal.NullDecimal `gorm:"type:numeric(14,3)"`
}

// TableName specifies the database table name for courier rows.
func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	dto := CourierDTO{
		ID:           aggregate.ID(),
		CourierType:  aggregate.Type().String(),
		Regions:      append(pq.Int64Array{}, aggregate.Regions()...),
		WorkingHours: append(pq.StringArray{}, kernel.FormatTimeIntervals(aggregate.WorkingHours())...),
		Earnings:     aggregate.Earnings(),
	}

	if rating := aggregate.Rating(); rating != nil {
		dto.Rating = decimal.NewNullDecimal(*rating)
	}
	if d := aggregate.MinDeliveryTime(); d != nil {
		dto.MinDeliveryTime = decimal.NewNullDecimal(DurationToSeconds(*d))
	}

	return dto
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	courierType, err := courier.ParseType(dto.CourierType)
	if err != nil {
		return nil, err
	}

	hours, err := kernel.ParseTimeIntervals(dto.WorkingHours)
	if err != nil {
		return nil, err
	}

	stats := courier.Statistics{Earnings: dto.Earnings}
	if dto.Rating.Valid {
		rating := dto.Rating.Decimal
		stats.Rating = &rating
	}
	if dto.MinDeliveryTime.Valid {
		d := SecondsToDuration(dto.MinDeliveryTime.Decimal)
		stats.MinDeliveryTime = &d
	}

	return courier.RestoreCourier(dto.ID, courierType, dto.Regions, hours, stats)
}

// DurationToSeconds converts d to seconds with millisecond precision.
func DurationToSeconds(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d)).Shift(-9).Round(secondsPlaces)
}

// SecondsToDuration is the inverse of DurationToSeconds.
func SecondsToDuration(seconds decimal.Decimal) time.Duration {
	return time.Duration(seconds.Shift(9).IntPart())
}
