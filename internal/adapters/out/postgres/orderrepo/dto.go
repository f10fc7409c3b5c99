// Package orderrepo maps the Order aggregate to the orders table.
package orderrepo

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderDTO represents a row of the orders table.
//
// DeliveryTime is stored in whole seconds.
type OrderDTO struct {
	ID                       int64           `gorm:"primaryKey;autoIncrement:false"`
	Weight                   decimal.Decimal `gorm:"type:numeric(4,2);not null"`
	Region                   int64           `gorm:"not null"`
	DeliveryHours            pq.StringArray  `gorm:"type:text[];not null"`
	CourierID                *int64
	AssignTime               *time.Time
	CompleteTime             *time.Time
	DeliveryTime             *int64
	CourierSalaryCoefficient *int
}

// TableName specifies the database table name for order rows.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                       aggregate.ID(),
		Weight:                   aggregate.Weight().Decimal(),
		Region:                   aggregate.Region(),
		DeliveryHours:            append(pq.StringArray{}, kernel.FormatTimeIntervals(aggregate.DeliveryHours())...),
		CourierID:                aggregate.Courier(),
		AssignTime:               aggregate.AssignTime(),
		CompleteTime:             aggregate.CompleteTime(),
		CourierSalaryCoefficient: aggregate.SalaryCoefficient(),
	}

	if d := aggregate.DeliveryTime(); d != nil {
		seconds := int64(*d / time.Second)
		dto.DeliveryTime = &seconds
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	weight, err := kernel.NewWeight(dto.Weight)
	if err != nil {
		return nil, err
	}

	hours, err := kernel.ParseTimeIntervals(dto.DeliveryHours)
	if err != nil {
		return nil, err
	}

	assignment := order.Assignment{
		CourierID:         dto.CourierID,
		AssignTime:        dto.AssignTime,
		SalaryCoefficient: dto.CourierSalaryCoefficient,
		CompleteTime:      dto.CompleteTime,
	}
	if dto.DeliveryTime != nil {
		d := time.Duration(*dto.DeliveryTime) * time.Second
		assignment.DeliveryTime = &d
	}

	return order.RestoreOrder(dto.ID, weight, dto.Region, hours, assignment)
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
