package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrMixedAssignment is returned when orders passed to Claim were not assigned together.
var ErrMixedAssignment = errors.New("orders must share courier, assign time and salary coefficient")

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("order", aggregate.ID(), err)
		}
		return err
	}

	return nil
}

// Update saves the assignment and completion state of an existing order.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("courier_id", "assign_time", "complete_time", "delivery_time", "courier_salary_coefficient").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ExistingIDs returns which of ids are already stored, ascending.
func (r *GormOrderRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	existing := make([]int64, 0)
	if len(ids) == 0 {
		return existing, nil
	}

	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id IN ?", ids).
		Order("id").
		Pluck("id", &existing).Error
	if err != nil {
		return nil, err
	}

	return existing, nil
}

// FindAssignable retrieves unassigned orders in regions that weigh at most maxWeight.
func (r *GormOrderRepository) FindAssignable(
	ctx context.Context,
	regions []int64,
	maxWeight decimal.Decimal,
) ([]*order.Order, error) {
	if len(regions) == 0 {
		return []*order.Order{}, nil
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("assign_time IS NULL AND region IN ? AND weight <= ?", regions, maxWeight).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// Claim writes the in-memory assignment of orders with a single compare-and-swap
// update keyed on assign_time IS NULL. Rows claimed by a concurrent transaction in
// the meantime are skipped.
func (r *GormOrderRepository) Claim(ctx context.Context, orders []*order.Order) ([]int64, error) {
	if len(orders) == 0 {
		return []int64{}, nil
	}

	first := orders[0]
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if o.Status() != order.Assigned {
			return nil, errs.NewValueIsInvalidErrorWithCause("order",
				fmt.Errorf("order %d is %s, not assigned", o.ID(), o.Status()))
		}
		if *o.Courier() != *first.Courier() ||
			!o.AssignTime().Equal(*first.AssignTime()) ||
			*o.SalaryCoefficient() != *first.SalaryCoefficient() {
			return nil, errs.NewValueIsInvalidErrorWithCause("orders", ErrMixedAssignment)
		}
		ids = append(ids, o.ID())
	}

	var claimed []OrderDTO
	err := r.db.WithContext(ctx).
		Model(&claimed).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Where("id IN ? AND assign_time IS NULL", ids).
		Updates(map[string]any{
			"courier_id":                 *first.Courier(),
			"assign_time":                *first.AssignTime(),
			"courier_salary_coefficient": *first.SalaryCoefficient(),
		}).Error
	if err != nil {
		return nil, err
	}

	return sortedIDs(claimed), nil
}

// GetOpenByCourier retrieves orders held by the courier that are not completed.
func (r *GormOrderRepository) GetOpenByCourier(ctx context.Context, courierID int64) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("courier_id = ? AND complete_time IS NULL", courierID).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// Release clears courier, assign time and coefficient of orders that are still held
// open by courierID.
func (r *GormOrderRepository) Release(ctx context.Context, courierID int64, orders []*order.Order) ([]int64, error) {
	if len(orders) == 0 {
		return []int64{}, nil
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if o.Status() != order.Created {
			return nil, errs.NewValueIsInvalidErrorWithCause("order",
				fmt.Errorf("order %d is %s, not released", o.ID(), o.Status()))
		}
		ids = append(ids, o.ID())
	}

	var released []OrderDTO
	err := r.db.WithContext(ctx).
		Model(&released).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Where("id IN ? AND courier_id = ? AND complete_time IS NULL", ids, courierID).
		Updates(map[string]any{
			"courier_id":                 nil,
			"assign_time":                nil,
			"courier_salary_coefficient": nil,
		}).Error
	if err != nil {
		return nil, err
	}

	return sortedIDs(released), nil
}

// GetOpenForCourier retrieves orderID if courierID holds it and it is not completed.
func (r *GormOrderRepository) GetOpenForCourier(ctx context.Context, courierID, orderID int64) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND courier_id = ? AND complete_time IS NULL", orderID, courierID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("order", orderID,
				fmt.Errorf("no open order held by courier %d", courierID))
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetCompletedByCourierInRegion retrieves completed orders of the courier in region,
// latest completion first.
func (r *GormOrderRepository) GetCompletedByCourierInRegion(
	ctx context.Context,
	courierID, region int64,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("courier_id = ? AND region = ? AND complete_time IS NOT NULL", courierID, region).
		Order("complete_time DESC, id DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func sortedIDs(dtos []OrderDTO) []int64 {
	ids := make([]int64, 0, len(dtos))
	for _, dto := range dtos {
		ids = append(ids, dto.ID)
	}
	slices.Sort(ids)
	return ids
}
