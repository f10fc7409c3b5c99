package courierrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/errs"
)

// GormCourierRepository implements CourierRepository using GORM.
type GormCourierRepository struct {
	db *gorm.DB
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// Add saves a new courier to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("courier", aggregate.ID(), err)
		}
		return err
	}

	return nil
}

// Update saves profile and statistics of an existing courier.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ?", dto.ID).
		Select("courier_type", "regions", "working_hours", "rating", "earnings", "min_delivery_time").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courier", aggregate.ID())
	}

	return nil
}

// Get retrieves a courier by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id int64) (*courier.Courier, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves a courier by ID and holds a row lock until the transaction ends.
func (r *GormCourierRepository) GetForUpdate(ctx context.Context, id int64) (*courier.Courier, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// ExistingIDs returns which of ids are already stored, ascending.
func (r *GormCourierRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	existing := make([]int64, 0)
	if len(ids) == 0 {
		return existing, nil
	}

	err := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id IN ?", ids).
		Order("id").
		Pluck("id", &existing).Error
	if err != nil {
		return nil, err
	}

	return existing, nil
}

func (r *GormCourierRepository) get(db *gorm.DB, id int64) (*courier.Courier, error) {
	var dto CourierDTO
	if err := db.First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id)
		}
		return nil, err
	}

	return toDomain(dto)
}
