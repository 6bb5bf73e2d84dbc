package servicerepo

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/serviceperiod"
	"pizzeria/internal/pkg/errs"
)

// GormServicePeriodRepository implements ServicePeriodRepository using GORM.
type GormServicePeriodRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormServicePeriodRepository creates a new GORM service period repository.
func NewGormServicePeriodRepository(db *gorm.DB, tracker aggregateTracker) *GormServicePeriodRepository {
	return &GormServicePeriodRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new service period. The partial unique index on open periods
// turns a concurrent double-open into serviceperiod.ErrServiceAlreadyOpen.
func (r *GormServicePeriodRepository) Add(ctx context.Context, aggregate *serviceperiod.ServicePeriod) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return serviceperiod.ErrServiceAlreadyOpen
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing service period to the database.
func (r *GormServicePeriodRepository) Update(ctx context.Context, aggregate *serviceperiod.ServicePeriod) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ServicePeriodDTO{}).
		Where("id = ?", dto.ID).
		Select("Status", "EndTime", "OrderCount", "TotalRevenue", "AverageTicket", "TopItem").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a service period by ID.
func (r *GormServicePeriodRepository) Get(ctx context.Context, id kernel.UUID) (*serviceperiod.ServicePeriod, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ServicePeriodDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("servicePeriod", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOpen retrieves the single currently open service period.
func (r *GormServicePeriodRepository) GetOpen(ctx context.Context) (*serviceperiod.ServicePeriod, error) {
	var dto ServicePeriodDTO
	err := r.db.WithContext(ctx).First(&dto, "status = ?", "open").Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("servicePeriod", "open")
		}
		return nil, err
	}

	return toDomain(dto)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
