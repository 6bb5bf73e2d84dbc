package servicerepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/serviceperiod"
)

// ServicePeriodDTO is the database representation of a service period.
// The partial unique index on status backs the single-open-period invariant
// at the storage level.
type ServicePeriodDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Status        string          `gorm:"index:idx_service_periods_open,unique,where:status = 'open'"`
	StartTime     time.Time
	EndTime       *time.Time
	OrderCount    int
	TotalRevenue  decimal.Decimal `gorm:"type:decimal(10,2)"`
	AverageTicket decimal.Decimal `gorm:"type:decimal(10,2)"`
	TopItem       string
}

// TableName overrides the default GORM table name.
func (ServicePeriodDTO) TableName() string {
	return "service_periods"
}

func fromDomain(aggregate *serviceperiod.ServicePeriod) ServicePeriodDTO {
	stats := aggregate.Stats()
	return ServicePeriodDTO{
		ID:            aggregate.ID().Bytes(),
		Status:        aggregate.Status().String(),
		StartTime:     aggregate.StartTime(),
		EndTime:       aggregate.EndTime(),
		OrderCount:    stats.OrderCount,
		TotalRevenue:  stats.TotalRevenue.Decimal(),
		AverageTicket: stats.AverageTicket.Decimal(),
		TopItem:       stats.TopItem,
	}
}

func toDomain(dto ServicePeriodDTO) (*serviceperiod.ServicePeriod, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := serviceperiod.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	totalRevenue, err := kernel.NewMoney(dto.TotalRevenue)
	if err != nil {
		return nil, err
	}

	averageTicket, err := kernel.NewMoney(dto.AverageTicket)
	if err != nil {
		return nil, err
	}

	stats := serviceperiod.ClosingStats{
		OrderCount:    dto.OrderCount,
		TotalRevenue:  totalRevenue,
		AverageTicket: averageTicket,
		TopItem:       dto.TopItem,
	}

	return serviceperiod.RestoreServicePeriod(id, status, dto.StartTime, dto.EndTime, stats)
}
