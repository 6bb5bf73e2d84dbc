package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/model/serviceperiod"
)

// GetServiceStatusQueryHandler serves the live service dashboard.
// Counts and sums the open period's orders at read time so staff see the
// day as it unfolds, not a frozen snapshot.
type GetServiceStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetServiceStatusQueryHandler creates a handler for service status
// queries.
func NewGetServiceStatusQueryHandler(db *gorm.DB) GetServiceStatusQueryHandler {
	return GetServiceStatusQueryHandler{db: db}
}

// Handle executes the status query. A missing open period is not an
// error; the response just reports the service as closed.
func (h GetServiceStatusQueryHandler) Handle(
	ctx context.Context,
	query GetServiceStatusQuery,
) (GetServiceStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetServiceStatusQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.start_time,
			COUNT(o.id),
			COALESCE(SUM(o.total_amount), 0)
		FROM service_periods p
		LEFT JOIN orders o
			ON o.service_id = p.id
			AND o.status NOT IN (?, ?)
		WHERE p.status = ?
		GROUP BY p.id, p.start_time
	`, order.StatusCancelled.String(), order.StatusNotDelivered.String(),
		serviceperiod.StatusOpen.String()).Row()

	var id uuid.UUID
	var startTime time.Time
	var orderCount int
	var totalRevenue decimal.Decimal

	err := row.Scan(&id, &startTime, &orderCount, &totalRevenue)
	if errors.Is(err, sql.ErrNoRows) {
		return GetServiceStatusQueryResponse{IsOpen: false}, nil
	}
	if err != nil {
		return GetServiceStatusQueryResponse{}, err
	}

	serviceID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetServiceStatusQueryResponse{}, err
	}
	revenue, err := kernel.NewMoney(totalRevenue)
	if err != nil {
		return GetServiceStatusQueryResponse{}, err
	}

	return GetServiceStatusQueryResponse{
		IsOpen:       true,
		ServiceID:    serviceID,
		StartTime:    startTime,
		OrderCount:   orderCount,
		TotalRevenue: revenue,
	}, nil
}
