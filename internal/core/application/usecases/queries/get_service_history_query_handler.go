package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/serviceperiod"
)

// GetServiceHistoryQueryHandler serves the closed-period history.
type GetServiceHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetServiceHistoryQueryHandler creates a handler for service history
// queries.
func NewGetServiceHistoryQueryHandler(db *gorm.DB) GetServiceHistoryQueryHandler {
	return GetServiceHistoryQueryHandler{db: db}
}

// Handle executes the history query, newest period first.
func (h GetServiceHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetServiceHistoryQuery,
) ([]GetServiceHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			start_time,
			end_time,
			order_count,
			total_revenue,
			average_ticket,
			top_item
		FROM service_periods
		WHERE status = ?
		ORDER BY end_time DESC
	`, serviceperiod.StatusClosed.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	periods := make([]GetServiceHistoryQueryResponse, 0)
	for rows.Next() {
		var period GetServiceHistoryQueryResponse
		var id uuid.UUID
		var startTime, endTime time.Time
		var totalRevenue, averageTicket decimal.Decimal

		if err = rows.Scan(&id, &startTime, &endTime, &period.OrderCount,
			&totalRevenue, &averageTicket, &period.TopItem); err != nil {
			return nil, err
		}

		period.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		period.StartTime = startTime
		period.EndTime = endTime
		period.TotalRevenue, err = kernel.NewMoney(totalRevenue)
		if err != nil {
			return nil, err
		}
		period.AverageTicket, err = kernel.NewMoney(averageTicket)
		if err != nil {
			return nil, err
		}

		periods = append(periods, period)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return periods, nil
}
