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
	"pizzeria/internal/pkg/errs"
)

// GetOrderTrackingQueryHandler serves the public order tracking endpoint.
// Reads the order row and its delivery departure time in one query and
// derives the elapsed minutes en route at read time.
type GetOrderTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTrackingQueryHandler creates a handler for tracking queries.
func NewGetOrderTrackingQueryHandler(db *gorm.DB) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db}
}

// Handle executes the tracking query.
// Returns errs.ErrObjectNotFound when the order does not exist.
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.mode,
			o.total_amount,
			o.created_at,
			d.status,
			d.departed_at
		FROM orders o
		LEFT JOIN deliveries d ON d.order_id = o.id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	var id uuid.UUID
	var status, mode string
	var totalAmount decimal.Decimal
	var createdAt time.Time
	var deliveryStatus sql.NullString
	var departedAt sql.NullTime

	err := row.Scan(&id, &status, &mode, &totalAmount, &createdAt, &deliveryStatus, &departedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderTrackingQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	total, err := kernel.NewMoney(totalAmount)
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	response := GetOrderTrackingQueryResponse{
		ID:          orderID,
		Status:      status,
		Mode:        mode,
		TotalAmount: total,
		CreatedAt:   createdAt,
	}

	if deliveryStatus.Valid {
		response.DeliveryStatus = &deliveryStatus.String
	}

	if status == order.StatusEnRoute.String() && departedAt.Valid {
		minutes := int(time.Since(departedAt.Time).Minutes())
		response.MinutesEnRoute = &minutes
	}

	return response, nil
}
