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
	"pizzeria/internal/pkg/errs"
)

// GetOrderDetailQueryHandler serves the staff order detail endpoint.
// Joins the order with its customer, destination and delivery leg, then
// loads the lines in a second query.
type GetOrderDetailQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderDetailQueryHandler creates a handler for order detail
// queries.
func NewGetOrderDetailQueryHandler(db *gorm.DB) GetOrderDetailQueryHandler {
	return GetOrderDetailQueryHandler{db: db}
}

// Handle executes the detail query.
// Returns errs.ErrObjectNotFound when the order does not exist.
func (h GetOrderDetailQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDetailQuery,
) (GetOrderDetailQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderDetailQueryResponse{}, err
	}

	response, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderDetailQueryResponse{}, err
	}

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderDetailQueryResponse{}, err
	}
	response.Items = items

	return response, nil
}

func (h GetOrderDetailQueryHandler) loadOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (GetOrderDetailQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.mode,
			o.delivery_fee,
			o.total_amount,
			o.comment,
			o.created_at,
			c.phone,
			c.name,
			a.street,
			a.postal_code,
			a.city,
			a.label,
			a.additional_info,
			d.driver_id,
			d.status,
			d.assigned_at,
			d.departed_at,
			d.delivered_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		LEFT JOIN addresses a ON a.id = o.address_id
		LEFT JOIN deliveries d ON d.order_id = o.id
		WHERE o.id = ?
	`, orderID.Bytes()).Row()

	var id uuid.UUID
	var status, mode, comment, phone, name string
	var deliveryFee, totalAmount decimal.Decimal
	var createdAt time.Time
	var street, postalCode, city, label, additionalInfo sql.NullString
	var driverID uuid.NullUUID
	var deliveryStatus sql.NullString
	var assignedAt, departedAt, deliveredAt sql.NullTime

	err := row.Scan(&id, &status, &mode, &deliveryFee, &totalAmount, &comment, &createdAt,
		&phone, &name,
		&street, &postalCode, &city, &label, &additionalInfo,
		&driverID, &deliveryStatus, &assignedAt, &departedAt, &deliveredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderDetailQueryResponse{}, errs.NewObjectNotFoundError("orderID", orderID)
	}
	if err != nil {
		return GetOrderDetailQueryResponse{}, err
	}

	responseID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderDetailQueryResponse{}, err
	}
	fee, err := kernel.NewMoney(deliveryFee)
	if err != nil {
		return GetOrderDetailQueryResponse{}, err
	}
	total, err := kernel.NewMoney(totalAmount)
	if err != nil {
		return GetOrderDetailQueryResponse{}, err
	}

	response := GetOrderDetailQueryResponse{
		ID:            responseID,
		Status:        status,
		Mode:          mode,
		CustomerPhone: phone,
		CustomerName:  name,
		DeliveryFee:   fee,
		TotalAmount:   total,
		Comment:       comment,
		CreatedAt:     createdAt,
	}

	if street.Valid {
		response.Address = &AddressView{
			Street:         street.String,
			PostalCode:     postalCode.String,
			City:           city.String,
			Label:          label.String,
			AdditionalInfo: additionalInfo.String,
		}
	}

	if driverID.Valid {
		responseDriverID, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
		if idErr != nil {
			return GetOrderDetailQueryResponse{}, idErr
		}
		delivery := &DeliveryView{
			DriverID:   responseDriverID,
			Status:     deliveryStatus.String,
			AssignedAt: assignedAt.Time,
		}
		if departedAt.Valid {
			departed := departedAt.Time
			delivery.DepartedAt = &departed
		}
		if deliveredAt.Valid {
			delivered := deliveredAt.Time
			delivery.DeliveredAt = &delivered
		}
		response.Delivery = delivery
	}

	return response, nil
}

func (h GetOrderDetailQueryHandler) loadItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderItemView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			name,
			category,
			unit_price,
			quantity,
			notes,
			kind
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var item OrderItemView
		var unitPrice decimal.Decimal

		if err = rows.Scan(&item.Name, &item.Category, &unitPrice,
			&item.Quantity, &item.Notes, &item.Kind); err != nil {
			return nil, err
		}

		item.UnitPrice, err = kernel.NewMoney(unitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
