// Package orderrepo implements order persistence on GORM, mapping the
// order aggregate with its item snapshots and optional delivery leg onto
// three tables.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for order aggregates.
// Items and the delivery leg live in child tables and are loaded through
// GORM associations.
type OrderDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID  `gorm:"type:uuid;index"`
	AddressID   *uuid.UUID `gorm:"type:uuid"`
	Mode        string
	Status      string          `gorm:"index"`
	DeliveryFee decimal.Decimal `gorm:"type:decimal(10,2)"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2)"`
	ServiceID   *uuid.UUID      `gorm:"type:uuid;index"`
	Comment     string
	CreatedAt   time.Time    `gorm:"index"`
	Items       []ItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Delivery    *DeliveryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one immutable order line snapshot.
type ItemDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Name      string
	Category  string
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2)"`
	Quantity  int
	Notes     string
	Kind      string
}

// TableName overrides GORM's default naming to use "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

// DeliveryDTO represents the 1:1 delivery leg of a delivery-mode order.
type DeliveryDTO struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	DriverID    uuid.UUID `gorm:"type:uuid;index"`
	Status      string
	AssignedAt  time.Time
	DepartedAt  *time.Time
	DeliveredAt *time.Time
}

// TableName overrides GORM's default naming to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var addressID *uuid.UUID
	if id := aggregate.AddressID(); id != nil {
		raw := id.Bytes()
		addressID = &raw
	}

	var serviceID *uuid.UUID
	if id := aggregate.ServiceID(); id != nil {
		raw := id.Bytes()
		serviceID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			Category:  item.Category(),
			UnitPrice: item.UnitPrice().Decimal(),
			Quantity:  item.Quantity(),
			Notes:     item.Notes(),
			Kind:      item.Kind().String(),
		})
	}

	var delivery *DeliveryDTO
	if leg := aggregate.Delivery(); leg != nil {
		delivery = &DeliveryDTO{
			OrderID:     aggregate.ID().Bytes(),
			DriverID:    leg.DriverID().Bytes(),
			Status:      leg.Status().String(),
			AssignedAt:  leg.AssignedAt(),
			DepartedAt:  leg.DepartedAt(),
			DeliveredAt: leg.DeliveredAt(),
		}
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		CustomerID:  aggregate.CustomerID().Bytes(),
		AddressID:   addressID,
		Mode:        aggregate.Mode().String(),
		Status:      aggregate.Status().String(),
		DeliveryFee: aggregate.DeliveryFee().Decimal(),
		TotalAmount: aggregate.TotalAmount().Decimal(),
		ServiceID:   serviceID,
		Comment:     aggregate.Comment(),
		CreatedAt:   aggregate.CreatedAt(),
		Items:       items,
		Delivery:    delivery,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var addressID *kernel.UUID
	if dto.AddressID != nil {
		restored, addrErr := kernel.UUIDFromBytes((*dto.AddressID)[:])
		if addrErr != nil {
			return nil, addrErr
		}
		addressID = &restored
	}

	var serviceID *kernel.UUID
	if dto.ServiceID != nil {
		restored, svcErr := kernel.UUIDFromBytes((*dto.ServiceID)[:])
		if svcErr != nil {
			return nil, svcErr
		}
		serviceID = &restored
	}

	mode, err := order.ModeFromString(dto.Mode)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}
	totalAmount, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var delivery *order.Delivery
	if dto.Delivery != nil {
		delivery, err = deliveryToDomain(*dto.Delivery)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(id, customerID, addressID, mode, status, items,
		deliveryFee, totalAmount, serviceID, dto.Comment, dto.CreatedAt, delivery)
}

func itemToDomain(dto ItemDTO) (order.Item, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}
	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}
	kind, err := order.ItemKindFromString(dto.Kind)
	if err != nil {
		return order.Item{}, err
	}

	return order.NewItem(productID, dto.Name, dto.Category, unitPrice,
		dto.Quantity, dto.Notes, kind)
}

func deliveryToDomain(dto DeliveryDTO) (*order.Delivery, error) {
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.DeliveryStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreDelivery(driverID, status, dto.AssignedAt,
		dto.DepartedAt, dto.DeliveredAt)
}
