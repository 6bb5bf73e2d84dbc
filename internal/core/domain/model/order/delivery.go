package order

import (
	"errors"
	"fmt"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was
	// not created through a factory method.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via newDelivery or RestoreDelivery")

	// ErrNotAuthorizedForDelivery is returned when a driver acts on a
	// delivery assigned to someone else. The caller maps this to 403 and no
	// mutation is performed.
	ErrNotAuthorizedForDelivery = errors.New("driver is not authorized for this delivery")
)

// DeliveryStatus represents the driver-side state of a delivery.
type DeliveryStatus int

const (
	// DeliveryStatusUnknown represents an invalid or undefined status.
	DeliveryStatusUnknown DeliveryStatus = iota

	// DeliveryAssigned means a driver has the delivery but has not left.
	DeliveryAssigned

	// DeliveryEnRoute means the driver is on the way.
	DeliveryEnRoute

	// DeliveryDelivered is the terminal success state.
	DeliveryDelivered

	// DeliveryCancelled mirrors an order cancellation after assignment.
	DeliveryCancelled
)

// Validate checks if the DeliveryStatus value is valid.
func (s DeliveryStatus) Validate() error {
	switch s {
	case DeliveryAssigned, DeliveryEnRoute, DeliveryDelivered, DeliveryCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
}

// String returns the wire-format name of the status.
func (s DeliveryStatus) String() string {
	switch s {
	case DeliveryAssigned:
		return "assigned"
	case DeliveryEnRoute:
		return "en_route"
	case DeliveryDelivered:
		return "delivered"
	case DeliveryCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// DeliveryStatusFromString parses a wire-format delivery status name.
func DeliveryStatusFromString(name string) (DeliveryStatus, error) {
	switch name {
	case "assigned":
		return DeliveryAssigned, nil
	case "en_route":
		return DeliveryEnRoute, nil
	case "delivered":
		return DeliveryDelivered, nil
	case "cancelled":
		return DeliveryCancelled, nil
	default:
		return DeliveryStatusUnknown, errs.NewValueIsInvalidErrorWithCause("deliveryStatus",
			fmt.Errorf("%q is not a valid delivery status", name))
	}
}

// Delivery is the 1:1 companion of a delivery-mode order. It exists only
// once a driver has been assigned and records the driver-side timeline.
//
// The driver id is the capability for the depart and complete actions:
// every driver-initiated mutation is preceded by an ownership check against
// it, never interleaved with the mutation.
type Delivery struct {
	driverID    kernel.UUID
	status      DeliveryStatus
	assignedAt  time.Time
	departedAt  *time.Time
	deliveredAt *time.Time

	isConstructed bool
}

// newDelivery creates the companion at first driver assignment.
// Only the owning Order creates deliveries, so this stays unexported.
func newDelivery(driverID kernel.UUID, assignedAt time.Time) (*Delivery, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	return &Delivery{
		driverID:      driverID,
		status:        DeliveryAssigned,
		assignedAt:    assignedAt,
		isConstructed: true,
	}, nil
}

// RestoreDelivery rehydrates a delivery from persistence.
func RestoreDelivery(
	driverID kernel.UUID,
	status DeliveryStatus,
	assignedAt time.Time,
	departedAt *time.Time,
	deliveredAt *time.Time,
) (*Delivery, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Delivery{
		driverID:      driverID,
		status:        status,
		assignedAt:    assignedAt,
		departedAt:    departedAt,
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Delivery was created via a factory method.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// DriverID returns the assigned driver's identifier.
func (d *Delivery) DriverID() kernel.UUID {
	return d.driverID
}

// Status returns the driver-side status.
func (d *Delivery) Status() DeliveryStatus {
	return d.status
}

// AssignedAt returns when the current driver got the delivery.
func (d *Delivery) AssignedAt() time.Time {
	return d.assignedAt
}

// DepartedAt returns when the driver left, nil before departure.
func (d *Delivery) DepartedAt() *time.Time {
	return d.departedAt
}

// DeliveredAt returns when the order arrived, nil before completion.
func (d *Delivery) DeliveredAt() *time.Time {
	return d.deliveredAt
}

// ownedBy is the capability check executed before any driver mutation.
func (d *Delivery) ownedBy(driverID kernel.UUID) error {
	if !d.driverID.IsEqual(driverID) {
		return ErrNotAuthorizedForDelivery
	}
	return nil
}

// reassign points the delivery at a different driver and resets the
// driver-side timeline. Only valid before departure.
func (d *Delivery) reassign(driverID kernel.UUID, assignedAt time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if d.status != DeliveryAssigned {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus",
			fmt.Errorf("%s delivery cannot be reassigned", d.status))
	}

	d.driverID = driverID
	d.assignedAt = assignedAt
	return nil
}

func (d *Delivery) depart(departedAt time.Time) error {
	if d.status != DeliveryAssigned {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus",
			fmt.Errorf("%s delivery cannot depart", d.status))
	}

	d.status = DeliveryEnRoute
	d.departedAt = &departedAt
	return nil
}

func (d *Delivery) complete(deliveredAt time.Time) error {
	if d.status != DeliveryAssigned && d.status != DeliveryEnRoute {
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus",
			fmt.Errorf("%s delivery cannot be completed", d.status))
	}

	d.status = DeliveryDelivered
	d.deliveredAt = &deliveredAt
	return nil
}

func (d *Delivery) cancel() {
	d.status = DeliveryCancelled
}
