// Package serviceperiod contains the ServicePeriod aggregate: the bounded
// business-day window during which orders are live and aggregated.
//
// At most one period is open at any time. That invariant is owned by the
// open-service use case (transactional read) with a partial unique index in
// the persistence layer as a backstop; the aggregate itself only guards its
// own open → closed lifecycle.
package serviceperiod

import (
	"errors"
	"fmt"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

// ErrServicePeriodIsNotConstructed is returned when a ServicePeriod was not
// created through a factory method.
var ErrServicePeriodIsNotConstructed = errors.New("ServicePeriod must be created via OpenServicePeriod or RestoreServicePeriod")

// ErrServiceAlreadyOpen is returned when opening a period while another
// one is still open. At most one period may be open at any time.
var ErrServiceAlreadyOpen = errors.New("a service period is already open")

// ErrNoServiceOpen is returned when closing a period while none is open.
var ErrNoServiceOpen = errors.New("no service period is open")

// Status represents the lifecycle state of a service period.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusOpen means orders are live and aggregated into this period.
	StatusOpen

	// StatusClosed means the period ended; its stats are frozen.
	StatusClosed
)

// StatusFromString parses a wire-format status name.
func StatusFromString(s string) (Status, error) {
	switch s {
	case "open":
		return StatusOpen, nil
	case "closed":
		return StatusClosed, nil
	default:
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%q is not a recognized service status", s),
		)
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s != StatusOpen && s != StatusClosed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid service status", s))
	}
	return nil
}

// String returns the wire-format name of the status.
func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ClosingStats is the snapshot frozen onto a period at close, computed over
// the period's non-cancelled, non-not_delivered orders.
type ClosingStats struct {
	OrderCount    int
	TotalRevenue  kernel.Money
	AverageTicket kernel.Money
	TopItem       string
}

// NewClosingStats derives the snapshot from count, revenue and top-selling
// item; the average ticket is computed here, not supplied.
func NewClosingStats(orderCount int, totalRevenue kernel.Money, topItem string) (ClosingStats, error) {
	if orderCount < 0 {
		return ClosingStats{}, errs.NewValueIsInvalidErrorWithCause("orderCount",
			fmt.Errorf("%d is negative", orderCount))
	}

	return ClosingStats{
		OrderCount:    orderCount,
		TotalRevenue:  totalRevenue,
		AverageTicket: totalRevenue.DivInt(orderCount),
		TopItem:       topItem,
	}, nil
}

// ServicePeriod is the aggregate root for one open/closed business window.
//
// Lifecycle: created open with a start time, closed exactly once with an
// end time and a ClosingStats snapshot. Once closed it is read-only.
type ServicePeriod struct {
	id        kernel.UUID
	status    Status
	startTime time.Time
	endTime   *time.Time
	stats     ClosingStats

	isConstructed bool
}

// OpenServicePeriod creates a new open period starting now.
func OpenServicePeriod(id kernel.UUID, startTime time.Time) (*ServicePeriod, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &ServicePeriod{
		id:            id,
		status:        StatusOpen,
		startTime:     startTime,
		isConstructed: true,
	}, nil
}

// RestoreServicePeriod rehydrates a period from persistence.
func RestoreServicePeriod(
	id kernel.UUID,
	status Status,
	startTime time.Time,
	endTime *time.Time,
	stats ClosingStats,
) (*ServicePeriod, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &ServicePeriod{
		id:            id,
		status:        status,
		startTime:     startTime,
		endTime:       endTime,
		stats:         stats,
		isConstructed: true,
	}, nil
}

// Validate ensures the ServicePeriod was created via a factory method.
func (p *ServicePeriod) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrServicePeriodIsNotConstructed
	}
	return nil
}

// ID returns the period's unique identifier.
func (p *ServicePeriod) ID() kernel.UUID {
	return p.id
}

// Status returns open or closed.
func (p *ServicePeriod) Status() Status {
	return p.status
}

// IsOpen reports whether orders are currently live in this period.
func (p *ServicePeriod) IsOpen() bool {
	return p.status == StatusOpen
}

// StartTime returns when the period opened.
func (p *ServicePeriod) StartTime() time.Time {
	return p.startTime
}

// EndTime returns when the period closed, nil while open.
func (p *ServicePeriod) EndTime() *time.Time {
	return p.endTime
}

// Stats returns the closing snapshot; meaningful only once closed.
func (p *ServicePeriod) Stats() ClosingStats {
	return p.stats
}

// Close freezes the final stats onto the period and stamps the end time.
// A closed period cannot be closed again.
func (p *ServicePeriod) Close(stats ClosingStats, endTime time.Time) error {
	if p.status != StatusOpen {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s service period cannot be closed", p.status))
	}

	p.status = StatusClosed
	p.stats = stats
	p.endTime = &endTime
	return nil
}
