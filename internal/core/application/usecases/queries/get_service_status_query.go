package queries

import (
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrGetServiceStatusQueryIsNotConstructed = errors.New(
	"GetServiceStatusQuery must be created via NewGetServiceStatusQuery constructor",
)

// GetServiceStatusQuery retrieves the live view of the current service
// period: whether one is open and its running totals.
type GetServiceStatusQuery struct {
	guard guard.ConstructorGuard
}

// NewGetServiceStatusQuery creates a query for the current service status.
func NewGetServiceStatusQuery() GetServiceStatusQuery {
	return GetServiceStatusQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetServiceStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetServiceStatusQueryIsNotConstructed)
}

// GetServiceStatusQueryResponse is the live service read model.
// The counters cover the open period's fulfilled orders so far; cancelled
// and not-delivered orders are excluded. All fields except IsOpen are
// zero when no period is open.
type GetServiceStatusQueryResponse struct {
	IsOpen       bool
	ServiceID    kernel.UUID
	StartTime    time.Time
	OrderCount   int
	TotalRevenue kernel.Money
}
