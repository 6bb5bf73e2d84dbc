package queries

import (
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/guard"
)

var ErrGetServiceHistoryQueryIsNotConstructed = errors.New(
	"GetServiceHistoryQuery must be created via NewGetServiceHistoryQuery constructor",
)

// GetServiceHistoryQuery retrieves past service periods with their frozen
// closing stats, newest first.
type GetServiceHistoryQuery struct {
	guard guard.ConstructorGuard
}

// NewGetServiceHistoryQuery creates a query for closed service periods.
func NewGetServiceHistoryQuery() GetServiceHistoryQuery {
	return GetServiceHistoryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetServiceHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetServiceHistoryQueryIsNotConstructed)
}

// GetServiceHistoryQueryResponse is one closed period in the history
// read model. The stats are the snapshot frozen at close time; they are
// never recomputed.
type GetServiceHistoryQueryResponse struct {
	ID            kernel.UUID
	StartTime     time.Time
	EndTime       time.Time
	OrderCount    int
	TotalRevenue  kernel.Money
	AverageTicket kernel.Money
	TopItem       string
}
