package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/kernel"
)

func TestNewGetOrderTrackingQuery(t *testing.T) {
	orderID := kernel.NewUUID()

	query, err := queries.NewGetOrderTrackingQuery(orderID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.OrderID().IsEqual(orderID))
}

func TestNewGetOrderTrackingQuery_InvalidID(t *testing.T) {
	_, err := queries.NewGetOrderTrackingQuery(kernel.UUID{})

	require.Error(t, err)
}

func TestGetOrderTrackingQuery_NotConstructed(t *testing.T) {
	var query queries.GetOrderTrackingQuery

	require.ErrorIs(t, query.Validate(), queries.ErrGetOrderTrackingQueryIsNotConstructed)
}

func TestNewGetOrderDetailQuery(t *testing.T) {
	orderID := kernel.NewUUID()

	query, err := queries.NewGetOrderDetailQuery(orderID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.OrderID().IsEqual(orderID))
}

func TestGetOrderDetailQuery_NotConstructed(t *testing.T) {
	var query queries.GetOrderDetailQuery

	require.ErrorIs(t, query.Validate(), queries.ErrGetOrderDetailQueryIsNotConstructed)
}

func TestNewGetServiceStatusQuery(t *testing.T) {
	require.NoError(t, queries.NewGetServiceStatusQuery().Validate())
}

func TestGetServiceStatusQuery_NotConstructed(t *testing.T) {
	var query queries.GetServiceStatusQuery

	require.ErrorIs(t, query.Validate(), queries.ErrGetServiceStatusQueryIsNotConstructed)
}

func TestNewGetServiceHistoryQuery(t *testing.T) {
	require.NoError(t, queries.NewGetServiceHistoryQuery().Validate())
}

func TestGetServiceHistoryQuery_NotConstructed(t *testing.T) {
	var query queries.GetServiceHistoryQuery

	require.ErrorIs(t, query.Validate(), queries.ErrGetServiceHistoryQueryIsNotConstructed)
}
