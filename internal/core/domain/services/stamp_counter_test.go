package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
)

func testItem(t *testing.T, category string, price float64, quantity int, kind order.ItemKind) order.Item {
	t.Helper()
	unitPrice := money(t, price)
	if kind != order.ItemPaid {
		unitPrice = kernel.ZeroMoney()
	}
	item, err := order.NewItem(kernel.NewUUID(), "Item", category, unitPrice, quantity, "", kind)
	require.NoError(t, err)
	return item
}

func Test_StampCounter_OneStampPerPaidStampCategoryUnit(t *testing.T) {
	// Arrange
	items := []order.Item{
		testItem(t, "pizza", 9.50, 3, order.ItemPaid),
		testItem(t, "drink", 2.50, 2, order.ItemPaid),
	}

	// Act
	stamps := NewStampCounter().Count(items, testLoyalty())

	// Assert
	assert.Equal(t, 3, stamps)
}

func Test_StampCounter_CategoryMatchIsCaseInsensitive(t *testing.T) {
	// Arrange
	items := []order.Item{testItem(t, "Pizza", 9.50, 2, order.ItemPaid)}

	// Act
	stamps := NewStampCounter().Count(items, testLoyalty())

	// Assert
	assert.Equal(t, 2, stamps)
}

func Test_StampCounter_RewardAndPromoLinesEarnNothing(t *testing.T) {
	// Arrange
	items := []order.Item{
		testItem(t, "pizza", 9.50, 1, order.ItemPaid),
		testItem(t, "pizza", 0, 2, order.ItemReward),
		testItem(t, "pizza", 0, 1, order.ItemPromoFree),
	}

	// Act
	stamps := NewStampCounter().Count(items, testLoyalty())

	// Assert
	assert.Equal(t, 1, stamps)
}

func Test_StampCounter_ZeroPricedPaidLineEarnsNothing(t *testing.T) {
	// Arrange: a paid line whose catalog price is zero (e.g. a giveaway
	// product) does not feed the loyalty card.
	items := []order.Item{
		testItem(t, "pizza", 0, 2, order.ItemPaid),
		testItem(t, "pizza", 9.50, 1, order.ItemPaid),
	}

	// Act
	stamps := NewStampCounter().Count(items, testLoyalty())

	// Assert
	assert.Equal(t, 1, stamps)
}

func Test_StampCounter_NoItemsEarnNothing(t *testing.T) {
	assert.Equal(t, 0, NewStampCounter().Count(nil, testLoyalty()))
}
