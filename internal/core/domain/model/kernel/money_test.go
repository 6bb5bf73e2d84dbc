package kernel_test

import (
	"testing"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("accepts_non_negative_amounts", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.NewFromFloat(11.50))

		require.NoError(t, err)
		assert.Equal(t, "11.50", m.String())
	})

	t.Run("rejects_negative_amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromFloat(-0.01))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_is_zero_amount", func(t *testing.T) {
		var m kernel.Money
		assert.True(t, m.IsZero())
		assert.Equal(t, "0.00", m.String())
	})
}

func TestNewMoneyFromFloat(t *testing.T) {
	t.Run("rounds_to_cents", func(t *testing.T) {
		m, err := kernel.NewMoneyFromFloat(9.999)

		require.NoError(t, err)
		assert.Equal(t, "10.00", m.String())
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	eleven, _ := kernel.NewMoneyFromFloat(11.00)
	three, _ := kernel.NewMoneyFromFloat(3.00)

	t.Run("add", func(t *testing.T) {
		assert.Equal(t, "14.00", eleven.Add(three).String())
	})

	t.Run("mul_int", func(t *testing.T) {
		assert.Equal(t, "22.00", eleven.MulInt(2).String())
	})

	t.Run("comparisons", func(t *testing.T) {
		assert.True(t, eleven.GreaterThanOrEqual(three))
		assert.True(t, eleven.GreaterThanOrEqual(eleven))
		assert.True(t, three.LessThan(eleven))
		assert.False(t, eleven.LessThan(three))
	})

	t.Run("is_equal_ignores_scale", func(t *testing.T) {
		a, _ := kernel.NewMoney(decimal.NewFromFloat(5))
		b, _ := kernel.NewMoney(decimal.NewFromFloat(5.00))
		assert.True(t, a.IsEqual(b))
	})
}
