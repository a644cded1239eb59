package payment

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountFromPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  int64
	}{
		{19.99, 1999},
		{0.29, 29},
		{1, 100},
		{100.5, 10050},
	}
	for _, tt := range tests {
		got, err := AmountFromPrice(tt.price)
		require.NoError(t, err, tt.price)
		assert.Equal(t, tt.want, got, tt.price)
	}
}

func TestAmountFromPrice_Invalid(t *testing.T) {
	for _, p := range []float64{0, -5, 0.001, math.NaN(), math.Inf(1)} {
		_, err := AmountFromPrice(p)
		assert.ErrorIs(t, err, ErrInvalidAmount, p)
	}
}

func TestNormalizeCurrency(t *testing.T) {
	assert.Equal(t, "usd", NormalizeCurrency(""))
	assert.Equal(t, "eur", NormalizeCurrency(" EUR "))
}

func TestNewStripe_RequiresKey(t *testing.T) {
	_, err := NewStripe("")
	assert.ErrorIs(t, err, ErrNotConfigured)

	p, err := NewStripe("sk_test_123")
	require.NoError(t, err)
	_, err = p.CreateIntent(context.Background(), 0, "usd")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.CreateIntent(context.Background(), 100, "usd")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
