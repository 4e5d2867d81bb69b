package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homestay/internal/domain/shared/money"
)

func TestNew(t *testing.T) {
	m, err := money.New(1500, "usd")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), m.Amount)
	assert.Equal(t, "USD", m.Currency)

	_, err = money.New(100, "dollars")
	assert.ErrorIs(t, err, money.ErrInvalidCurrency)

	_, err = money.New(100, "")
	assert.ErrorIs(t, err, money.ErrInvalidCurrency)
}

func TestArithmetic(t *testing.T) {
	a := money.Must(1000, "USD")
	b := money.Must(250, "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(1250), sum.Amount)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, int64(750), diff.Amount)

	assert.Equal(t, int64(3000), a.Multiply(3).Amount)
	assert.Equal(t, int64(-1000), a.Neg().Amount)
	assert.True(t, a.GreaterThan(b))
	assert.False(t, b.GreaterThan(a))
	assert.True(t, money.Zero("USD").IsZero())
}

func TestCurrencyMismatch(t *testing.T) {
	usd := money.Must(100, "USD")
	eur := money.Must(100, "EUR")

	_, err := usd.Add(eur)
	assert.ErrorIs(t, err, money.ErrCurrencyMismatch)

	_, err = usd.Sub(eur)
	assert.ErrorIs(t, err, money.ErrCurrencyMismatch)
}

func TestString(t *testing.T) {
	assert.Equal(t, "12.50 USD", money.Must(1250, "USD").String())
	assert.Equal(t, "0.05 EUR", money.Must(5, "EUR").String())
}
