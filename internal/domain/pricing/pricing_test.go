package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homestay/internal/domain/pricing"
	"homestay/internal/domain/shared/daterange"
	"homestay/internal/domain/shared/money"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func usd(amount int64) money.Money {
	return money.Must(amount, "USD")
}

func period(t *testing.T, name string, start, end time.Time, nightly int64) pricing.PeriodPricing {
	t.Helper()
	p, err := pricing.NewPeriodPricing(name, start, end, usd(nightly))
	require.NoError(t, err)
	return p
}

func TestCalculateStay(t *testing.T) {
	t.Run("base rate only", func(t *testing.T) {
		b := pricing.CalculateStay(pricing.StayInput{
			BaseNightly: usd(100),
			BaseGuests:  2,
			Stay:        daterange.DateRange{CheckIn: day(2026, 6, 1), CheckOut: day(2026, 6, 4)},
			Guests:      2,
		})

		assert.Equal(t, 3, b.Nights)
		assert.Equal(t, int64(300), b.BaseTotal.Amount)
		assert.Equal(t, int64(300), b.NormalTotal.Amount)
		assert.Equal(t, int64(0), b.Savings.Amount)
		assert.Equal(t, int64(300), b.Total.Amount)
		require.Len(t, b.Nightly, 3)
		for _, n := range b.Nightly {
			assert.Equal(t, int64(100), n.Price.Amount)
			assert.Empty(t, n.Period)
		}
	})

	t.Run("checkout night is not charged", func(t *testing.T) {
		b := pricing.CalculateStay(pricing.StayInput{
			BaseNightly: usd(100),
			Stay:        daterange.DateRange{CheckIn: day(2026, 6, 1), CheckOut: day(2026, 6, 2)},
			Guests:      1,
		})

		require.Len(t, b.Nightly, 1)
		assert.True(t, b.Nightly[0].Date.Equal(day(2026, 6, 1)))
	})

	t.Run("period window is inclusive on both ends", func(t *testing.T) {
		// A one-week stay where a discount covers the nights of the 7th and
		// 8th inclusive. Five nights total, two of them discounted.
		b := pricing.CalculateStay(pricing.StayInput{
			BaseNightly: usd(200),
			BaseGuests:  4,
			Periods: []pricing.PeriodPricing{
				period(t, "Weekend Special", day(2026, 6, 7), day(2026, 6, 8), 180),
			},
			Stay:   daterange.DateRange{CheckIn: day(2026, 6, 5), CheckOut: day(2026, 6, 10)},
			Guests: 2,
		})

		assert.Equal(t, 5, b.Nights)
		assert.Equal(t, int64(960), b.BaseTotal.Amount)
		assert.Equal(t, int64(1000), b.NormalTotal.Amount)
		assert.Equal(t, int64(40), b.Savings.Amount)
		assert.Equal(t, int64(960), b.Total.Amount)

		byDate := map[string]pricing.NightPrice{}
		for _, n := range b.Nightly {
			byDate[n.Date.Format("2006-01-02")] = n
		}
		assert.Equal(t, "", byDate["2026-06-05"].Period)
		assert.Equal(t, "Weekend Special", byDate["2026-06-07"].Period)
		assert.Equal(t, "Weekend Special", byDate["2026-06-08"].Period)
		assert.Equal(t, "", byDate["2026-06-09"].Period)
	})

	t.Run("single day period covers exactly one night", func(t *testing.T) {
		b := pricing.CalculateStay(pricing.StayInput{
			BaseNightly: usd(100),
			Periods: []pricing.PeriodPricing{
				period(t, "New Year", day(2026, 12, 31), day(2026, 12, 31), 400),
			},
			Stay:   daterange.DateRange{CheckIn: day(2026, 12, 30), CheckOut: day(2027, 1, 2)},
			Guests: 1,
		})

		assert.Equal(t, int64(100+400+100), b.BaseTotal.Amount)
	})

	t.Run("highest rate wins on overlap", func(t *testing.T) {
		b := pricing.CalculateStay(pricing.StayInput{
			BaseNightly: usd(100),
			Periods: []pricing.PeriodPricing{
				period(t, "Long Discount", day(2026, 7, 1), day(2026, 7, 31), 80),
				period(t, "Festival", day(2026, 7, 10), day(2026, 7, 12), 250),
			},
			Stay:   daterange.DateRange{CheckIn: day(2026, 7, 9), CheckOut: day(2026, 7, 12)},
			Guests: 1,
		})

		require.Len(t, b.Nightly, 3)
		assert.Equal(t, "Long Discount", b.Nightly[0].Period)
		assert.Equal(t, int64(80), b.Nightly[0].Price.Amount)
		assert.Equal(t, "Festival", b.Nightly[1].Period)
		assert.Equal(t, int64(250), b.Nightly[1].Price.Amount)
		assert.Equal(t, "Festival", b.Nightly[2].Period)
	})

	t.Run("equal rates keep the first period", func(t *testing.T) {
		b := pricing.CalculateStay(pricing.StayInput{
			BaseNightly: usd(100),
			Periods: []pricing.PeriodPricing{
				period(t, "First", day(2026, 7, 1), day(2026, 7, 5), 150),
				period(t, "Second", day(2026, 7, 1), day(2026, 7, 5), 150),
			},
			Stay:   daterange.DateRange{CheckIn: day(2026, 7, 2), CheckOut: day(2026, 7, 3)},
			Guests: 1,
		})

		require.Len(t, b.Nightly, 1)
		assert.Equal(t, "First", b.Nightly[0].Period)
	})

	t.Run("period pricier than base yields negative savings", func(t *testing.T) {
		b := pricing.CalculateStay(pricing.StayInput{
			BaseNightly: usd(100),
			Periods: []pricing.PeriodPricing{
				period(t, "High Season", day(2026, 8, 1), day(2026, 8, 31), 160),
			},
			Stay:   daterange.DateRange{CheckIn: day(2026, 8, 10), CheckOut: day(2026, 8, 12)},
			Guests: 1,
		})

		assert.Equal(t, int64(320), b.BaseTotal.Amount)
		assert.Equal(t, int64(200), b.NormalTotal.Amount)
		assert.Equal(t, int64(-120), b.Savings.Amount)
	})

	t.Run("extra guest fee", func(t *testing.T) {
		b := pricing.CalculateStay(pricing.StayInput{
			BaseNightly:   usd(100),
			BaseGuests:    2,
			ExtraGuestFee: usd(20),
			Stay:          daterange.DateRange{CheckIn: day(2026, 6, 1), CheckOut: day(2026, 6, 4)},
			Guests:        4,
		})

		assert.Equal(t, 2, b.ExtraGuests)
		assert.Equal(t, int64(20*2*3), b.ExtraGuestFee.Amount)
		assert.Equal(t, int64(300+120), b.Total.Amount)
	})

	t.Run("guests within base count pay no fee", func(t *testing.T) {
		b := pricing.CalculateStay(pricing.StayInput{
			BaseNightly:   usd(100),
			BaseGuests:    4,
			ExtraGuestFee: usd(20),
			Stay:          daterange.DateRange{CheckIn: day(2026, 6, 1), CheckOut: day(2026, 6, 3)},
			Guests:        4,
		})

		assert.Equal(t, 0, b.ExtraGuests)
		assert.Equal(t, int64(0), b.ExtraGuestFee.Amount)
		assert.Equal(t, b.BaseTotal.Amount, b.Total.Amount)
	})

	t.Run("zero base guests disables the fee entirely", func(t *testing.T) {
		b := pricing.CalculateStay(pricing.StayInput{
			BaseNightly:   usd(100),
			BaseGuests:    0,
			ExtraGuestFee: usd(50),
			Stay:          daterange.DateRange{CheckIn: day(2026, 6, 1), CheckOut: day(2026, 6, 3)},
			Guests:        10,
		})

		assert.Equal(t, 0, b.ExtraGuests)
		assert.Equal(t, int64(0), b.ExtraGuestFee.Amount)
		assert.Equal(t, int64(200), b.Total.Amount)
	})

	t.Run("surcharge does not count toward savings", func(t *testing.T) {
		b := pricing.CalculateStay(pricing.StayInput{
			BaseNightly:   usd(200),
			BaseGuests:    2,
			ExtraGuestFee: usd(30),
			Periods: []pricing.PeriodPricing{
				period(t, "Promo", day(2026, 6, 1), day(2026, 6, 30), 150),
			},
			Stay:   daterange.DateRange{CheckIn: day(2026, 6, 10), CheckOut: day(2026, 6, 12)},
			Guests: 3,
		})

		// Savings compare nightly totals only; the guest surcharge sits on top.
		assert.Equal(t, int64(300), b.BaseTotal.Amount)
		assert.Equal(t, int64(400), b.NormalTotal.Amount)
		assert.Equal(t, int64(100), b.Savings.Amount)
		assert.Equal(t, int64(300+60), b.Total.Amount)
	})

	t.Run("inverted range yields an empty breakdown", func(t *testing.T) {
		for name, stay := range map[string]daterange.DateRange{
			"checkout before checkin": {CheckIn: day(2026, 6, 10), CheckOut: day(2026, 6, 5)},
			"same day":                {CheckIn: day(2026, 6, 10), CheckOut: day(2026, 6, 10)},
		} {
			t.Run(name, func(t *testing.T) {
				b := pricing.CalculateStay(pricing.StayInput{
					BaseNightly:   usd(100),
					BaseGuests:    2,
					ExtraGuestFee: usd(20),
					Stay:          stay,
					Guests:        5,
				})

				assert.Zero(t, b.Nights)
				assert.Empty(t, b.Nightly)
				assert.Zero(t, b.ExtraGuests)
				assert.Equal(t, int64(0), b.BaseTotal.Amount)
				assert.Equal(t, int64(0), b.Total.Amount)
				assert.Equal(t, "USD", b.Total.Currency)
			})
		}
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		in := pricing.StayInput{
			BaseNightly:   usd(120),
			BaseGuests:    2,
			ExtraGuestFee: usd(15),
			Periods: []pricing.PeriodPricing{
				period(t, "High Season", day(2026, 7, 1), day(2026, 8, 31), 260),
			},
			Stay:   daterange.DateRange{CheckIn: day(2026, 6, 28), CheckOut: day(2026, 7, 3)},
			Guests: 3,
		}

		first := pricing.CalculateStay(in)
		second := pricing.CalculateStay(in)
		assert.Equal(t, first, second)
	})
}

func TestBreakdownHasVariation(t *testing.T) {
	t.Run("flat rate", func(t *testing.T) {
		b := pricing.CalculateStay(pricing.StayInput{
			BaseNightly: usd(100),
			Stay:        daterange.DateRange{CheckIn: day(2026, 6, 1), CheckOut: day(2026, 6, 5)},
			Guests:      1,
		})
		assert.False(t, b.HasVariation())
	})

	t.Run("rate changes mid stay", func(t *testing.T) {
		b := pricing.CalculateStay(pricing.StayInput{
			BaseNightly: usd(100),
			Periods: []pricing.PeriodPricing{
				period(t, "Festival", day(2026, 6, 3), day(2026, 6, 4), 300),
			},
			Stay:   daterange.DateRange{CheckIn: day(2026, 6, 1), CheckOut: day(2026, 6, 5)},
			Guests: 1,
		})
		assert.True(t, b.HasVariation())
	})

	t.Run("single night never varies", func(t *testing.T) {
		b := pricing.CalculateStay(pricing.StayInput{
			BaseNightly: usd(100),
			Stay:        daterange.DateRange{CheckIn: day(2026, 6, 1), CheckOut: day(2026, 6, 2)},
			Guests:      1,
		})
		assert.False(t, b.HasVariation())
	})

	t.Run("empty stay never varies", func(t *testing.T) {
		b := pricing.CalculateStay(pricing.StayInput{
			BaseNightly: usd(100),
			Stay:        daterange.DateRange{CheckIn: day(2026, 6, 2), CheckOut: day(2026, 6, 1)},
			Guests:      1,
		})
		assert.False(t, b.HasVariation())
	})

	t.Run("same override price as base does not vary", func(t *testing.T) {
		b := pricing.CalculateStay(pricing.StayInput{
			BaseNightly: usd(100),
			Periods: []pricing.PeriodPricing{
				period(t, "Same Price", day(2026, 6, 2), day(2026, 6, 3), 100),
			},
			Stay:   daterange.DateRange{CheckIn: day(2026, 6, 1), CheckOut: day(2026, 6, 5)},
			Guests: 1,
		})
		assert.False(t, b.HasVariation())
	})
}
