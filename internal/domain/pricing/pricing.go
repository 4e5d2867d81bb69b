package pricing

import (
	"context"
	"time"

	"homestay/internal/domain/shared/daterange"
	"homestay/internal/domain/shared/money"
)

// StayInput carries everything needed to price a stay. The caller is
// responsible for validation (positive rates, matching currencies,
// guests >= 1); the calculation itself never fails.
type StayInput struct {
	BaseNightly   money.Money
	BaseGuests    int
	ExtraGuestFee money.Money
	Periods       []PeriodPricing
	Stay          daterange.DateRange
	Guests        int
}

// NightPrice is the resolved rate for one occupied night. Period is the name
// of the period pricing that set the price, empty when the base rate applied.
type NightPrice struct {
	Date   time.Time
	Price  money.Money
	Period string
}

// Breakdown is the full result of pricing a stay.
type Breakdown struct {
	Nightly       []NightPrice
	Nights        int
	BaseTotal     money.Money
	ExtraGuests   int
	ExtraGuestFee money.Money
	NormalTotal   money.Money
	Savings       money.Money
	Total         money.Money
}

// CalculateStay prices every occupied night of a stay and sums the totals.
// It is pure: identical inputs always produce identical outputs.
//
// Per-night resolution: every period whose inclusive window covers the night
// competes; the highest nightly rate wins and supplies the reported period
// name. Ties between equally priced periods keep whichever appeared first in
// the input order. That tie-break is an arbitrary documented choice, not a
// range-precedence rule.
//
// An empty or inverted stay range (checkout on or before check-in after day
// truncation) is not an error; it yields a zero-valued breakdown.
func CalculateStay(in StayInput) Breakdown {
	currency := in.BaseNightly.Currency
	zero := money.Zero(currency)

	nights := in.Stay.NightDates()
	if len(nights) == 0 {
		return Breakdown{
			BaseTotal:     zero,
			ExtraGuestFee: zero,
			NormalTotal:   zero,
			Savings:       zero,
			Total:         zero,
		}
	}

	nightly := make([]NightPrice, 0, len(nights))
	var baseTotal int64
	for _, date := range nights {
		price, period := resolveNight(date, in.BaseNightly, in.Periods)
		baseTotal += price.Amount
		nightly = append(nightly, NightPrice{Date: date, Price: price, Period: period})
	}

	b := Breakdown{
		Nightly:       nightly,
		Nights:        len(nights),
		BaseTotal:     money.Money{Amount: baseTotal, Currency: currency},
		ExtraGuestFee: zero,
		NormalTotal:   in.BaseNightly.Multiply(int64(len(nights))),
	}
	// NormalTotal is the no-period reference cost; savings may be negative
	// when periods priced the stay above the base rate.
	b.Savings = money.Money{Amount: b.NormalTotal.Amount - b.BaseTotal.Amount, Currency: currency}

	// BaseGuests == 0 is a sentinel: the surcharge never applies no matter
	// how many guests stay.
	if in.BaseGuests > 0 && in.Guests > in.BaseGuests {
		b.ExtraGuests = in.Guests - in.BaseGuests
		b.ExtraGuestFee = money.Money{
			Amount:   in.ExtraGuestFee.Amount * int64(b.ExtraGuests) * int64(b.Nights),
			Currency: currency,
		}
	}

	b.Total = money.Money{Amount: b.BaseTotal.Amount + b.ExtraGuestFee.Amount, Currency: currency}
	return b
}

func resolveNight(date time.Time, base money.Money, periods []PeriodPricing) (money.Money, string) {
	price := base
	name := ""
	matched := false
	for _, p := range periods {
		if !p.Covers(date) {
			continue
		}
		if !matched || p.Nightly.GreaterThan(price) {
			price = p.Nightly
			name = p.Name
			matched = true
		}
	}
	return price, name
}

// HasVariation reports whether the nightly rate changes across the stay.
// False for zero or one night. Drives display decisions only.
func (b Breakdown) HasVariation() bool {
	if len(b.Nightly) < 2 {
		return false
	}
	first := b.Nightly[0].Price.Amount
	for _, n := range b.Nightly[1:] {
		if n.Price.Amount != first {
			return true
		}
	}
	return false
}

// Calculator is the port the application layer quotes stays through.
type Calculator interface {
	Quote(ctx context.Context, input StayInput) (Breakdown, error)
}

// StayCalculator is the default Calculator backed by CalculateStay.
type StayCalculator struct{}

func (StayCalculator) Quote(_ context.Context, input StayInput) (Breakdown, error) {
	return CalculateStay(input), nil
}

var _ Calculator = StayCalculator{}
