package pricing

import (
	"errors"
	"strings"
	"time"

	"homestay/internal/domain/shared/daterange"
	"homestay/internal/domain/shared/money"
)

var (
	ErrPeriodNameRequired = errors.New("pricing: period name is required")
	ErrPeriodWindow       = errors.New("pricing: period end must not precede start")
	ErrPeriodRate         = errors.New("pricing: period nightly rate must be positive")
)

// PeriodPricing replaces the default nightly rate inside an inclusive date
// window. Unlike a stay range, both Start and End count as priced nights:
// a period with Start == End covers exactly one night. Periods owned by the
// same listing may overlap freely; conflicts are resolved at calculation
// time, not stored as an invariant.
type PeriodPricing struct {
	Name    string
	Start   time.Time
	End     time.Time
	Nightly money.Money
}

func NewPeriodPricing(name string, start, end time.Time, nightly money.Money) (PeriodPricing, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return PeriodPricing{}, ErrPeriodNameRequired
	}
	start = daterange.DayOf(start)
	end = daterange.DayOf(end)
	if end.Before(start) {
		return PeriodPricing{}, ErrPeriodWindow
	}
	if nightly.Amount <= 0 {
		return PeriodPricing{}, ErrPeriodRate
	}
	return PeriodPricing{Name: name, Start: start, End: end, Nightly: nightly}, nil
}

// Covers reports whether the given night falls inside the period window.
// The test is inclusive on both ends; checkout-exclusive stay logic must
// not leak into the period's own range.
func (p PeriodPricing) Covers(night time.Time) bool {
	night = daterange.DayOf(night)
	return !night.Before(daterange.DayOf(p.Start)) && !night.After(daterange.DayOf(p.End))
}
