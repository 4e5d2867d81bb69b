package daterange

import (
	"errors"
	"time"
)

var ErrInvertedRange = errors.New("daterange: check-out must be after check-in")

// DayOf truncates a timestamp to midnight UTC. All stay and period
// arithmetic works on these truncated calendar days, so callers can pass
// timestamps in any zone and still get whole-night behaviour.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange is a half-open stay interval: the guest occupies every night
// from CheckIn up to but not including CheckOut. The checkout day itself
// is never charged.
type DateRange struct {
	CheckIn  time.Time `json:"check_in" bson:"check_in"`
	CheckOut time.Time `json:"check_out" bson:"check_out"`
}

// New builds a validated range, rejecting stays without at least one night.
func New(checkIn, checkOut time.Time) (DateRange, error) {
	r := DateRange{CheckIn: DayOf(checkIn), CheckOut: DayOf(checkOut)}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

func (r DateRange) Validate() error {
	if !DayOf(r.CheckOut).After(DayOf(r.CheckIn)) {
		return ErrInvertedRange
	}
	return nil
}

// Nights counts the occupied nights. Zero for empty or inverted ranges.
func (r DateRange) Nights() int {
	start := DayOf(r.CheckIn)
	end := DayOf(r.CheckOut)
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}

// NightDates enumerates each occupied night as a truncated day, in order.
// Returns nil when the range holds no nights.
func (r DateRange) NightDates() []time.Time {
	n := r.Nights()
	if n == 0 {
		return nil
	}
	dates := make([]time.Time, 0, n)
	day := DayOf(r.CheckIn)
	for i := 0; i < n; i++ {
		dates = append(dates, day)
		day = day.AddDate(0, 0, 1)
	}
	return dates
}

// Overlaps reports whether two half-open ranges share at least one night.
func (r DateRange) Overlaps(other DateRange) bool {
	return DayOf(r.CheckIn).Before(DayOf(other.CheckOut)) &&
		DayOf(other.CheckIn).Before(DayOf(r.CheckOut))
}
