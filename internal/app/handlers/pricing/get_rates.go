package pricing

import (
	"context"
	"strings"
	"time"

	"homestay/internal/app/dto"
	handlersupport "homestay/internal/app/handlers/support"
	"homestay/internal/app/queries"
	"homestay/internal/app/uow"
	domainlistings "homestay/internal/domain/listings"
	"homestay/internal/domain/shared/daterange"
)

const getRatesKey = "pricing.rates"

const defaultRateWindowDays = 30

// GetRatesQuery resolves the nightly rate for every night in [From, To),
// the per-night view a host's rate calendar renders.
type GetRatesQuery struct {
	ListingID string
	From      time.Time
	To        time.Time
}

func (q GetRatesQuery) Key() string { return getRatesKey }

type GetRatesHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetRatesHandler) Handle(ctx context.Context, q GetRatesQuery) (dto.RateCalendar, error) {
	var zero dto.RateCalendar
	if strings.TrimSpace(q.ListingID) == "" {
		return zero, ErrListingIDRequired
	}

	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return zero, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	listing, err := unit.Listings().ByID(execCtx, domainlistings.ListingID(q.ListingID))
	if err != nil {
		return zero, err
	}

	from := q.From
	to := q.To
	if from.IsZero() {
		from = daterange.DayOf(time.Now())
	}
	if to.IsZero() || !to.After(from) {
		to = from.AddDate(0, 0, defaultRateWindowDays)
	}

	window := daterange.DateRange{CheckIn: from, CheckOut: to}
	breakdown, err := unit.Pricing().Quote(execCtx, listing.StayInput(window, 1))
	if err != nil {
		return zero, err
	}

	return dto.MapRateCalendar(string(listing.ID), daterange.DayOf(from), daterange.DayOf(to), breakdown), nil
}

var _ queries.Handler[GetRatesQuery, dto.RateCalendar] = (*GetRatesHandler)(nil)
