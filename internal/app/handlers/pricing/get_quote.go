package pricing

import (
	"context"
	"errors"
	"strings"
	"time"

	"homestay/internal/app/dto"
	handlersupport "homestay/internal/app/handlers/support"
	"homestay/internal/app/queries"
	"homestay/internal/app/uow"
	domainlistings "homestay/internal/domain/listings"
	"homestay/internal/domain/shared/daterange"
)

const getQuoteKey = "pricing.quote"

var (
	ErrListingIDRequired = errors.New("pricing: listing id is required")
	ErrGuestsRequired    = errors.New("pricing: guests must be at least one")
	ErrGuestsLimit       = errors.New("pricing: guests exceed the listing limit")
)

// GetQuoteQuery prices a stay on a listing. An empty or inverted date range
// is not rejected; it produces a zero-valued breakdown.
type GetQuoteQuery struct {
	ListingID string
	CheckIn   time.Time
	CheckOut  time.Time
	Guests    int
}

func (q GetQuoteQuery) Key() string { return getQuoteKey }

type GetQuoteHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetQuoteHandler) Handle(ctx context.Context, q GetQuoteQuery) (dto.PriceBreakdown, error) {
	var zero dto.PriceBreakdown
	if strings.TrimSpace(q.ListingID) == "" {
		return zero, ErrListingIDRequired
	}
	if q.Guests < 1 {
		return zero, ErrGuestsRequired
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
	if q.Guests > listing.GuestsLimit {
		return zero, ErrGuestsLimit
	}

	stay := daterange.DateRange{CheckIn: q.CheckIn, CheckOut: q.CheckOut}
	breakdown, err := unit.Pricing().Quote(execCtx, listing.StayInput(stay, q.Guests))
	if err != nil {
		return zero, err
	}

	return dto.MapBreakdown(string(listing.ID), breakdown), nil
}

var _ queries.Handler[GetQuoteQuery, dto.PriceBreakdown] = (*GetQuoteHandler)(nil)
