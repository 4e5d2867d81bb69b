package listings

import (
	"context"
	"strings"

	"homestay/internal/app/dto"
	handlersupport "homestay/internal/app/handlers/support"
	"homestay/internal/app/queries"
	"homestay/internal/app/uow"
	domainlistings "homestay/internal/domain/listings"
)

const listPeriodsKey = "host.listings.list_periods"

type ListPeriodPricingsQuery struct {
	HostID    string
	ListingID string
}

func (q ListPeriodPricingsQuery) Key() string { return listPeriodsKey }

type ListPeriodPricingsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListPeriodPricingsHandler) Handle(ctx context.Context, q ListPeriodPricingsQuery) (dto.PeriodPricingList, error) {
	var zero dto.PeriodPricingList
	if strings.TrimSpace(q.HostID) == "" {
		return zero, ErrHostIDRequired
	}
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
	if !listing.OwnedBy(domainlistings.HostID(q.HostID)) {
		return zero, domainlistings.ErrListingNotOwned
	}

	return dto.MapPeriodPricingList(listing), nil
}

var _ queries.Handler[ListPeriodPricingsQuery, dto.PeriodPricingList] = (*ListPeriodPricingsHandler)(nil)
