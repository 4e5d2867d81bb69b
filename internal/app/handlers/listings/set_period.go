package listings

import (
	"context"
	"errors"
	"strings"
	"time"

	"homestay/internal/app/commands"
	"homestay/internal/app/dto"
	"homestay/internal/app/outbox"
	"homestay/internal/app/uow"
	domainlistings "homestay/internal/domain/listings"
	domainpricing "homestay/internal/domain/pricing"
	"homestay/internal/domain/shared/money"
)

const setPeriodKey = "host.listings.set_period"

var (
	ErrHostIDRequired    = errors.New("listings: host id is required")
	ErrListingIDRequired = errors.New("listings: listing id is required")
	ErrUnitOfWorkNeeded  = errors.New("listings: unit of work required")
)

// SetPeriodPricingCommand upserts a named period pricing on a host's listing.
type SetPeriodPricingCommand struct {
	HostID    string
	ListingID string
	Name      string
	Start     time.Time
	End       time.Time
	Nightly   int64
}

func (c SetPeriodPricingCommand) Key() string { return setPeriodKey }

type SetPeriodPricingHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *SetPeriodPricingHandler) Handle(ctx context.Context, cmd SetPeriodPricingCommand) (*dto.PeriodPricingList, error) {
	if strings.TrimSpace(cmd.HostID) == "" {
		return nil, ErrHostIDRequired
	}
	if strings.TrimSpace(cmd.ListingID) == "" {
		return nil, ErrListingIDRequired
	}

	unit, execCtx, managed, err := beginManagedUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	committed := false
	if managed {
		defer func() {
			if !committed {
				_ = unit.Rollback(execCtx)
			}
		}()
	}

	listing, err := unit.Listings().ByID(execCtx, domainlistings.ListingID(cmd.ListingID))
	if err != nil {
		return nil, err
	}
	if !listing.OwnedBy(domainlistings.HostID(cmd.HostID)) {
		return nil, domainlistings.ErrListingNotOwned
	}

	nightly, err := money.New(cmd.Nightly, listing.BaseNightly.Currency)
	if err != nil {
		return nil, err
	}
	period, err := domainpricing.NewPeriodPricing(cmd.Name, cmd.Start, cmd.End, nightly)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	listing.SetPeriodPricing(period, now)

	if err := unit.Listings().Save(execCtx, listing); err != nil {
		return nil, err
	}
	if err := drainEvents(execCtx, h.Outbox, h.Encoder, listing); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(execCtx); err != nil {
			return nil, err
		}
		committed = true
	}

	result := dto.MapPeriodPricingList(listing)
	return &result, nil
}

var _ commands.Handler[SetPeriodPricingCommand, *dto.PeriodPricingList] = (*SetPeriodPricingHandler)(nil)
