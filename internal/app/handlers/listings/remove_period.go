package listings

import (
	"context"
	"strings"
	"time"

	"homestay/internal/app/commands"
	"homestay/internal/app/dto"
	"homestay/internal/app/outbox"
	"homestay/internal/app/uow"
	domainlistings "homestay/internal/domain/listings"
	domainpricing "homestay/internal/domain/pricing"
)

const removePeriodKey = "host.listings.remove_period"

// RemovePeriodPricingCommand deletes a named period pricing from a host's listing.
type RemovePeriodPricingCommand struct {
	HostID    string
	ListingID string
	Name      string
}

func (c RemovePeriodPricingCommand) Key() string { return removePeriodKey }

type RemovePeriodPricingHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *RemovePeriodPricingHandler) Handle(ctx context.Context, cmd RemovePeriodPricingCommand) (*dto.PeriodPricingList, error) {
	if strings.TrimSpace(cmd.HostID) == "" {
		return nil, ErrHostIDRequired
	}
	if strings.TrimSpace(cmd.ListingID) == "" {
		return nil, ErrListingIDRequired
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, domainpricing.ErrPeriodNameRequired
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

	now := time.Now().UTC()
	if err := listing.RemovePeriodPricing(strings.TrimSpace(cmd.Name), now); err != nil {
		return nil, err
	}

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

var _ commands.Handler[RemovePeriodPricingCommand, *dto.PeriodPricingList] = (*RemovePeriodPricingHandler)(nil)
