package listings

import (
	"context"
	"errors"
	"strings"
	"time"

	"homestay/internal/domain/pricing"
	"homestay/internal/domain/shared/daterange"
	"homestay/internal/domain/shared/events"
	"homestay/internal/domain/shared/money"
)

var (
	ErrIDRequired      = errors.New("listings: id is required")
	ErrHostRequired    = errors.New("listings: host is required")
	ErrTitleRequired   = errors.New("listings: title is required")
	ErrGuestsLimit     = errors.New("listings: guests limit must be at least 1")
	ErrNightlyRate     = errors.New("listings: nightly rate must be positive")
	ErrBaseGuests      = errors.New("listings: base guests must be non-negative")
	ErrExtraGuestFee   = errors.New("listings: extra guest fee must be non-negative")
	ErrInvalidState    = errors.New("listings: invalid state transition")
	ErrPeriodNotFound  = errors.New("listings: period pricing not found")
	ErrListingNotOwned = errors.New("listings: listing does not belong to host")
)

type ListingID string
type HostID string

type ListingState string

const (
	ListingDraft     ListingState = "DRAFT"
	ListingActive    ListingState = "ACTIVE"
	ListingSuspended ListingState = "SUSPENDED"
)

// Listing is the property aggregate, trimmed to identity, lifecycle and the
// rate plan a stay quote needs. BaseGuests is the guest count included in the
// base rate; zero means the extra-guest surcharge never applies.
type Listing struct {
	ID            ListingID
	Host          HostID
	Title         string
	Description   string
	State         ListingState
	GuestsLimit   int
	BaseNightly   money.Money
	BaseGuests    int
	ExtraGuestFee money.Money
	Periods       []pricing.PeriodPricing
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	events.EventRecorder
}

type ListingRepository interface {
	ByID(ctx context.Context, id ListingID) (*Listing, error)
	Save(ctx context.Context, listing *Listing) error
}

type CreateListingParams struct {
	ID            ListingID
	Host          HostID
	Title         string
	Description   string
	GuestsLimit   int
	BaseNightly   money.Money
	BaseGuests    int
	ExtraGuestFee money.Money
	Periods       []pricing.PeriodPricing
	Now           time.Time
}

func NewListing(params CreateListingParams) (*Listing, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(string(params.Host)) == "" {
		return nil, ErrHostRequired
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if params.GuestsLimit < 1 {
		return nil, ErrGuestsLimit
	}
	if params.BaseNightly.Amount <= 0 || params.BaseNightly.Currency == "" {
		return nil, ErrNightlyRate
	}
	if params.BaseGuests < 0 {
		return nil, ErrBaseGuests
	}
	if params.ExtraGuestFee.Amount < 0 {
		return nil, ErrExtraGuestFee
	}

	extraFee := params.ExtraGuestFee
	if extraFee.Currency == "" {
		extraFee.Currency = params.BaseNightly.Currency
	}

	listing := &Listing{
		ID:            params.ID,
		Host:          params.Host,
		Title:         strings.TrimSpace(params.Title),
		Description:   strings.TrimSpace(params.Description),
		State:         ListingDraft,
		GuestsLimit:   params.GuestsLimit,
		BaseNightly:   params.BaseNightly,
		BaseGuests:    params.BaseGuests,
		ExtraGuestFee: extraFee,
		Periods:       append([]pricing.PeriodPricing(nil), params.Periods...),
		CreatedAt:     params.Now.UTC(),
		UpdatedAt:     params.Now.UTC(),
	}
	listing.Record(ListingCreatedEvent{ListingID: listing.ID, HostID: listing.Host, At: params.Now.UTC()})
	return listing, nil
}

func (l *Listing) Activate(now time.Time) error {
	if l.State == ListingActive {
		return nil
	}
	if l.State != ListingDraft && l.State != ListingSuspended {
		return ErrInvalidState
	}
	l.State = ListingActive
	l.UpdatedAt = now.UTC()
	l.Record(ListingActivatedEvent{ListingID: l.ID, HostID: l.Host, At: now.UTC()})
	return nil
}

func (l *Listing) OwnedBy(host HostID) bool {
	return l.Host == host
}

// SetPeriodPricing upserts a period pricing by name. Overlapping windows are
// allowed; resolution happens at quote time.
func (l *Listing) SetPeriodPricing(period pricing.PeriodPricing, now time.Time) {
	for i, existing := range l.Periods {
		if existing.Name == period.Name {
			l.Periods[i] = period
			l.touchPeriods(period.Name, now)
			return
		}
	}
	l.Periods = append(l.Periods, period)
	l.touchPeriods(period.Name, now)
}

// RemovePeriodPricing deletes a period pricing by name.
func (l *Listing) RemovePeriodPricing(name string, now time.Time) error {
	for i, existing := range l.Periods {
		if existing.Name == name {
			l.Periods = append(l.Periods[:i], l.Periods[i+1:]...)
			l.UpdatedAt = now.UTC()
			l.Record(PeriodPricingRemovedEvent{ListingID: l.ID, Name: name, At: now.UTC()})
			return nil
		}
	}
	return ErrPeriodNotFound
}

// StayInput assembles the calculator input for a stay on this listing.
func (l *Listing) StayInput(stay daterange.DateRange, guests int) pricing.StayInput {
	return pricing.StayInput{
		BaseNightly:   l.BaseNightly,
		BaseGuests:    l.BaseGuests,
		ExtraGuestFee: l.ExtraGuestFee,
		Periods:       append([]pricing.PeriodPricing(nil), l.Periods...),
		Stay:          stay,
		Guests:        guests,
	}
}

func (l *Listing) touchPeriods(name string, now time.Time) {
	l.UpdatedAt = now.UTC()
	l.Record(PeriodPricingSetEvent{ListingID: l.ID, Name: name, At: now.UTC()})
}
