package listings

import "time"

type ListingCreatedEvent struct {
	ListingID ListingID `json:"listing_id"`
	HostID    HostID    `json:"host_id"`
	At        time.Time `json:"at"`
}

func (e ListingCreatedEvent) EventName() string     { return "listing.created" }
func (e ListingCreatedEvent) AggregateID() string   { return string(e.ListingID) }
func (e ListingCreatedEvent) OccurredAt() time.Time { return e.At }

type ListingActivatedEvent struct {
	ListingID ListingID `json:"listing_id"`
	HostID    HostID    `json:"host_id"`
	At        time.Time `json:"at"`
}

func (e ListingActivatedEvent) EventName() string     { return "listing.activated" }
func (e ListingActivatedEvent) AggregateID() string   { return string(e.ListingID) }
func (e ListingActivatedEvent) OccurredAt() time.Time { return e.At }

type PeriodPricingSetEvent struct {
	ListingID ListingID `json:"listing_id"`
	Name      string    `json:"name"`
	At        time.Time `json:"at"`
}

func (e PeriodPricingSetEvent) EventName() string     { return "listing.period_pricing_set" }
func (e PeriodPricingSetEvent) AggregateID() string   { return string(e.ListingID) }
func (e PeriodPricingSetEvent) OccurredAt() time.Time { return e.At }

type PeriodPricingRemovedEvent struct {
	ListingID ListingID `json:"listing_id"`
	Name      string    `json:"name"`
	At        time.Time `json:"at"`
}

func (e PeriodPricingRemovedEvent) EventName() string     { return "listing.period_pricing_removed" }
func (e PeriodPricingRemovedEvent) AggregateID() string   { return string(e.ListingID) }
func (e PeriodPricingRemovedEvent) OccurredAt() time.Time { return e.At }
