package dto

import (
	"time"

	"homestay/internal/domain/pricing"
)

// DateLayout is the wire format for calendar dates: the night beginning on
// that date, ending the next morning.
const DateLayout = "2006-01-02"

type NightlyPrice struct {
	Date   string `json:"date"`
	Price  int64  `json:"price"`
	Period string `json:"period,omitempty"`
}

type PriceBreakdown struct {
	ListingID     string         `json:"listing_id"`
	Currency      string         `json:"currency"`
	NightlyPrices []NightlyPrice `json:"nightly_prices"`
	Nights        int            `json:"nights"`
	BaseTotal     int64          `json:"base_total"`
	ExtraGuests   int            `json:"extra_guests"`
	ExtraGuestFee int64          `json:"extra_guest_fee"`
	NormalTotal   int64          `json:"normal_total"`
	Savings       int64          `json:"savings"`
	TotalPrice    int64          `json:"total_price"`
	HasVariation  bool           `json:"has_variation"`
}

func MapBreakdown(listingID string, b pricing.Breakdown) PriceBreakdown {
	nightly := make([]NightlyPrice, 0, len(b.Nightly))
	for _, n := range b.Nightly {
		nightly = append(nightly, NightlyPrice{
			Date:   n.Date.Format(DateLayout),
			Price:  n.Price.Amount,
			Period: n.Period,
		})
	}
	return PriceBreakdown{
		ListingID:     listingID,
		Currency:      b.Total.Currency,
		NightlyPrices: nightly,
		Nights:        b.Nights,
		BaseTotal:     b.BaseTotal.Amount,
		ExtraGuests:   b.ExtraGuests,
		ExtraGuestFee: b.ExtraGuestFee.Amount,
		NormalTotal:   b.NormalTotal.Amount,
		Savings:       b.Savings.Amount,
		TotalPrice:    b.Total.Amount,
		HasVariation:  b.HasVariation(),
	}
}

// RateCalendar lists the resolved nightly rate for every night in a window,
// before any guest-count surcharges.
type RateCalendar struct {
	ListingID string         `json:"listing_id"`
	Currency  string         `json:"currency"`
	From      string         `json:"from"`
	To        string         `json:"to"`
	Rates     []NightlyPrice `json:"rates"`
}

func MapRateCalendar(listingID string, from, to time.Time, b pricing.Breakdown) RateCalendar {
	rates := make([]NightlyPrice, 0, len(b.Nightly))
	for _, n := range b.Nightly {
		rates = append(rates, NightlyPrice{
			Date:   n.Date.Format(DateLayout),
			Price:  n.Price.Amount,
			Period: n.Period,
		})
	}
	return RateCalendar{
		ListingID: listingID,
		Currency:  b.Total.Currency,
		From:      from.Format(DateLayout),
		To:        to.Format(DateLayout),
		Rates:     rates,
	}
}
