package dto

import (
	domainlistings "homestay/internal/domain/listings"
	"homestay/internal/domain/pricing"
)

type PeriodPricing struct {
	Name    string `json:"name"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Nightly int64  `json:"nightly"`
}

type PeriodPricingList struct {
	ListingID string          `json:"listing_id"`
	Currency  string          `json:"currency"`
	Periods   []PeriodPricing `json:"periods"`
}

func MapPeriodPricing(p pricing.PeriodPricing) PeriodPricing {
	return PeriodPricing{
		Name:    p.Name,
		Start:   p.Start.Format(DateLayout),
		End:     p.End.Format(DateLayout),
		Nightly: p.Nightly.Amount,
	}
}

func MapPeriodPricingList(l *domainlistings.Listing) PeriodPricingList {
	if l == nil {
		return PeriodPricingList{}
	}
	periods := make([]PeriodPricing, 0, len(l.Periods))
	for _, p := range l.Periods {
		periods = append(periods, MapPeriodPricing(p))
	}
	return PeriodPricingList{
		ListingID: string(l.ID),
		Currency:  l.BaseNightly.Currency,
		Periods:   periods,
	}
}
