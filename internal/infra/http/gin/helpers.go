package ginserver

import (
	"errors"
	"strconv"
	"strings"
	"time"

	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"homestay/internal/app/dto"
	listingapp "homestay/internal/app/handlers/listings"
	pricingapp "homestay/internal/app/handlers/pricing"
	domainlistings "homestay/internal/domain/listings"
	domainpricing "homestay/internal/domain/pricing"
	"homestay/internal/domain/shared/money"
	"homestay/internal/infra/storage/memory"
)

// parseDate accepts the wire date format (YYYY-MM-DD) with an RFC3339
// fallback for clients sending full timestamps.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dto.DateLayout, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func parseIntWithDefault(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrListingNotFound) || errors.Is(err, mongodrv.ErrNoDocuments) ||
		errors.Is(err, domainlistings.ErrListingNotOwned) || errors.Is(err, domainlistings.ErrPeriodNotFound)
}

func isValidationError(err error) bool {
	validation := []error{
		pricingapp.ErrListingIDRequired,
		pricingapp.ErrGuestsRequired,
		pricingapp.ErrGuestsLimit,
		listingapp.ErrHostIDRequired,
		listingapp.ErrListingIDRequired,
		domainpricing.ErrPeriodNameRequired,
		domainpricing.ErrPeriodWindow,
		domainpricing.ErrPeriodRate,
		money.ErrInvalidCurrency,
	}
	for _, v := range validation {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
