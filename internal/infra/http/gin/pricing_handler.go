package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"homestay/internal/app/dto"
	pricingapp "homestay/internal/app/handlers/pricing"
	"homestay/internal/app/queries"
)

type PricingHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

// Quote prices a stay. check_in and check_out are calendar dates; the
// checkout day itself is not charged. An inverted range yields an empty
// zero breakdown rather than an error.
func (h PricingHandler) Quote(c *gin.Context) {
	listingID := c.Param("id")
	checkIn, okIn := parseDate(c.Query("check_in"))
	checkOut, okOut := parseDate(c.Query("check_out"))
	if !okIn || !okOut {
		h.respondWithError(c, http.StatusBadRequest, errInvalidDates)
		return
	}
	guests := parseIntWithDefault(c.Query("guests"), 1)

	query := pricingapp.GetQuoteQuery{
		ListingID: listingID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Guests:    guests,
	}
	result, err := queries.Ask[pricingapp.GetQuoteQuery, dto.PriceBreakdown](c.Request.Context(), h.Queries, query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Rates returns the resolved nightly rate calendar for a window.
func (h PricingHandler) Rates(c *gin.Context) {
	listingID := c.Param("id")
	from, _ := parseDate(c.Query("from"))
	to, _ := parseDate(c.Query("to"))

	query := pricingapp.GetRatesQuery{ListingID: listingID, From: from, To: to}
	result, err := queries.Ask[pricingapp.GetRatesQuery, dto.RateCalendar](c.Request.Context(), h.Queries, query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PricingHandler) handleError(c *gin.Context, err error) {
	switch {
	case isNotFound(err):
		h.respondWithError(c, http.StatusNotFound, err)
	case isValidationError(err):
		h.respondWithError(c, http.StatusBadRequest, err)
	default:
		h.respondWithError(c, http.StatusInternalServerError, err)
	}
}

func (h PricingHandler) respondWithError(c *gin.Context, status int, err error) {
	if h.Logger != nil {
		h.Logger.Error("pricing request failed", "status", status, "error", err, "path", c.FullPath())
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

var _ PricingHTTP = PricingHandler{}
