package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"homestay/internal/app/commands"
	"homestay/internal/app/dto"
	listingapp "homestay/internal/app/handlers/listings"
	"homestay/internal/app/queries"
)

var (
	errInvalidDates = errors.New("check_in and check_out must be YYYY-MM-DD dates")
	errHostHeader   = errors.New("X-Host-ID header is required")
)

// HostPricingHandler manages a host's period pricings. Host identity comes
// from the X-Host-ID header; session issuance lives outside this service.
type HostPricingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

func (h HostPricingHandler) ListPeriods(c *gin.Context) {
	hostID, ok := requireHost(c)
	if !ok {
		return
	}

	query := listingapp.ListPeriodPricingsQuery{HostID: hostID, ListingID: c.Param("id")}
	result, err := queries.Ask[listingapp.ListPeriodPricingsQuery, dto.PeriodPricingList](c.Request.Context(), h.Queries, query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type setPeriodRequest struct {
	Name    string `json:"name" binding:"required"`
	Start   string `json:"start" binding:"required"`
	End     string `json:"end" binding:"required"`
	Nightly int64  `json:"nightly" binding:"required"`
}

func (h HostPricingHandler) SetPeriod(c *gin.Context) {
	hostID, ok := requireHost(c)
	if !ok {
		return
	}

	var req setPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondWithError(c, http.StatusBadRequest, err)
		return
	}
	start, okStart := parseDate(req.Start)
	end, okEnd := parseDate(req.End)
	if !okStart || !okEnd {
		h.respondWithError(c, http.StatusBadRequest, errInvalidDates)
		return
	}

	cmd := listingapp.SetPeriodPricingCommand{
		HostID:    hostID,
		ListingID: c.Param("id"),
		Name:      req.Name,
		Start:     start,
		End:       end,
		Nightly:   req.Nightly,
	}
	result, err := commands.Dispatch[listingapp.SetPeriodPricingCommand, *dto.PeriodPricingList](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h HostPricingHandler) RemovePeriod(c *gin.Context) {
	hostID, ok := requireHost(c)
	if !ok {
		return
	}

	cmd := listingapp.RemovePeriodPricingCommand{
		HostID:    hostID,
		ListingID: c.Param("id"),
		Name:      c.Param("name"),
	}
	result, err := commands.Dispatch[listingapp.RemovePeriodPricingCommand, *dto.PeriodPricingList](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func requireHost(c *gin.Context) (string, bool) {
	hostID := strings.TrimSpace(c.GetHeader("X-Host-ID"))
	if hostID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errHostHeader.Error()})
		return "", false
	}
	return hostID, true
}

func (h HostPricingHandler) handleError(c *gin.Context, err error) {
	switch {
	case isNotFound(err):
		h.respondWithError(c, http.StatusNotFound, err)
	case isValidationError(err):
		h.respondWithError(c, http.StatusBadRequest, err)
	default:
		h.respondWithError(c, http.StatusInternalServerError, err)
	}
}

func (h HostPricingHandler) respondWithError(c *gin.Context, status int, err error) {
	if h.Logger != nil {
		h.Logger.Error("host pricing request failed", "status", status, "error", err, "path", c.FullPath())
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

var _ HostPricingHTTP = HostPricingHandler{}
