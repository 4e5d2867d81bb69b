package ginserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homestay/internal/app/commands"
	listingapp "homestay/internal/app/handlers/listings"
	pricingapp "homestay/internal/app/handlers/pricing"
	"homestay/internal/app/middleware"
	appoutbox "homestay/internal/app/outbox"
	"homestay/internal/app/queries"
	domainlistings "homestay/internal/domain/listings"
	domainpricing "homestay/internal/domain/pricing"
	"homestay/internal/domain/shared/money"
	"homestay/internal/infra/config"
	ginserver "homestay/internal/infra/http/gin"
	"homestay/internal/infra/obs"
	"homestay/internal/infra/storage/memory"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestServer(t *testing.T) (http.Handler, *memory.Outbox) {
	t.Helper()

	repo := memory.NewListingRepository()
	box := memory.NewOutbox()
	factory := memory.Factory{ListingsRepo: repo, PricingSvc: domainpricing.StayCalculator{}}

	weekend, err := domainpricing.NewPeriodPricing("Weekend Special", day(2026, 6, 7), day(2026, 6, 8), money.Must(180, "USD"))
	require.NoError(t, err)
	listing, err := domainlistings.NewListing(domainlistings.CreateListingParams{
		ID:            "lst-1",
		Host:          "host-1",
		Title:         "Ocean View Villa",
		GuestsLimit:   8,
		BaseNightly:   money.Must(200, "USD"),
		BaseGuests:    4,
		ExtraGuestFee: money.Must(25, "USD"),
		Periods:       []domainpricing.PeriodPricing{weekend},
		Now:           day(2026, 1, 1),
	})
	require.NoError(t, err)
	require.NoError(t, listing.Activate(day(2026, 1, 1)))
	listing.ClearEvents()
	require.NoError(t, repo.Save(context.Background(), listing))

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, listingapp.SetPeriodPricingCommand{}.Key(),
		&listingapp.SetPeriodPricingHandler{UoWFactory: factory, Outbox: box, Encoder: appoutbox.JSONEventEncoder{}})
	commands.RegisterHandler(commandBus, listingapp.RemovePeriodPricingCommand{}.Key(),
		&listingapp.RemovePeriodPricingHandler{UoWFactory: factory, Outbox: box, Encoder: appoutbox.JSONEventEncoder{}})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, pricingapp.GetQuoteQuery{}.Key(), &pricingapp.GetQuoteHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, pricingapp.GetRatesQuery{}.Key(), &pricingapp.GetRatesHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, listingapp.ListPeriodPricingsQuery{}.Key(), &listingapp.ListPeriodPricingsHandler{UoWFactory: factory})

	wrappedCommands := middleware.ChainCommands(commandBus,
		middleware.Transaction(factory, nil),
		middleware.OutboxFlush(box),
	)

	server := ginserver.NewServer(
		config.Config{Env: "test", HTTPAddr: ":0"},
		obs.Middleware{},
		obs.HealthHandlers{},
		ginserver.Handlers{
			Pricing:     ginserver.PricingHandler{Queries: queryBus},
			HostPricing: ginserver.HostPricingHandler{Commands: wrappedCommands, Queries: queryBus},
		},
	)
	return server.Handler, box
}

func doJSON(t *testing.T, handler http.Handler, method, path, hostID, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if hostID != "" {
		req.Header.Set("X-Host-ID", hostID)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	}
	return rec, payload
}

func TestHealthEndpoints(t *testing.T) {
	handler, _ := newTestServer(t)

	rec, _ := doJSON(t, handler, http.MethodGet, "/livez", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, handler, http.MethodGet, "/readyz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestQuoteEndpoint(t *testing.T) {
	handler, _ := newTestServer(t)

	t.Run("returns a full breakdown", func(t *testing.T) {
		rec, body := doJSON(t, handler, http.MethodGet,
			"/api/v1/listings/lst-1/quote?check_in=2026-06-05&check_out=2026-06-10&guests=2", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, "lst-1", body["listing_id"])
		assert.Equal(t, "USD", body["currency"])
		assert.Equal(t, float64(5), body["nights"])
		assert.Equal(t, float64(960), body["base_total"])
		assert.Equal(t, float64(1000), body["normal_total"])
		assert.Equal(t, float64(40), body["savings"])
		assert.Equal(t, float64(960), body["total_price"])
		assert.Equal(t, true, body["has_variation"])
		nightly, ok := body["nightly_prices"].([]any)
		require.True(t, ok)
		assert.Len(t, nightly, 5)
	})

	t.Run("malformed dates are a bad request", func(t *testing.T) {
		rec, _ := doJSON(t, handler, http.MethodGet,
			"/api/v1/listings/lst-1/quote?check_in=June5&check_out=2026-06-10", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown listing is a 404", func(t *testing.T) {
		rec, _ := doJSON(t, handler, http.MethodGet,
			"/api/v1/listings/nope/quote?check_in=2026-06-05&check_out=2026-06-10", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("guests above the limit are rejected", func(t *testing.T) {
		rec, _ := doJSON(t, handler, http.MethodGet,
			"/api/v1/listings/lst-1/quote?check_in=2026-06-05&check_out=2026-06-10&guests=20", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRatesEndpoint(t *testing.T) {
	handler, _ := newTestServer(t)

	rec, body := doJSON(t, handler, http.MethodGet,
		"/api/v1/listings/lst-1/rates?from=2026-06-06&to=2026-06-09", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rates, ok := body["rates"].([]any)
	require.True(t, ok)
	require.Len(t, rates, 3)
	second, ok := rates[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2026-06-07", second["date"])
	assert.Equal(t, float64(180), second["price"])
	assert.Equal(t, "Weekend Special", second["period"])
}

func TestHostPeriodEndpoints(t *testing.T) {
	handler, box := newTestServer(t)

	t.Run("requires the host header", func(t *testing.T) {
		rec, _ := doJSON(t, handler, http.MethodGet, "/api/v1/host/listings/lst-1/periods", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("set then list then remove", func(t *testing.T) {
		rec, body := doJSON(t, handler, http.MethodPut, "/api/v1/host/listings/lst-1/periods", "host-1",
			`{"name":"High Season","start":"2026-07-01","end":"2026-08-31","nightly":260}`)
		require.Equal(t, http.StatusOK, rec.Code)
		periods, ok := body["periods"].([]any)
		require.True(t, ok)
		assert.Len(t, periods, 2)
		assert.Positive(t, box.Pending())

		rec, body = doJSON(t, handler, http.MethodGet, "/api/v1/host/listings/lst-1/periods", "host-1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		periods, ok = body["periods"].([]any)
		require.True(t, ok)
		assert.Len(t, periods, 2)

		rec, body = doJSON(t, handler, http.MethodDelete, "/api/v1/host/listings/lst-1/periods/High%20Season", "host-1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		periods, ok = body["periods"].([]any)
		require.True(t, ok)
		assert.Len(t, periods, 1)
	})

	t.Run("foreign host cannot modify the listing", func(t *testing.T) {
		rec, _ := doJSON(t, handler, http.MethodPut, "/api/v1/host/listings/lst-1/periods", "host-2",
			`{"name":"Takeover","start":"2026-07-01","end":"2026-08-31","nightly":1}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("inverted window is a bad request", func(t *testing.T) {
		rec, _ := doJSON(t, handler, http.MethodPut, "/api/v1/host/listings/lst-1/periods", "host-1",
			`{"name":"Backwards","start":"2026-08-31","end":"2026-07-01","nightly":260}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
