package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"homestay/internal/app/commands"
	listingapp "homestay/internal/app/handlers/listings"
	pricingapp "homestay/internal/app/handlers/pricing"
	"homestay/internal/app/middleware"
	appoutbox "homestay/internal/app/outbox"
	"homestay/internal/app/queries"
	"homestay/internal/app/uow"
	"homestay/internal/domain/listings"
	domainpricing "homestay/internal/domain/pricing"
	"homestay/internal/domain/shared/daterange"
	"homestay/internal/domain/shared/money"
	"homestay/internal/infra/broker/kafka"
	"homestay/internal/infra/config"
	mongodb "homestay/internal/infra/db/mongo"
	ginserver "homestay/internal/infra/http/gin"
	"homestay/internal/infra/obs"
	infraoutbox "homestay/internal/infra/outbox"
	"homestay/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
		cfg.StorageMode = config.StorageMemory
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	app, err := buildApplication(cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}

	ready := func() error { return nil }
	if app.mongoClient != nil {
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return app.mongoClient.Ping(pingCtx)
		}
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: ready}, app.handlers)

	if cfg.StorageMode == config.StorageMemory {
		fixturesPath := cfg.FixturesPath
		if fixturesPath == "" {
			fixturesPath = defaultFixturesPath()
		}
		if err := app.loadListingFixtures(ctx, fixturesPath, logger); err != nil {
			logger.Warn("listing fixtures load failed", "error", err, "path", fixturesPath)
		}
	}

	if app.worker != nil {
		go func() {
			if err := app.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	if app.producer != nil {
		_ = app.producer.Close()
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers    ginserver.Handlers
	listings    listings.ListingRepository
	mongoClient *mongodb.Client
	producer    *kafka.Producer
	worker      *infraoutbox.Worker
}

func buildApplication(cfg config.Config, logger *slog.Logger) (application, error) {
	var app application
	var uowFactory uow.UoWFactory
	var box appoutbox.Outbox
	var store infraoutbox.Store

	calculator := domainpricing.StayCalculator{}

	switch cfg.StorageMode {
	case config.StorageMongo:
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, fmt.Errorf("mongo connect: %w", err)
		}
		app.mongoClient = client
		repo := mongodb.NewListingRepository(client.DB)
		outboxStore := mongodb.NewOutboxStore(client.DB)
		app.listings = repo
		uowFactory = mongodb.Factory{DB: client.DB, ListingsRepo: repo, PricingSvc: calculator}
		box = outboxStore
		store = outboxStore
	default:
		repo := memory.NewListingRepository()
		outboxStore := memory.NewOutbox()
		app.listings = repo
		uowFactory = memory.Factory{ListingsRepo: repo, PricingSvc: calculator}
		box = outboxStore
		store = outboxStore
	}

	commandBus := commands.NewInMemoryBus()
	setPeriodHandler := &listingapp.SetPeriodPricingHandler{
		UoWFactory: uowFactory,
		Outbox:     box,
		Encoder:    appoutbox.JSONEventEncoder{},
	}
	commands.RegisterHandler(commandBus, listingapp.SetPeriodPricingCommand{}.Key(), setPeriodHandler)
	removePeriodHandler := &listingapp.RemovePeriodPricingHandler{
		UoWFactory: uowFactory,
		Outbox:     box,
		Encoder:    appoutbox.JSONEventEncoder{},
	}
	commands.RegisterHandler(commandBus, listingapp.RemovePeriodPricingCommand{}.Key(), removePeriodHandler)

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, pricingapp.GetQuoteQuery{}.Key(), &pricingapp.GetQuoteHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, pricingapp.GetRatesQuery{}.Key(), &pricingapp.GetRatesHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, listingapp.ListPeriodPricingsQuery{}.Key(), &listingapp.ListPeriodPricingsHandler{UoWFactory: uowFactory})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Transaction(uowFactory, nil),
		middleware.OutboxFlush(box),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return application{}, fmt.Errorf("kafka producer: %w", err)
		}
		app.producer = producer
		app.worker = &infraoutbox.Worker{
			Store:       store,
			Producer:    producer,
			Interval:    cfg.OutboxPollInterval,
			TopicPrefix: cfg.KafkaTopicPrefix,
			Source:      "app://homestay",
			Backoff:     cfg.RetryBackoff,
		}
	} else {
		logger.Info("kafka brokers not configured, outbox worker disabled")
	}

	app.handlers = ginserver.Handlers{
		Pricing: ginserver.PricingHandler{
			Queries: queryBusWithMiddleware,
			Logger:  logger,
		},
		HostPricing: ginserver.HostPricingHandler{
			Commands: commandBusWithMiddleware,
			Queries:  queryBusWithMiddleware,
			Logger:   logger,
		},
	}
	return app, nil
}

func (a application) loadListingFixtures(ctx context.Context, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("listing fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	if len(data) == 0 {
		logger.Warn("listing fixtures file empty", "path", path)
		return nil
	}

	var fixtures []listingFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	now := time.Now()
	for _, fx := range fixtures {
		currency := fx.Currency
		if currency == "" {
			currency = "USD"
		}
		periods := make([]domainpricing.PeriodPricing, 0, len(fx.Periods))
		for _, p := range fx.Periods {
			start, errStart := parseFixtureDate(p.Start)
			end, errEnd := parseFixtureDate(p.End)
			if errStart != nil || errEnd != nil {
				logger.Error("fixture period has invalid dates", "listing_id", fx.ID, "period", p.Name)
				continue
			}
			period, err := domainpricing.NewPeriodPricing(p.Name, start, end, money.Must(p.Nightly, currency))
			if err != nil {
				logger.Error("fixture period invalid", "listing_id", fx.ID, "period", p.Name, "error", err)
				continue
			}
			periods = append(periods, period)
		}

		listing, err := listings.NewListing(listings.CreateListingParams{
			ID:            listings.ListingID(fx.ID),
			Host:          listings.HostID(fx.Host),
			Title:         fx.Title,
			Description:   fx.Description,
			GuestsLimit:   fx.GuestsLimit,
			BaseNightly:   money.Must(fx.BaseNightly, currency),
			BaseGuests:    fx.BaseGuests,
			ExtraGuestFee: money.Must(fx.ExtraGuestFee, currency),
			Periods:       periods,
			Now:           now,
		})
		if err != nil {
			logger.Error("fixture invalid", "listing_id", fx.ID, "error", err)
			continue
		}
		if err := listing.Activate(now); err != nil {
			logger.Error("fixture activation failed", "listing_id", fx.ID, "error", err)
			continue
		}
		listing.ClearEvents()
		if err := a.listings.Save(ctx, listing); err != nil {
			logger.Error("cannot store fixture listing", "listing_id", fx.ID, "error", err)
			continue
		}
		logger.Info("listing fixture imported", "listing_id", listing.ID, "periods", len(listing.Periods))
	}
	return nil
}

type listingFixture struct {
	ID            string          `json:"id"`
	Host          string          `json:"host"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	GuestsLimit   int             `json:"guests_limit"`
	Currency      string          `json:"currency"`
	BaseNightly   int64           `json:"base_nightly"`
	BaseGuests    int             `json:"base_guests"`
	ExtraGuestFee int64           `json:"extra_guest_fee"`
	Periods       []periodFixture `json:"periods"`
}

type periodFixture struct {
	Name    string `json:"name"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Nightly int64  `json:"nightly"`
}

func parseFixtureDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return daterange.DayOf(t), nil
}

func defaultFixturesPath() string {
	candidates := []string{
		filepath.Join("data", "listings.json"),
		filepath.Join("cmd", "homestay", "data", "listings.json"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return candidates[0]
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
