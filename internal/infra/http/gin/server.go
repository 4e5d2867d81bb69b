package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"homestay/internal/infra/config"
	"homestay/internal/infra/obs"
)

type PricingHTTP interface {
	Quote(c *gin.Context)
	Rates(c *gin.Context)
}

type HostPricingHTTP interface {
	ListPeriods(c *gin.Context)
	SetPeriod(c *gin.Context)
	RemovePeriod(c *gin.Context)
}

type Handlers struct {
	Pricing     PricingHTTP
	HostPricing HostPricingHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Host-ID"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Pricing != nil {
		api.GET("/listings/:id/quote", h.Pricing.Quote)
		api.GET("/listings/:id/rates", h.Pricing.Rates)
	}
	if h.HostPricing != nil {
		hostGroup := api.Group("/host/listings")
		hostGroup.GET("/:id/periods", h.HostPricing.ListPeriods)
		hostGroup.PUT("/:id/periods", h.HostPricing.SetPeriod)
		hostGroup.DELETE("/:id/periods/:name", h.HostPricing.RemovePeriod)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
