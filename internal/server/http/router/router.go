package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/palletworks/portal/internal/config"
	"github.com/palletworks/portal/internal/ratelimit"
	"github.com/palletworks/portal/internal/server/http/handlers"
	"github.com/palletworks/portal/internal/server/http/middleware"
)

// SetupParams carries everything the router needs.
type SetupParams struct {
	fx.In

	Facade   handlers.PortalFacade
	Identity middleware.Provider
	Limiter  *ratelimit.Limiter
	Config   *config.Config
	Logger   *slog.Logger
}

// Setup configures gin router with handlers and middleware. Public intake
// routes sit behind the payload cap and per-form rate limits; admin routes
// require an approved administrator identity.
func Setup(p SetupParams) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	intakeHandler := handlers.NewIntakeHandler(p.Facade)
	orderHandler := handlers.NewOrderHandler(p.Facade)

	api := engine.Group("/api")

	intake := api.Group("/intake")
	intake.Use(middleware.MaxPayloadSize(p.Config.MaxPayloadBytes))
	intake.POST("/contact",
		middleware.RateLimit(p.Limiter, "contact", p.Config.ContactRateLimit, p.Config.RateLimitWindow, p.Logger),
		intakeHandler.Contact)
	intake.POST("/quote",
		middleware.RateLimit(p.Limiter, "quote", p.Config.QuoteRateLimit, p.Config.RateLimitWindow, p.Logger),
		intakeHandler.Quote)
	intake.POST("/pickup",
		middleware.RateLimit(p.Limiter, "pickup", p.Config.PickupRateLimit, p.Config.RateLimitWindow, p.Logger),
		intakeHandler.Pickup)

	admin := api.Group("/admin")
	admin.Use(middleware.RequireAdmin(p.Identity))
	admin.POST("/orders", orderHandler.Create)
	admin.GET("/orders/:id", orderHandler.Get)
	admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	admin.PATCH("/orders/:id/delivery-price", orderHandler.UpdateDeliveryPrice)
	admin.PATCH("/items/:id/price", orderHandler.UpdateItemPrice)

	return engine
}
