package http

import (
	"log/slog"

	"github.com/geocoder89/eventrest/internal/config"
	"github.com/geocoder89/eventrest/internal/http/handlers"
	"github.com/geocoder89/eventrest/internal/http/middlewares"
	"github.com/geocoder89/eventrest/internal/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Deps struct {
	Store handlers.EventsStore
	// Ping reports store readiness; nil means always ready.
	Ping func() error
	// Prom is optional; without it /metrics is not mounted.
	Prom *observability.Prom
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.RegisterValidators()

	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	if cfg.OTelEnabled {
		r.Use(otelgin.Middleware(cfg.OTelServiceName))
	}
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))

	// ops
	h := handlers.NewHealthHandler(deps.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	if deps.Prom != nil {
		r.GET("/metrics", gin.WrapH(deps.Prom.Handler()))
	}
	r.GET("/swagger/*any", handlers.SwaggerUI())

	// api
	opts := []handlers.EventsHandlerOption{handlers.WithLogger(log)}
	if deps.Prom != nil {
		opts = append(opts, handlers.WithRejectionObserver(deps.Prom))
	}
	eventsHandler := handlers.NewEventsHandler(deps.Store, opts...)

	api := r.Group("/api")
	api.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes), middlewares.RequireJSON())
	{
		api.GET("", handlers.Index)
		api.POST("/events", eventsHandler.CreateEvent)
		api.GET("/events", eventsHandler.ListEvents)
		api.GET("/events/:id", eventsHandler.GetEventById)
		api.PUT("/events/:id", eventsHandler.UpdateEvent)
	}

	r.NoRoute(func(ctx *gin.Context) {
		handlers.RespondNotFound(ctx, "Resource not found")
	})

	return r
}
