package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"scamshield/internal/api/handlers"
	apimiddleware "scamshield/internal/api/middleware"
	"scamshield/internal/config"
	"scamshield/pkg/logger"
)

// Router holds dependencies for the API router
type Router struct {
	config    config.Config
	handlers  *handlers.Handlers
	rateStore apimiddleware.RateLimitStore
	logger    *logger.Logger
}

// NewRouter creates a new Router instance. rateStore may be nil when rate
// limiting is disabled.
func NewRouter(cfg config.Config, h *handlers.Handlers, rateStore apimiddleware.RateLimitStore, log *logger.Logger) *Router {
	return &Router{
		config:    cfg,
		handlers:  h,
		rateStore: rateStore,
		logger:    log.WithComponent("router"),
	}
}

// Setup sets up the Chi router with all routes and middleware
func (r *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Core middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(apimiddleware.Logger(r.logger))
	router.Use(middleware.Recoverer)

	// CORS
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.config.CORS.AllowedOrigins,
		AllowedMethods:   r.config.CORS.AllowedMethods,
		AllowedHeaders:   r.config.CORS.AllowedHeaders,
		AllowCredentials: r.config.CORS.AllowCredentials,
		MaxAge:           r.config.CORS.MaxAge,
	}))

	// Public routes
	router.Group(func(pub chi.Router) {
		pub.Get("/health", r.handlers.Health.Check)
		pub.Get("/ready", r.handlers.Health.Ready)
	})

	// API v1 routes (authenticated)
	router.Route("/api/v1", func(api chi.Router) {
		api.Use(apimiddleware.APIKeyAuth(r.config.Auth.APIKeys))

		// long-lived websocket, outside the timeout and rate limit
		api.Route("/ws", func(ws chi.Router) {
			ws.Get("/detections", r.handlers.Streaming.HandleWebSocket)
			ws.Get("/stats", r.handlers.Streaming.GetStats)
		})

		api.Group(func(limited chi.Router) {
			limited.Use(middleware.Timeout(60 * time.Second))
			if r.config.RateLimit.Enabled && r.rateStore != nil {
				limited.Use(apimiddleware.RateLimiter(r.rateStore, r.config.RateLimit))
			}

			limited.Route("/analyze", func(analyze chi.Router) {
				analyze.Post("/url", r.handlers.Analysis.AnalyzeURL)
				analyze.Post("/url/batch", r.handlers.Analysis.AnalyzeURLBatch)
				analyze.Post("/message", r.handlers.Analysis.AnalyzeMessage)
				analyze.Post("/website", r.handlers.Analysis.AnalyzeWebsite)
			})

			limited.Route("/reports", func(reports chi.Router) {
				reports.Post("/", r.handlers.Reports.Submit)
				reports.Get("/check", r.handlers.Reports.Check)
				reports.Get("/recent", r.handlers.Reports.Recent)
			})

			limited.Get("/brands", r.handlers.Brands.List)
		})
	})

	return router
}
