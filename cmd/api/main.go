package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"scamshield/internal/api"
	"scamshield/internal/api/handlers"
	apimiddleware "scamshield/internal/api/middleware"
	"scamshield/internal/config"
	"scamshield/internal/domain/services"
	"scamshield/internal/grpc/healthcheck"
	"scamshield/internal/infrastructure/cache"
	"scamshield/internal/infrastructure/database"
	"scamshield/internal/infrastructure/database/repository"
	"scamshield/internal/streaming"
	"scamshield/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.IsProduction() {
		log = logger.NewProduction()
	} else if cfg.App.Debug {
		log = logger.NewDevelopment()
	} else {
		log = logger.New(logger.Config{
			Level:      cfg.Logger.Level,
			Format:     cfg.Logger.Format,
			TimeFormat: cfg.Logger.TimeFormat,
		})
	}

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting ScamShield")

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	infra := initInfrastructure(ctx, cfg, log)
	defer infra.Close()

	// Event bus fans detections out to NATS and websocket clients
	var broker streaming.Publisher
	if infra.nats != nil {
		broker = infra.nats
	}
	eventBus := streaming.NewEventBus(broker, log)
	defer eventBus.Close()

	wsHub := streaming.NewWebSocketHub(eventBus, log)
	go wsHub.Run(ctx)

	// Optional collaborators must be untyped nil when absent
	var assessmentCache services.AssessmentCache
	var rateStore apimiddleware.RateLimitStore = apimiddleware.NewMemoryRateLimitStore()
	if infra.redis != nil {
		assessmentCache = infra.redis
		rateStore = infra.redis
	}

	var reports services.ReportStore = repository.NewMemoryReportRepository()
	if infra.db != nil {
		reports = repository.NewReportRepository(infra.db.Pool())
	} else {
		log.Warn().Msg("running without database - community reports are kept in memory")
	}

	engine := services.NewEngine(services.DefaultRegistry())
	analysis := services.NewAnalysisService(
		engine,
		nil,
		assessmentCache,
		reports,
		streaming.NewEventBusPublisher(eventBus),
		services.AnalysisOptions{
			CacheTTL:         cfg.Analysis.CacheTTL,
			ExpansionTimeout: cfg.Analysis.ExpansionTimeout,
			MaxBatchSize:     cfg.Analysis.MaxBatchSize,
			MaxTextLength:    cfg.Analysis.MaxTextLength,
			MaxHTMLBytes:     cfg.Analysis.MaxHTMLBytes,
		},
		log,
	)
	log.Info().Int("brands", len(engine.Registry().Brands())).Msg("risk engine initialized")

	// Initialize handlers
	h := handlers.NewHandlers(handlers.Dependencies{
		Service:  analysis,
		Checks:   infra.httpChecks(),
		EventBus: eventBus,
		WSHub:    wsHub,
		Version:  cfg.App.Version,
		Logger:   log,
	})

	router := api.NewRouter(*cfg, h, rateStore, log)

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Start gRPC health server
	grpcListener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.GRPCPort))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create gRPC listener")
	}

	grpcServer := grpc.NewServer()
	healthServer := healthcheck.Register(grpcServer, infra.grpcChecks(), log)
	go healthServer.Run(ctx)

	go func() {
		log.Info().
			Str("addr", grpcListener.Addr().String()).
			Msg("starting gRPC server")
		if err := grpcServer.Serve(grpcListener); err != nil {
			log.Fatal().Err(err).Msg("gRPC server failed")
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info().Msg("shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	grpcServer.GracefulStop()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}

// infrastructure holds the optional external dependencies. Each is nil when
// disabled or unreachable; the service degrades instead of failing.
type infrastructure struct {
	db    *database.PostgresDB
	redis *cache.RedisCache
	nats  *streaming.NATSPublisher
}

func initInfrastructure(ctx context.Context, cfg *config.Config, log *logger.Logger) *infrastructure {
	infra := &infrastructure{}

	if cfg.Database.Enabled {
		db, err := database.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to PostgreSQL, continuing without database")
		} else if err := db.Migrate(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to migrate database, continuing without database")
			db.Close()
		} else {
			infra.db = db
		}
	}

	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache")
		} else {
			infra.redis = redisCache
		}
	}

	if cfg.NATS.Enabled {
		publisher, err := streaming.NewNATSPublisher(ctx, cfg.NATS, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to NATS, continuing without event streaming")
		} else {
			log.Info().Str("url", cfg.NATS.URL).Msg("connected to NATS")
			infra.nats = publisher
		}
	}

	return infra
}

func (i *infrastructure) httpChecks() map[string]handlers.Pinger {
	checks := make(map[string]handlers.Pinger)
	if i.db != nil {
		checks["postgres"] = i.db
	}
	if i.redis != nil {
		checks["redis"] = i.redis
	}
	return checks
}

func (i *infrastructure) grpcChecks() map[string]healthcheck.Pinger {
	checks := make(map[string]healthcheck.Pinger)
	for name, p := range i.httpChecks() {
		checks[name] = p
	}
	return checks
}

// Close releases every connected dependency
func (i *infrastructure) Close() {
	if i.nats != nil {
		i.nats.Close()
	}
	if i.redis != nil {
		i.redis.Close()
	}
	if i.db != nil {
		i.db.Close()
	}
}
