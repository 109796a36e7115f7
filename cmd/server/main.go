package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fundlens/fundlens/internal/api"
	"github.com/fundlens/fundlens/internal/config"
	"github.com/fundlens/fundlens/internal/database"
	"github.com/fundlens/fundlens/internal/eastmoney"
	"github.com/fundlens/fundlens/internal/repository"
	"github.com/fundlens/fundlens/internal/scheduler"
	"github.com/fundlens/fundlens/internal/service"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	log.Info().Str("path", cfg.Database.Path).Msg("Connected to database")

	// Create repositories
	positionRepo := repository.NewPositionRepository(db)
	eventRepo := repository.NewTradeEventRepository(db)
	navRepo := repository.NewNAVRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create services
	providerClient := eastmoney.NewHTTPClient(cfg.Provider.HistoryBaseURL, cfg.Provider.EstimateBaseURL)

	systemService := service.NewSystemService(db, settingRepo)
	positionService := service.NewPositionService(positionRepo, eventRepo, navRepo)
	marketDataService := service.NewMarketDataService(
		positionRepo,
		navRepo,
		settingRepo,
		providerClient,
		cfg.Analysis.HistoryDays,
		log.Logger,
	)
	overviewService := service.NewOverviewService(positionService, marketDataService, cfg.Analysis.PivotDeviationPct)
	snapshotService := service.NewSnapshotService(positionService, marketDataService)
	tagService := service.NewTagService(overviewService)

	// Scheduled market data refresh
	sched := scheduler.New(log.Logger)
	if cfg.Refresh.Enabled {
		refreshJob := scheduler.NewRefreshJob(marketDataService, positionService, log.Logger)
		if err := sched.AddJob(cfg.Refresh.CronSpec, refreshJob); err != nil {
			log.Fatal().Err(err).Msg("Failed to register refresh job")
		}
		// Warm the NAV cache at startup instead of waiting for the first tick.
		go func() {
			if err := sched.RunNow(refreshJob); err != nil {
				log.Warn().Err(err).Msg("Initial market data refresh failed")
			}
		}()
	}
	sched.Start()
	defer sched.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:     systemService,
		Position:   positionService,
		MarketData: marketDataService,
		Overview:   overviewService,
		Snapshot:   snapshotService,
		Tag:        tagService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
