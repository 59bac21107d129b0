package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/api"
	"github.com/andresuchdata/kopik/backend-go/internal/cache"
	"github.com/andresuchdata/kopik/backend-go/internal/config"
	"github.com/andresuchdata/kopik/backend-go/internal/metrics"
	"github.com/andresuchdata/kopik/backend-go/internal/recommendation"
	"github.com/andresuchdata/kopik/backend-go/internal/repository"
	"github.com/andresuchdata/kopik/backend-go/internal/repository/memory"
	"github.com/andresuchdata/kopik/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/kopik/backend-go/internal/seed"
	"github.com/andresuchdata/kopik/backend-go/internal/service"
	"github.com/andresuchdata/kopik/backend-go/internal/stock"
	"github.com/andresuchdata/kopik/backend-go/internal/storage"
	"github.com/andresuchdata/kopik/backend-go/internal/weather"
	"github.com/andresuchdata/kopik/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.App.LogLevel)
	if cfg.App.LogFile != "" {
		closer := logger.EnableFile(logger.FileOptions{Path: cfg.App.LogFile})
		defer closer.Close()
	}
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	m := metrics.New()

	store, closeStore := openStore(ctx, cfg)
	defer closeStore.Close()

	table := weather.DefaultTable()
	if cfg.App.WeatherTableFile != "" {
		loaded, err := weather.LoadTable(cfg.App.WeatherTableFile)
		if err != nil {
			logger.Log.Fatal().Err(err).Str("file", cfg.App.WeatherTableFile).Msg("Failed to load weather table")
		}
		table = loaded
	}

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Dashboard cache unavailable, continuing without it")
		dashboardCache = cache.NewNoopDashboardCache()
	}
	defer dashboardCache.Close()

	var objectStorage storage.ObjectStorage
	if cfg.Storage.Enabled {
		client, err := storage.NewMinioClient(ctx, cfg.Storage)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to initialize object storage")
		}
		objectStorage = client
	}

	// Initialize services
	classifier := stock.NewClassifier(stock.Options{
		Thresholds:  stock.Thresholds{Critical: cfg.Rules.CriticalDays, Low: cfg.Rules.LowDays},
		FloorDays:   cfg.Rules.FloorDays,
		LowStockPct: cfg.Rules.LowStockPct,
	})
	inventory := service.NewInventoryService(store.Inventory, classifier, dashboardCache, m)
	orders := service.NewOrderService(store.Orders, dashboardCache)
	signals := service.NewSignalService(store.Signals, dashboardCache)
	recs := service.NewRecommendationService(store.Recommendations, inventory, store.Signals,
		recommendation.NewDefaultEngine(), table, m, dashboardCache)
	foodWaste := service.NewFoodWasteService(store.FoodWaste)
	readings := service.NewWeatherReadingService(store.WeatherReadings)
	events := service.NewEventService(store.Events)
	sales := service.NewSaleService(store.Sales)
	intel := service.NewIntelligenceService(inventory, orders, foodWaste, readings, events, sales, recs, m)
	dashboard := service.NewDashboardService(inventory, orders, signals, recs, table, dashboardCache, m)
	if table.Has(cfg.App.DefaultWeather) {
		_ = dashboard.SetDefaultWeather(cfg.App.DefaultWeather)
	} else if cfg.App.DefaultWeather != "" {
		logger.Log.Warn().Str("weather", cfg.App.DefaultWeather).Msg("Default weather not in table, using first scenario")
	}

	router := api.NewRouter(&api.Services{
		Inventory:       inventory,
		Orders:          orders,
		Signals:         signals,
		Recommendations: recs,
		Weather:         service.NewWeatherService(table, store.Inventory),
		Dashboard:       dashboard,
		Reports:         service.NewReportService(inventory, objectStorage, cfg.App.DataDir),
		Imports:         service.NewImportService(inventory, objectStorage),
		FoodWaste:       foodWaste,
		WeatherReadings: readings,
		Events:          events,
		Sales:           sales,
		Intelligence:    intel,
	}, m, cfg.Server.AllowedOrigins)

	// Initialize HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().
			Str("port", cfg.Server.Port).
			Str("store", cfg.App.StoreDriver).
			Int("scenarios", len(table.Scenarios())).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore returns the configured repositories, seeding the in-memory store with demo data.
func openStore(ctx context.Context, cfg *config.Config) (*repository.Store, io.Closer) {
	switch cfg.App.StoreDriver {
	case config.DriverPostgres:
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to apply schema")
		}
		return postgres.NewStore(db), db

	default:
		store := memory.NewStore()
		if cfg.App.SeedDemoData {
			if err := seed.Load(ctx, store, seed.Demo(time.Now())); err != nil {
				logger.Log.Fatal().Err(err).Msg("Failed to seed demo data")
			}
		}
		return store, nopCloser{}
	}
}
