package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"manajet-service/internal/infrastructure/config"
	"manajet-service/internal/infrastructure/persistence"
	fleetRepo "manajet-service/internal/interface/repository"
	"manajet-service/internal/usecase"
	"manajet-service/pkg/logger"
	"manajet-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Manajet Fleet Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection for the activity log
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)
	activityRepository := fleetRepo.NewMongoActivityRepository(db)

	// Set up fleet snapshot storage
	var fleetRepository = fleetRepo.NewFileFleetRepository(cfg.DataFile)
	if cfg.StorageBackend == "postgres" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		fleetRepository, err = fleetRepo.NewGormFleetRepository(gormDB)
		if err != nil {
			log.Fatal("Failed to migrate fleet schema", "error", err)
		}
		log.Info("Using PostgreSQL fleet storage")
	} else {
		log.Info("Using file fleet storage", "path", cfg.DataFile)
	}

	// Set up metrics and the fleet service
	m := metrics.NewMetrics("manajet")
	fleet := usecase.NewFleetService(fleetRepository, activityRepository, log, m)
	if err := fleet.Load(ctx); err != nil {
		log.Fatal("Failed to load fleet snapshot", "error", err)
	}

	sweeper := usecase.NewStatusSweeper(fleet, log, m)

	// Start the time-driven status sweep in a goroutine
	go func() {
		sweepTicker := time.NewTicker(cfg.SweepInterval)
		defer sweepTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Status sweeper stopped")
				return
			case <-sweepTicker.C:
				if _, err := sweeper.SweepAll(ctx); err != nil {
					log.Error("Error running status sweep", "error", err)
				}
			}
		}
	}()

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Manajet Fleet Service stopped")
}
