package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	billingservice "github.com/pharmagenie/pharmagenie-backend/internal/billing/service"
	"github.com/pharmagenie/pharmagenie-backend/internal/catalog/repository"
	orderevents "github.com/pharmagenie/pharmagenie-backend/internal/order/events"
	orderhandler "github.com/pharmagenie/pharmagenie-backend/internal/order/handler"
	orderservice "github.com/pharmagenie/pharmagenie-backend/internal/order/service"
	"github.com/pharmagenie/pharmagenie-backend/internal/order/storage"
	presevents "github.com/pharmagenie/pharmagenie-backend/internal/prescription/events"
	preshandler "github.com/pharmagenie/pharmagenie-backend/internal/prescription/handler"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/match"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/ocr"
	presservice "github.com/pharmagenie/pharmagenie-backend/internal/prescription/service"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/validate"
	"github.com/pharmagenie/pharmagenie-backend/pkg/config"
	"github.com/pharmagenie/pharmagenie-backend/pkg/database"
	"github.com/pharmagenie/pharmagenie-backend/pkg/httputil"
	"github.com/pharmagenie/pharmagenie-backend/pkg/logger"
	"github.com/pharmagenie/pharmagenie-backend/pkg/messaging"
)

func main() {
	// Load configuration with validation (fails fast in production if required config is missing)
	cfg, err := config.LoadWithValidation("pharmacy-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("pharmacy-service", cfg.Server.Environment)
	log.Info().Msg("starting Pharmacy Service")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize catalog repository
	catalogRepo := repository.NewCatalogRepository(db)
	if err := catalogRepo.EnsureSchema(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure catalog schema")
	}

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	// Initialize event publishers
	publisher, err := orderevents.NewOrderEventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create order event publisher")
	}
	prescriptionPublisher, err := presevents.NewPrescriptionEventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create prescription event publisher")
	}

	// Prescription authorization pipeline
	extractor := ocr.NewAzureExtractor(cfg.OCR.Endpoint, cfg.OCR.APIKey, cfg.OCR.EnhanceImage)
	doctors := validate.NewDoctorValidator(catalogRepo)
	dates := validate.NewDateChecker()
	matcher := match.NewMatcher(catalogRepo, cfg.Matching.Threshold)
	analyzer := presservice.NewAnalyzer(extractor, doctors, dates, matcher, log)

	// Order workflow
	stockChecker := orderservice.NewCatalogStockChecker(catalogRepo)
	billing := billingservice.NewProcessor(catalogRepo, log)
	orderStore := storage.NewStore(cfg.Workflow.PendingTTL)
	orchestrator := orderservice.NewOrchestrator(stockChecker, analyzer, billing, orderStore, publisher, log)

	// Initialize handlers
	prescriptionHandler := preshandler.NewHandler(analyzer, prescriptionPublisher, log)
	orderHandler := orderhandler.NewHandler(orchestrator, log)

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "pharmacy-service",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/prescriptions/analyze", prescriptionHandler.Analyze)
		orderHandler.Routes(r)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
