package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	grpcapi "campus-housing-backend/internal/api/grpc"
	httpapi "campus-housing-backend/internal/api/http"
	"campus-housing-backend/internal/cache"
	"campus-housing-backend/internal/config"
	"campus-housing-backend/internal/events"
	"campus-housing-backend/internal/logger"
	"campus-housing-backend/internal/repository/postgres"
	"campus-housing-backend/internal/security"
	"campus-housing-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	migrate := flag.Bool("migrate", true, "Create or update the database schema on startup")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Campus Housing Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "http_address", cfg.GetServerAddress(), "grpc_address", cfg.GetGRPCAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if *migrate {
		if err := postgres.Migrate(db); err != nil {
			logger.Error("Failed to migrate database schema", "error", err)
			log.Fatalf("Failed to migrate database schema: %v", err)
		}
		logger.Info("Database schema is up to date")
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	hasher, err := security.NewPasswordHasher(0)
	if err != nil {
		log.Fatalf("Failed to initialize password hasher: %v", err)
	}
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Optional infrastructure. Each is skipped when not configured.
	var searchCache service.ListingCache
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("Redis unavailable, listing search cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			defer client.Close()
			searchCache = cache.NewSearchCache(client, time.Duration(cfg.Redis.SearchTTLSeconds)*time.Second)
			logger.Info("Listing search cache enabled", "addr", cfg.Redis.Addr, "ttl_seconds", cfg.Redis.SearchTTLSeconds)
		}
	}

	var publisher service.EventPublisher
	if cfg.Broker.URL != "" {
		p, err := events.NewPublisher(cfg.Broker.URL, cfg.Broker.Exchange)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, event publishing disabled", "error", err)
		} else {
			defer p.Close()
			publisher = p
			logger.Info("Event publishing enabled", "exchange", cfg.Broker.Exchange)
		}
	}

	var emailSvc service.EmailService
	if cfg.Mail.SendGridAPIKey != "" {
		emailSvc = service.NewSendGridEmailService(cfg.Mail.SendGridAPIKey, cfg.Mail.FromEmail, cfg.Mail.FromName)
		logger.Info("SendGrid email enabled", "from", cfg.Mail.FromEmail)
	} else {
		emailSvc = service.NewLogEmailService()
		logger.Info("No SendGrid API key configured, emails will only be logged")
	}

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, hasher, tokenManager)
	userSvc := service.NewUserService(store.UserRepository)
	listingSvc := service.NewListingService(store, store.ListingRepository, searchCache, publisher)
	bookingSvc := service.NewBookingService(
		store,
		store.BookingRepository,
		store.ListingRepository,
		store.UserRepository,
		emailSvc,
		publisher,
	)
	reviewSvc := service.NewReviewService(store.ReviewRepository, store.ListingRepository, publisher)
	dashboardSvc := service.NewDashboardService(store.ListingRepository, store.BookingRepository)

	// Initialize HTTP handlers
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:      httpapi.NewAuthHandler(authSvc, userSvc),
		Listings:  httpapi.NewListingHandler(listingSvc, reviewSvc),
		Bookings:  httpapi.NewBookingHandler(bookingSvc),
		Reviews:   httpapi.NewReviewHandler(reviewSvc),
		Dashboard: httpapi.NewDashboardHandler(dashboardSvc),
	}, tokenManager, cfg.Server.CORSOrigins)

	httpServer := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Set up gRPC health server
	healthServer := grpcapi.NewHealthServer(db)
	healthServer.Refresh(context.Background())
	lis, err := net.Listen("tcp", cfg.GetGRPCAddress())
	if err != nil {
		logger.Error("Failed to listen", "error", err, "address", cfg.GetGRPCAddress())
		log.Fatalf("Failed to listen: %v", err)
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go healthServer.Watch(watchCtx, 15*time.Second)

	go func() {
		if err := healthServer.Serve(lis); err != nil {
			logger.Error("gRPC health server error", "error", err)
		}
	}()

	go func() {
		logger.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down...")
	stopWatch()
	healthServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
