package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "equiptrack-backend/internal/api/http"
	"equiptrack-backend/internal/config"
	"equiptrack-backend/internal/jobs"
	"equiptrack-backend/internal/logger"
	"equiptrack-backend/internal/repository/postgres"
	"equiptrack-backend/internal/scheduler"
	"equiptrack-backend/internal/security"
	"equiptrack-backend/internal/service"
	"equiptrack-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EquipTrack Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Storage
	logger.Info("Using local filesystem storage", "upload_dir", cfg.Storage.UploadDir)
	blobStorage, err := storage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	issuer := service.NewIdentifierIssuer(store, cfg.Issuer.AgentPrefix)

	svcs := httpapi.Services{
		Auth:        service.NewAuthService(store, tokenManager),
		Equipment:   service.NewEquipmentService(store, blobStorage),
		Assignments: service.NewAssignmentService(store),
		Returns:     service.NewReturnService(store),
		Incidents:   service.NewIncidentService(store),
		Agents:      service.NewAgentService(store, issuer),
		Invites: service.NewInviteService(
			store,
			issuer,
			emailSvc,
			cfg.Invites.BaseURL,
			time.Duration(cfg.Invites.DefaultTTLDays)*24*time.Hour,
		),
		Audit:   service.NewAuditService(store),
		Reports: service.NewReportService(store),
	}

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(store, emailSvc, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// Set up HTTP server
	router := httpapi.NewRouter(svcs, tokenManager, blobStorage, cfg.Storage.MaxFileSize)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
