package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guardforce/workforce-management/internal"
	"github.com/guardforce/workforce-management/internal/assignment"
	assignmentPostgres "github.com/guardforce/workforce-management/internal/assignment/postgres"
	auditCore "github.com/guardforce/workforce-management/internal/audit"
	auditPostgres "github.com/guardforce/workforce-management/internal/audit/postgres"
	"github.com/guardforce/workforce-management/internal/auth"
	authPostgres "github.com/guardforce/workforce-management/internal/auth/postgres"
	"github.com/guardforce/workforce-management/internal/core/events"
	"github.com/guardforce/workforce-management/internal/dashboard"
	dashboardPostgres "github.com/guardforce/workforce-management/internal/dashboard/postgres"
	"github.com/guardforce/workforce-management/internal/hierarchy"
	hierarchyPostgres "github.com/guardforce/workforce-management/internal/hierarchy/postgres"
	"github.com/guardforce/workforce-management/internal/location"
	locationPostgres "github.com/guardforce/workforce-management/internal/location/postgres"
	"github.com/guardforce/workforce-management/internal/notification"
	personnelPostgres "github.com/guardforce/workforce-management/internal/personnel/postgres"
	"github.com/guardforce/workforce-management/internal/registration"
	"github.com/guardforce/workforce-management/internal/transport/rest"
	"github.com/guardforce/workforce-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	logger.Init(os.Getenv("APP_ENV"))

	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	lg := logger.L()
	router := chi.NewRouter()

	// Event bus and subscribers
	eventBus := events.NewEventBus(lg)
	mailer := notification.NewLogMailer(config.Notification, lg)
	notification.NewEventHandler(mailer, lg).RegisterHandlers(eventBus)

	// Repositories
	hierarchyRepo := hierarchyPostgres.NewHierarchyRepository(gormDB)
	personnelRepo := personnelPostgres.NewPersonnelRepository(gormDB)
	locationRepo := locationPostgres.NewLocationRepository(gormDB)
	assignmentRepo := assignmentPostgres.NewAssignmentRepository(gormDB)
	dashboardRepo := dashboardPostgres.NewDashboardRepository(gormDB)
	auditRepo := auditPostgres.NewAuditRepository(gormDB)
	authRepo := authPostgres.NewRepository(gormDB)

	// Core services
	auditRecorder := auditCore.NewRecorder(auditRepo, lg)
	hierarchyService := hierarchy.NewService(hierarchyRepo, hierarchy.NewApprovedSupervisorsFallback(hierarchyRepo), lg)
	locationService := location.NewService(locationRepo, lg)

	directory := assignment.NewDirectory(personnelRepo, locationRepo)
	assignmentService := assignment.NewService(assignmentRepo, directory, hierarchyService, auditRecorder, eventBus, lg)

	tokenGenerator := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGenerator, config.Security.BCryptCost, lg)

	registrationService := registration.NewService(personnelRepo, assignmentService, authService, eventBus, config.Registration, lg)
	dashboardService := dashboard.NewService(dashboardRepo, hierarchyService, lg)

	// Handlers
	authHandler := auth.NewHandler(authService)
	authz := auth.NewCapabilityAuthorization(lg)
	assignmentHandler := assignment.NewHandler(assignmentService)
	registrationHandler := registration.NewHandler(registrationService)
	locationHandler := location.NewHandler(locationService)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	rest.RegisterAllRoutes(router, db.DB, authHandler, authz, assignmentHandler, registrationHandler, locationHandler, dashboardHandler, lg)

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		Router: router,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
