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

	"github.com/frahmantamala/portfolio/internal"
	"github.com/frahmantamala/portfolio/internal/auth"
	"github.com/frahmantamala/portfolio/internal/budget"
	budgetPostgres "github.com/frahmantamala/portfolio/internal/budget/postgres"
	"github.com/frahmantamala/portfolio/internal/core/events"
	"github.com/frahmantamala/portfolio/internal/education"
	educationPostgres "github.com/frahmantamala/portfolio/internal/education/postgres"
	"github.com/frahmantamala/portfolio/internal/experience"
	experiencePostgres "github.com/frahmantamala/portfolio/internal/experience/postgres"
	"github.com/frahmantamala/portfolio/internal/project"
	projectPostgres "github.com/frahmantamala/portfolio/internal/project/postgres"
	"github.com/frahmantamala/portfolio/internal/transport"
	"github.com/frahmantamala/portfolio/internal/transport/middleware"
	"github.com/frahmantamala/portfolio/internal/transport/rest"
	"github.com/frahmantamala/portfolio/internal/transport/swagger"
	"github.com/frahmantamala/portfolio/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
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
	Config    *internal.Config
	DB        *sqlx.DB
	Gorm      *gorm.DB
	Router    *chi.Mux
	Logger    *slog.Logger
	EventBus  *events.EventBus
	Forwarder *events.AMQPForwarder
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
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
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			deps.close()
			os.Exit(1)
		}
	}

	deps.close()
	deps.Logger.Info("Server stopped")
}

func (d *Dependencies) close() {
	drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.EventBus.Drain(drainCtx); err != nil {
		d.Logger.Warn("Event handlers still running at shutdown", "error", err)
	}
	if d.Forwarder != nil {
		if err := d.Forwarder.Close(); err != nil {
			d.Logger.Error("AMQP close error", "error", err)
		}
	}
	if err := d.DB.Close(); err != nil {
		d.Logger.Error("Database close error", "error", err)
	}
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	deps := &Dependencies{
		Config:   config,
		DB:       db,
		Gorm:     gormDB,
		Router:   chi.NewRouter(),
		Logger:   log,
		EventBus: events.NewEventBus(log),
	}

	if config.Messaging.AMQPURL != "" {
		forwarder, err := events.DialAMQPForwarder(config.Messaging.AMQPURL, config.Messaging.AMQPExchange, log)
		if err != nil {
			deps.close()
			return nil, fmt.Errorf("failed to connect to AMQP: %w", err)
		}
		deps.Forwarder = forwarder
		deps.EventBus.SubscribeAll(events.BudgetEventTypes, forwarder.Handle)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	budgetOpts := []budget.Option{budget.WithDefaultCategories(defaultCategories(config.Budget))}
	if config.Observability.Metrics.Enabled {
		budgetOpts = append(budgetOpts, budget.WithRecorder(budget.NewMetrics(registry)))
	}
	budgetService := budget.NewService(budgetPostgres.NewBudgetRepository(gormDB), deps.EventBus, log, budgetOpts...)
	if config.Observability.Metrics.Enabled {
		// keep the gauges current without waiting for the next read
		deps.EventBus.SubscribeAll(events.BudgetEventTypes, budget.RefreshOnChange(budgetService))
	}

	guard, err := initGuard(config.Security, log)
	if err != nil {
		deps.close()
		return nil, err
	}

	doc, err := swagger.LoadSpec(context.Background(), config.Server.OpenAPIPath)
	if err != nil {
		deps.close()
		return nil, err
	}

	base := transport.NewBaseHandler(log)
	routes := rest.Routes{
		DB:             db.DB,
		Logger:         log,
		Guard:          guard,
		Budget:         budget.NewHandler(base, budgetService),
		Projects:       project.NewHandler(base, project.NewService(projectPostgres.NewProjectRepository(gormDB), log)),
		Experiences:    experience.NewHandler(base, experience.NewService(experiencePostgres.NewExperienceRepository(gormDB), log)),
		Educations:     education.NewHandler(base, education.NewService(educationPostgres.NewEducationRepository(gormDB), log)),
		AllowedOrigins: config.Server.AllowedOrigins,
		OpenAPI:        doc,
	}
	if config.Observability.Metrics.Enabled {
		routes.HTTPMetrics = middleware.NewHTTPMetrics(registry)
		routes.Gatherer = registry
		routes.MetricsPath = config.Observability.Metrics.Path
	}
	rest.RegisterAllRoutes(deps.Router, routes)

	return deps, nil
}

// initGuard returns a guard without a verifier when security is disabled,
// which leaves admin routes open. That is only meant for local development.
func initGuard(cfg internal.SecurityConfig, log *slog.Logger) (*auth.Guard, error) {
	base := transport.NewBaseHandler(log)
	if !cfg.Enabled {
		log.Warn("security disabled: admin routes are not protected")
		return auth.NewGuard(base, nil), nil
	}

	publicKey, err := cfg.GetPublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to load JWT public key: %w", err)
	}
	return auth.NewGuard(base, auth.NewVerifier(publicKey, cfg.Issuer)), nil
}

func defaultCategories(cfg internal.BudgetConfig) []budget.DefaultCategory {
	defaults := make([]budget.DefaultCategory, 0, len(cfg.DefaultCategories))
	for _, dc := range cfg.DefaultCategories {
		defaults = append(defaults, budget.DefaultCategory{
			Type:          budget.CategoryType(dc.Type),
			Name:          dc.Name,
			PlannedAmount: budget.Amount(dc.PlannedAmount),
		})
	}
	return defaults
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm puts gorm on top of the already configured pool so both share it.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
}
