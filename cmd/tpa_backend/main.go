package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/tripmates/trip_planner_app/internal/core/domain"
	portssvc "github.com/tripmates/trip_planner_app/internal/core/ports/services"
	"github.com/tripmates/trip_planner_app/internal/core/services"
	"github.com/tripmates/trip_planner_app/internal/handlers"
	"github.com/tripmates/trip_planner_app/internal/middleware"
	"github.com/tripmates/trip_planner_app/internal/platform/config"
	"github.com/tripmates/trip_planner_app/internal/platform/events"
	"github.com/tripmates/trip_planner_app/internal/repositories/database/pgsql"
	"github.com/tripmates/trip_planner_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Trip Planner API
// @version 1.0
// @description Backend for collaborative trip planning: rooms, shared expenses, itineraries and documents.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	registerCustomValidators(logger)

	// The public room endpoints accept passwords, so they sit behind an
	// in-memory IP rate limiter.
	rate, err := limiter.NewRateFromFormatted(cfg.RoomRateLimit)
	if err != nil {
		logger.Error("Invalid ROOM_RATE_LIMIT", slog.String("error", err.Error()))
		os.Exit(1)
	}
	publicLimiter := limiter.New(memory.NewStore(), rate)

	// Optional AMQP publisher; the API runs fine without a broker.
	var publisher portssvc.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to connect to AMQP broker, event publishing disabled", slog.String("error", err.Error()))
		} else {
			defer client.Close()
			publisher = client
			logger.Info("AMQP event publisher connected", slog.String("exchange", cfg.AMQPExchange))
		}
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	container := services.NewContainer(&repos, services.TokenConfig{
		Secret:         cfg.JWTSecret,
		ExpiryDuration: cfg.JWTExpiryDuration,
		Issuer:         cfg.JWTIssuer,
	}, publisher)

	handlers.RegisterRoutes(r, cfg, container, publicLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// registerCustomValidators hooks domain validation rules into gin's binding layer.
func registerCustomValidators(logger *slog.Logger) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		logger.Warn("Could not access gin validator engine, custom validators disabled")
		return
	}
	err := v.RegisterValidation("expensecategory", func(fl validator.FieldLevel) bool {
		return domain.ExpenseCategory(fl.Field().String()).IsValid()
	})
	if err != nil {
		logger.Error("Failed to register expensecategory validator", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies any pending schema migrations before the server
// starts taking traffic. Uses a temporary database/sql connection via the
// pgx stdlib driver so the main pool stays untouched.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
