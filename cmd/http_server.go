package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/internal/activity"
	activityPostgres "github.com/vnphone/staff-portal/internal/activity/postgres"
	"github.com/vnphone/staff-portal/internal/auth"
	"github.com/vnphone/staff-portal/internal/catalog"
	"github.com/vnphone/staff-portal/internal/core/events"
	"github.com/vnphone/staff-portal/internal/portal"
	"github.com/vnphone/staff-portal/internal/quote"
	"github.com/vnphone/staff-portal/internal/staff"
	staffPostgres "github.com/vnphone/staff-portal/internal/staff/postgres"
	"github.com/vnphone/staff-portal/internal/transport"
	"github.com/vnphone/staff-portal/internal/transport/rest"
	"github.com/vnphone/staff-portal/internal/transport/swagger"
	"github.com/vnphone/staff-portal/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle portal and API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Gorm     *gorm.DB
	Redis    *redis.Client
	EventBus *events.EventBus
	Router   *chi.Mux
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "env", deps.Config.Env)

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
		// let pending activity writes land before the pool closes
		if err := deps.EventBus.Wait(ctx); err != nil {
			deps.Logger.Error("Activity writes still pending at shutdown", "error", err)
		}
		deps.close()
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			deps.close()
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func (d *Dependencies) close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error("Redis close error", "error", err)
		}
	}
	if err := d.DB.Close(); err != nil {
		d.Logger.Error("Database close error", "error", err)
	}
}

func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config
	lg := deps.Logger

	if _, err := swagger.Validate(context.Background()); err != nil {
		return err
	}

	codec, err := auth.NewTokenCodec(cfg.Security.JWTSecret)
	if err != nil {
		return fmt.Errorf("token codec: %w", err)
	}
	cookie := auth.SessionCookie{Secure: cfg.Security.CookieSecure}
	base := transport.NewBaseHandler(lg)

	// activity log
	activityRepo := activityPostgres.NewActivityRepository(deps.Gorm, deps.DB)
	recorder := activity.NewRecorder(deps.EventBus, activityRepo, lg)
	activityService := activity.NewService(activityRepo, recorder, lg)

	// staff accounts and sessions
	staffRepo := staffPostgres.NewStaffRepository(deps.Gorm)
	staffService := staff.NewService(staffRepo, recorder, lg)
	sessions := auth.NewSessionResolver(staffRepo, codec, recorder, lg)
	gate := auth.NewGate(codec, cookie, sessions, auth.GateConfig{
		RecheckSession: cfg.Security.RecheckSession,
	}, lg)

	// catalog
	checks := map[string]rest.Pinger{"postgres": deps.DB}
	var cache catalog.Cache = catalog.NewMemoryCache()
	if deps.Redis != nil {
		redisCache := catalog.NewRedisCache(deps.Redis, cfg.Cache.KeyPrefix)
		checks["redis"] = rest.PingFunc(redisCache.Ping)
		cache = redisCache
	}
	catalogService := newCatalogService(cfg, cache, lg)

	quoteService := quote.NewService(catalogService, recorder, lg)
	portalService := portal.NewService(sessions, staffService, recorder, cfg.Catalog.SheetEditURL(), lg)

	rest.RegisterAllRoutes(deps.Router, rest.Handlers{
		Gate:     gate,
		Auth:     auth.NewHandler(base, sessions, cookie),
		Staff:    staff.NewHandler(base, staffService),
		Catalog:  catalog.NewHandler(base, catalogService),
		Activity: activity.NewHandler(base, activityService),
		Quote:    quote.NewHandler(base, quoteService),
		Portal:   portal.NewHandler(base, portalService, cookie),
		Health:   rest.NewHealthHandler(checks),
		Base:     base,
		Logger:   lg,
	})
	return nil
}

func newCatalogService(cfg *internal.Config, cache catalog.Cache, lg *slog.Logger) *catalog.Service {
	source := catalog.NewSheetsSource(catalog.SheetsConfig{
		BaseURL: cfg.Catalog.BaseURL,
		SheetID: cfg.Catalog.SheetID,
		Timeout: cfg.Catalog.FetchTimeout,
	}, nil)

	return catalog.NewService(source, cache, catalog.Tabs{
		Cash:        cfg.Catalog.CashTab,
		Installment: cfg.Catalog.InstallmentTab,
	}, cfg.Catalog.CacheTTL, lg)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	rdb, err := initRedis(config.Cache)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		Gorm:     gormDB,
		Redis:    rdb,
		EventBus: events.NewEventBus(lg),
		Router:   chi.NewRouter(),
	}, nil
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

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm shares the sqlx pool with gorm so both readers and writers see one connection budget.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
}

// initRedis returns nil when no address is configured.
func initRedis(cfg internal.CacheConfig) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.RedisAddr, err)
	}
	return rdb, nil
}
