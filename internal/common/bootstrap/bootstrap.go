package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/AlibekovAA/task-manager/internal/auth/http"
	authservice "github.com/AlibekovAA/task-manager/internal/auth/service"
	"github.com/AlibekovAA/task-manager/internal/common/clock"
	"github.com/AlibekovAA/task-manager/internal/common/config"
	commoncrypto "github.com/AlibekovAA/task-manager/internal/common/crypto"
	"github.com/AlibekovAA/task-manager/internal/common/db"
	commonhttp "github.com/AlibekovAA/task-manager/internal/common/http"
	"github.com/AlibekovAA/task-manager/internal/common/jwtverify"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
	srv "github.com/AlibekovAA/task-manager/internal/common/server"
	"github.com/AlibekovAA/task-manager/internal/common/validation"
	taskhttp "github.com/AlibekovAA/task-manager/internal/task/http"
	taskrepo "github.com/AlibekovAA/task-manager/internal/task/repository"
	taskservice "github.com/AlibekovAA/task-manager/internal/task/service"
	userrepo "github.com/AlibekovAA/task-manager/internal/user/repository"
)

// Store holds whichever backend the config selected. Exactly one of Pool and
// SQL is set.
type Store struct {
	Driver string
	Pool   *pgxpool.Pool
	SQL    *sql.DB
}

func OpenStore(ctx context.Context, cfg config.Config, log *logger.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, log, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &Store{Driver: db.DriverPostgres, Pool: pool}, nil
	case config.DriverSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Infof("sqlite store opened at %s", cfg.SQLitePath)
		return &Store{Driver: db.DriverSQLite, SQL: sqlDB}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

// Migrate runs a goose command against the store. Postgres gets a short-lived
// database/sql handle since the pool speaks pgx natively.
func (s *Store) Migrate(ctx context.Context, cfg config.Config, command string, log *logger.Logger) error {
	if s.SQL != nil {
		return db.Migrate(ctx, s.SQL, s.Driver, command, log)
	}

	sqlDB, err := db.OpenPostgresSQL(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return db.Migrate(ctx, sqlDB, s.Driver, command, log)
}

func (s *Store) Close() error {
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.SQL != nil {
		return s.SQL.Close()
	}
	return nil
}

func (s *Store) repositories() (userrepo.Repository, taskrepo.Repository) {
	if s.Pool != nil {
		return userrepo.NewPgRepository(s.Pool), taskrepo.NewPgRepository(s.Pool)
	}
	return userrepo.NewSQLiteRepository(s.SQL), taskrepo.NewSQLiteRepository(s.SQL)
}

type App struct {
	Config  config.Config
	Log     *logger.Logger
	Store   *Store
	Handler http.Handler
}

// NewApp opens the store, applies migrations when AUTO_MIGRATE is set and
// wires the HTTP handler.
func NewApp(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	store, err := OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if cfg.AutoMigrate {
		if err := store.Migrate(ctx, cfg, db.MigrateUp, log); err != nil {
			_ = store.Close()
			return nil, err
		}
	}

	return &App{
		Config:  cfg,
		Log:     log,
		Store:   store,
		Handler: NewHandler(cfg, store, log),
	}, nil
}

func NewHandler(cfg config.Config, store *Store, log *logger.Logger) http.Handler {
	users, tasks := store.repositories()

	realClock := clock.NewRealClock()
	idGenerator := commoncrypto.NewUUIDGenerator()
	validator := validation.New()

	issuer := authservice.NewTokenIssuer(cfg.JWTSecret, idGenerator, cfg.AccessTokenTTL, realClock)
	credentials := authservice.NewCredentialService(
		users,
		commoncrypto.NewArgon2Hasher(),
		idGenerator,
		issuer,
		validator,
		realClock,
		log,
	)
	tokenValidator := authservice.NewTokenValidator(users, log)
	taskService := taskservice.NewTaskService(tasks, idGenerator, validator, realClock, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("GET /metrics", promhttp.Handler())
	authhttp.Register(mux, credentials, cfg.RequestTimeout, log)
	taskhttp.Register(mux, taskService, jwtverify.Middleware(cfg.JWTSecret, tokenValidator, log), cfg.RequestTimeout, log)

	return commonhttp.BuildBaseHandler(log, mux)
}

func (a *App) ShutdownHooks() []srv.ShutdownHook {
	return []srv.ShutdownHook{
		func(ctx context.Context) error {
			a.Log.Infof("closing %s store", a.Store.Driver)
			return a.Store.Close()
		},
	}
}

func NewLogger(cfg config.Config, serviceName string) (*logger.Logger, error) {
	return logger.New(cfg.LogDir, serviceName, cfg.LogLevel)
}
