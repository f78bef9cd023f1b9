package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/AlibekovAA/task-manager/internal/common/db/migrations"
	"github.com/AlibekovAA/task-manager/internal/common/logger"
	"github.com/AlibekovAA/task-manager/internal/observability/metrics"
)

const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

// goose keeps its dialect, base FS and logger in package state.
var gooseMu sync.Mutex

type gooseLogger struct {
	log *logger.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Infof("migrations: "+format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatalf("migrations: "+format, v...)
}

// OpenPostgresSQL opens a database/sql handle over the pgx driver. goose
// needs database/sql; repositories use pgxpool.
func OpenPostgresSQL(ctx context.Context, databaseURL string) (*sql.DB, error) {
	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres db: %w", err)
	}
	return sqlDB, nil
}

func Migrate(ctx context.Context, sqlDB *sql.DB, driver, command string, log *logger.Logger) error {
	var dialect goose.Dialect
	switch driver {
	case DriverPostgres:
		dialect = goose.DialectPostgres
	case DriverSQLite:
		dialect = goose.DialectSQLite3
	default:
		return fmt.Errorf("unsupported migration driver %q", driver)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if log != nil {
		goose.SetLogger(gooseLogger{log: log})
	} else {
		goose.SetLogger(goose.NopLogger())
	}

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}

	var err error
	switch command {
	case MigrateUp:
		err = goose.UpContext(ctx, sqlDB, driver)
	case MigrateDown:
		err = goose.DownContext(ctx, sqlDB, driver)
	case MigrateStatus:
		err = goose.StatusContext(ctx, sqlDB, driver)
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migrate %s (%s): %w", command, driver, err)
	}

	metrics.DBMigrationsApplied.WithLabelValues(driver, command).Inc()
	return nil
}
