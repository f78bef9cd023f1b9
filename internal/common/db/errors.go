package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"

	"github.com/AlibekovAA/task-manager/internal/observability/metrics"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const pgUniqueViolation = "23505"

func extractTableFromOperation(operation string) string {
	operation = strings.ToLower(operation)
	if strings.Contains(operation, "user") {
		return "users"
	}
	if strings.Contains(operation, "task") {
		return "tasks"
	}
	return "unknown"
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

// IsUniqueViolation reports whether err is a unique-constraint violation from
// either supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return isSQLiteUniqueViolation(err)
}

func HandleQueryError(err error, notFoundErr error, driver, operation string, startTime time.Time) error {
	MeasureQueryDuration(driver, operation, startTime)

	if err == nil {
		return nil
	}
	if IsNoRows(err) && notFoundErr != nil {
		return notFoundErr
	}
	recordQueryError(driver, operation, err)
	return fmt.Errorf("failed to %s: %w", operation, err)
}

func HandleExecError(err error, driver, operation string, startTime time.Time) error {
	MeasureQueryDuration(driver, operation, startTime)

	if err == nil {
		return nil
	}
	recordQueryError(driver, operation, err)
	return fmt.Errorf("failed to %s: %w", operation, err)
}

func MeasureQueryDuration(driver, operation string, startTime time.Time) {
	table := extractTableFromOperation(operation)
	metrics.DBQueryDurationSeconds.WithLabelValues(driver, operation, table).Observe(time.Since(startTime).Seconds())
}

func recordQueryError(driver, operation string, err error) {
	table := extractTableFromOperation(operation)
	metrics.DBQueryErrors.WithLabelValues(driver, operation, table, fmt.Sprintf("%T", err)).Inc()
}

// LikePattern builds a substring pattern for LIKE/ILIKE with '\' as the
// escape character.
func LikePattern(query string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(query) + "%"
}
