package constants

import "time"

const (
	JWTSecretMinLength = 32

	SaltSizeBytes     = 16
	Argon2Time        = 1
	Argon2MemoryKiB   = 64 * 1024
	Argon2Threads     = 4
	Argon2KeyLength   = 32
	DefaultMaxRequest = 1 << 20

	DBPoolMaxConns        = 25
	DBPoolMinConns        = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second

	SQLiteBusyTimeoutMillis = 5000

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28

	ApplicationName = "task-manager"
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
