package postgres

import (
	"VaultMind/backend/go/internal/config"
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/lib/pq"
)

var (
	dbInstance *sql.DB
	once       sync.Once
	initErr    error
)

// GetDB initializes and returns the Postgres connection pool using the
// singleton pattern, so the connection is established once per process.
func GetDB(cfg *config.PostgresConfig) (*sql.DB, error) {
	once.Do(func() {
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
			cfg.Username,
			cfg.Password,
			cfg.Address,
			cfg.Database,
			sslMode,
		)

		db, err := sql.Open("postgres", dsn)
		if err != nil {
			initErr = fmt.Errorf("failed to open postgres connection: %w", err)
			return
		}

		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MaxIdleConns)
		}

		if err := db.Ping(); err != nil {
			initErr = fmt.Errorf("failed to connect to postgres: %w", err)
			return
		}

		dbInstance = db
	})

	return dbInstance, initErr
}

// Close safely closes the singleton connection pool.
func Close() error {
	if dbInstance != nil {
		return dbInstance.Close()
	}
	return nil
}

// HealthCheck verifies the Postgres connection is alive.
func HealthCheck(ctx context.Context) error {
	if dbInstance == nil {
		return fmt.Errorf("postgres connection is not initialized")
	}
	return dbInstance.PingContext(ctx)
}
