package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdle     time.Duration
	ConnMaxLifetime time.Duration

	// PingTimeout bounds the startup wait for the database to come up.
	// Zero means the default.
	PingTimeout time.Duration
}

// Logger receives connection-retry progress during startup.
type Logger interface {
	Info(msg string)
}

const defaultPingTimeout = 30 * time.Second

// NewPostgres opens a pool and blocks until the database answers a ping,
// retrying with backoff so the API survives the database starting second.
func NewPostgres(cfg PostgresConfig, logger Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdle)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingTimeout := cfg.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = defaultPingTimeout
	}
	deadline := time.Now().Add(pingTimeout)
	backoff := 500 * time.Millisecond
	for {
		err := db.Ping()
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			db.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		if logger != nil {
			logger.Info(fmt.Sprintf("postgres not ready yet: %v", err))
		}
		time.Sleep(backoff)
		if backoff < 5*time.Second {
			backoff *= 2
		}
	}
}
