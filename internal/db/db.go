// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/unclebandit/patoche-etl/internal/config"
	appErrors "github.com/unclebandit/patoche-etl/internal/errors"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Open connects to the configured store and verifies it with a ping.
// The pool is held to a single connection: the whole run is serial.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(cfg.DBDriver)
	if err != nil {
		return nil, Dialect{}, appErrors.NewStoreError(cfg.DBDriver, err)
	}

	dsn := DSN(cfg)
	switch dialect.Driver {
	case DriverSQLite:
		logger.Info("opening SQLite store", zap.String("path", cfg.DBPath))
	case DriverPostgres:
		logger.Info("opening PostgreSQL store",
			zap.String("host", cfg.DBHost),
			zap.String("port", cfg.DBPort),
			zap.String("database", cfg.DBName))
	}

	conn, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, Dialect{}, appErrors.NewStoreError(dialect.Driver, err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, Dialect{}, appErrors.NewStoreError(dialect.Driver, err)
	}

	logger.Info("connected to database", zap.String("driver", dialect.Driver))
	return conn, dialect, nil
}

// DSN builds the driver connection string for cfg.
func DSN(cfg *config.Config) string {
	if d, _ := DialectFor(cfg.DBDriver); d.Driver == DriverPostgres {
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(cfg.DBUser, cfg.DBPassword),
			Host:   fmt.Sprintf("%s:%s", cfg.DBHost, cfg.DBPort),
			Path:   cfg.DBName,
		}
		q := u.Query()
		q.Set("sslmode", cfg.DBSSLMode)
		u.RawQuery = q.Encode()
		return u.String()
	}
	return "file:" + cfg.DBPath + "?_foreign_keys=on"
}
