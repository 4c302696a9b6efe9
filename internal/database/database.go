package database

import (
	"context"
	"fmt"
	"time"

	"lingo-quiz/internal/config"
	"lingo-quiz/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// DriverName is the database/sql driver registered by pgx's stdlib package.
const DriverName = "pgx"

// NewSQLXPostgresDB opens a pooled connection to Postgres and verifies it with a ping.
func NewSQLXPostgresDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open(DriverName, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if cfg.DB.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	logger.Get().Info("Connected to postgres",
		zap.String("host", cfg.DB.Host),
		zap.Int("port", cfg.DB.Port),
		zap.String("database", cfg.DB.DBName),
	)
	return db, nil
}
