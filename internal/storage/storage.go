package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finora-server/internal/config"
)

// Storage exposes the tables over the connection pool and opens writers.
type Storage struct {
	Tables
	DB bob.DB

	sqlDB *sql.DB
}

// ConnectionString builds the PostgreSQL URL for env.
func ConnectionString(env *config.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(env.PostgresUsername, env.PostgresPassword),
		Host:     net.JoinHostPort(env.PostgresAddress, env.PostgresPort),
		Path:     "/" + env.PostgresDB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// NewStorage opens the pool with the configured driver and verifies it.
func NewStorage(ctx context.Context, env *config.Config) (*Storage, error) {
	db, err := sql.Open(env.PostgresDriver, ConnectionString(env))
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}

	return New(db), nil
}

// New wraps an open database.
func New(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	return &Storage{
		Tables: NewTables(bobDB),
		DB:     bobDB,
		sqlDB:  db,
	}
}

// Write starts a database transaction and returns the tables bound to it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}

// Ping checks that the database answers.
func (s *Storage) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.sqlDB.Close()
}
