package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

type DB struct {
	Pool   *pgxpool.Pool
	logger *zerolog.Logger
}

// New opens a lazy pool; connections are made on first use. A nil logger
// discards output.
func New(ctx context.Context, config Config, logger *zerolog.Logger) (*DB, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	pgPool, err := pgxpool.New(ctx, config.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{
		Pool:   pgPool,
		logger: logger,
	}, nil
}

func (c *Config) ConnectionString() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	port := c.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, port, c.Database, sslMode)
}

func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

func (db *DB) Close() {
	db.Pool.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS evaluation_results (
	id          TEXT PRIMARY KEY,
	confidence  DOUBLE PRECISION NOT NULL,
	verdict     TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS evaluation_stages (
	result_id   TEXT NOT NULL REFERENCES evaluation_results(id) ON DELETE CASCADE,
	position    INT NOT NULL,
	name        TEXT NOT NULL,
	score       DOUBLE PRECISION NOT NULL,
	reason      TEXT NOT NULL,
	duration_ns BIGINT NOT NULL,
	PRIMARY KEY (result_id, position)
);`

// EnsureSchema creates the result tables when they are missing.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
