package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Analyses string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Analyses: fmt.Sprintf("%sanalyses", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// Supabase's transaction pooler (port 6543, PgBouncer) does not support
// prepared statements, so when that port is detected the pool switches to
// QueryExecModeCacheDescribe: extended protocol (needed for proper JSONB
// encoding) with statement *descriptions* cached instead of prepared
// statements. An explicit default_query_exec_mode in the connection string
// takes precedence. Direct connections (port 5432) keep the default
// prepared-statement mode.
//
// The fmt.Sprintf table-prefix interpolation used by repositories is safe
// with prepared statements: the SQL string is fixed before it reaches the
// database, so each environment simply gets its own statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
