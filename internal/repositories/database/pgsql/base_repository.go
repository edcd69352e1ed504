package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Pool is the subset of *pgxpool.Pool the repositories use.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool Pool
}
