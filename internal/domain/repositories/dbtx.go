package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// DBTX is the read-only subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx the
// executor needs. Tests substitute their own implementation.
type DBTX interface {
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
}
