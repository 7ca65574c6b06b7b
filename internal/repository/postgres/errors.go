package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgErrorCode returns the SQLSTATE of a PostgreSQL error, or "" for other errors
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsPgQueryCanceled checks if the query was canceled by the server or the caller
func IsPgQueryCanceled(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	// 57014 = query_canceled
	return pgErrorCode(err) == "57014"
}

// IsPgReadOnlyViolation checks if a statement tried to write through a read-only session
func IsPgReadOnlyViolation(err error) bool {
	// 25006 = read_only_sql_transaction
	return pgErrorCode(err) == "25006"
}

// queryStatus labels an execution result for metrics
func queryStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsPgQueryCanceled(err):
		return "canceled"
	case IsPgReadOnlyViolation(err):
		return "read_only"
	case pgErrorCode(err) != "":
		return pgErrorCode(err)
	default:
		return "error"
	}
}
