package repositories

import (
	"context"

	"icatdirect/internal/domain/models"
	"icatdirect/internal/queries"
)

// QueryExecutor runs catalog queries. Every call is a single read-only round
// trip; nothing is retried or cached.
type QueryExecutor interface {
	// RunNamed looks name up in the catalog and executes its template.
	// Fails with domain.ErrUnknownQuery before execution if name is absent.
	RunNamed(ctx context.Context, name queries.Name, args ...interface{}) ([]models.Row, error)

	// Format substitutes trusted fragments into a named template
	Format(name queries.Name, fragments ...string) (queries.Statement, error)

	// Run executes an already formatted statement, bypassing catalog lookup
	Run(ctx context.Context, stmt queries.Statement, args ...interface{}) ([]models.Row, error)
}
