package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"icatdirect/internal/domain"
	"icatdirect/internal/domain/models"
	"icatdirect/internal/domain/repositories"
	"icatdirect/internal/queries"
)

// Executor implements repositories.QueryExecutor on top of pgx
type Executor struct {
	db      repositories.DBTX
	catalog *queries.Catalog
	metrics *queryMetrics
	logger  *slog.Logger
}

// NewExecutor creates a query executor.
// Metrics are registered on config.Registry when it is set.
func NewExecutor(config *RepositoryConfig) *Executor {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{
		db:      config.DB,
		catalog: config.Catalog,
		metrics: newQueryMetrics(config.Registry),
		logger:  logger,
	}
}

// RunNamed executes a catalog template that has no fragments.
// The argument count must match the template's declared parameters.
func (e *Executor) RunNamed(ctx context.Context, name queries.Name, args ...interface{}) ([]models.Row, error) {
	tmpl, err := e.catalog.Lookup(name)
	if err != nil {
		return nil, err
	}

	if len(tmpl.Fragments) > 0 {
		return nil, fmt.Errorf("query %s requires fragments %v: format it before running", name, tmpl.Fragments)
	}
	if len(args) != len(tmpl.Params) {
		return nil, fmt.Errorf("query %s expects %d parameters %v, got %d", name, len(tmpl.Params), tmpl.Params, len(args))
	}

	return e.query(ctx, queries.Statement{Name: name, SQL: tmpl.SQL}, args)
}

// Format substitutes trusted fragments into the named template
func (e *Executor) Format(name queries.Name, fragments ...string) (queries.Statement, error) {
	tmpl, err := e.catalog.Lookup(name)
	if err != nil {
		return queries.Statement{}, err
	}

	sql, err := tmpl.Format(fragments...)
	if err != nil {
		return queries.Statement{}, err
	}

	return queries.Statement{Name: name, SQL: sql}, nil
}

// Run executes a formatted statement without consulting the catalog
func (e *Executor) Run(ctx context.Context, stmt queries.Statement, args ...interface{}) ([]models.Row, error) {
	return e.query(ctx, stmt, args)
}

func (e *Executor) query(ctx context.Context, stmt queries.Statement, args []interface{}) ([]models.Row, error) {
	start := time.Now()
	rows, err := e.collect(ctx, stmt.SQL, args)
	elapsed := time.Since(start)

	e.metrics.observe(string(stmt.Name), elapsed, err)
	e.logger.Debug("icat query",
		"query", stmt.Name,
		"params", len(args),
		"rows", len(rows),
		"duration_ms", elapsed.Milliseconds(),
	)

	if err != nil {
		return nil, &domain.QueryExecutionError{Query: string(stmt.Name), Err: err}
	}
	return rows, nil
}

func (e *Executor) collect(ctx context.Context, sql string, args []interface{}) ([]models.Row, error) {
	rows, err := e.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}

	result := make([]models.Row, len(maps))
	for i, m := range maps {
		result[i] = models.Row(m)
	}
	return result, nil
}

var _ repositories.QueryExecutor = (*Executor)(nil)
