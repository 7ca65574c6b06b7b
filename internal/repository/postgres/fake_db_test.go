package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRows is an in-memory pgx.Rows
type fakeRows struct {
	columns []string
	data    [][]interface{}
	pos     int
	err     error // returned by Err() after iteration
	closed  bool
}

func newFakeRows(columns []string, data ...[]interface{}) *fakeRows {
	return &fakeRows{columns: columns, data: data, pos: -1}
}

func (r *fakeRows) Close()                        { r.closed = true }
func (r *fakeRows) Err() error                    { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }
func (r *fakeRows) RawValues() [][]byte           { return nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fds := make([]pgconn.FieldDescription, len(r.columns))
	for i, c := range r.columns {
		fds[i] = pgconn.FieldDescription{Name: c}
	}
	return fds
}

func (r *fakeRows) Next() bool {
	if r.closed {
		return false
	}
	r.pos++
	if r.pos >= len(r.data) {
		r.closed = true
		return false
	}
	return true
}

// Scan hands RowScanner destinations the row itself, as pgx does for
// pgx.RowToMap. Other destinations must be *interface{}.
func (r *fakeRows) Scan(dest ...interface{}) error {
	if len(dest) == 1 {
		if rs, ok := dest[0].(pgx.RowScanner); ok {
			return rs.ScanRow(r)
		}
	}
	row := r.data[r.pos]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		p, ok := d.(*interface{})
		if !ok {
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
		*p = row[i]
	}
	return nil
}

func (r *fakeRows) Values() ([]interface{}, error) {
	return r.data[r.pos], nil
}

// fakeDB records queries and replays canned results
type fakeDB struct {
	mu    sync.Mutex
	calls []fakeCall
	rows  *fakeRows
	err   error
}

type fakeCall struct {
	sql  string
	args []interface{}
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.calls = append(db.calls, fakeCall{sql: sql, args: args})
	if db.err != nil {
		return nil, db.err
	}
	if db.rows == nil {
		return newFakeRows(nil), nil
	}
	return db.rows, nil
}
