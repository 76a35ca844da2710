package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"orderexport/internal/platform/store/ch"
	"orderexport/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRows is an in-memory result set usable as store.Rows, pgx.Rows and ch.Rows
type fakeRows struct {
	cols     []string
	data     [][]any
	idx      int
	err      error
	closeErr error
	closed   bool
}

func newFakeRows(cols []string, data ...[]any) *fakeRows {
	return &fakeRows{cols: cols, data: data, idx: -1}
}

func (r *fakeRows) Next() bool {
	if r.err != nil {
		return false
	}
	r.idx++
	return r.idx < len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.idx < 0 || r.idx >= len(r.data) {
		return errors.New("scan out of range")
	}
	row := r.data[r.idx]
	if len(row) != len(dest) {
		return fmt.Errorf("dest len %d, row len %d", len(dest), len(row))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Columns() []string { return r.cols }

// pgxRows adapts fakeRows to pgx.Rows
type pgxRows struct{ *fakeRows }

func (r pgxRows) Close()                        { r.closed = true }
func (r pgxRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r pgxRows) FieldDescriptions() []pgconn.FieldDescription {
	out := make([]pgconn.FieldDescription, len(r.cols))
	for i, c := range r.cols {
		out[i] = pgconn.FieldDescription{Name: c}
	}
	return out
}
func (r pgxRows) Values() ([]any, error) { return r.data[r.idx], nil }
func (r pgxRows) RawValues() [][]byte    { return nil }
func (r pgxRows) Conn() *pgx.Conn        { return nil }

// chRows adapts fakeRows to ch.Rows
type chRows struct{ *fakeRows }

func (r chRows) Close() error { r.closed = true; return r.closeErr }

// storeRows adapts fakeRows to store.Rows
type storeRows struct{ *fakeRows }

func (r storeRows) Close() { r.closed = true }

type scanRow func(dest ...any) error

func (f scanRow) Scan(dest ...any) error { return f(dest...) }

// fakePool implements pgPool
type fakePool struct {
	rows     *fakeRows
	queryErr error
	rowScan  func(dest ...any) error
	lastSQL  string
	lastArgs []any
}

func (p *fakePool) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	p.lastSQL, p.lastArgs = sql, args
	if p.queryErr != nil {
		return nil, p.queryErr
	}
	return pgxRows{p.rows}, nil
}

func (p *fakePool) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	p.lastSQL, p.lastArgs = sql, args
	return scanRow(p.rowScan)
}

// fakeCH implements chClient
type fakeCH struct {
	rows     *fakeRows
	queryErr error
	pingErr  error
	closed   bool
}

func (c *fakeCH) Query(context.Context, string, ...any) (ch.Rows, error) {
	if c.queryErr != nil {
		return nil, c.queryErr
	}
	return chRows{c.rows}, nil
}
func (c *fakeCH) Ping(context.Context) error { return c.pingErr }
func (c *fakeCH) Close() error               { c.closed = true; return nil }

// recTracer collects query events
type recTracer struct{ events []pg.QueryEvent }

func (r *recTracer) OnQuery(_ context.Context, ev pg.QueryEvent) { r.events = append(r.events, ev) }

// fakeQuerier implements RowQuerier and Pinger over store rows
type fakeQuerier struct {
	rows    *fakeRows
	err     error
	pingErr error
	closed  bool
}

func (q *fakeQuerier) Query(context.Context, string, ...any) (Rows, error) {
	if q.err != nil {
		return nil, q.err
	}
	return storeRows{q.rows}, nil
}
func (q *fakeQuerier) QueryRow(context.Context, string, ...any) Row {
	return scanRow(func(dest ...any) error {
		if q.err != nil {
			return q.err
		}
		if !q.rows.Next() {
			return pgx.ErrNoRows
		}
		return q.rows.Scan(dest...)
	})
}
func (q *fakeQuerier) Ping(context.Context) error { return q.pingErr }
func (q *fakeQuerier) Close() error               { q.closed = true; return nil }
