package store

import (
	"context"
	"errors"
	"testing"
)

func TestPGAdapter_QueryWrapsRowsAndTraces(t *testing.T) {
	t.Parallel()

	pool := &fakePool{rows: newFakeRows([]string{"id"}, []any{"O1"}, []any{"O2"})}
	tr := &recTracer{}
	a := &pgAdapter{pool: pool, tracer: tr, slowMs: -1}

	rs, err := a.Query(context.Background(), "SELECT id FROM orders WHERE created_at >= $1", "x")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rs.Close()

	if cols := rs.Columns(); len(cols) != 1 || cols[0] != "id" {
		t.Fatalf("columns = %v", cols)
	}
	var got []string
	for rs.Next() {
		var id string
		if err := rs.Scan(&id); err != nil {
			t.Fatalf("scan: %v", err)
		}
		got = append(got, id)
	}
	if len(got) != 2 || got[0] != "O1" || got[1] != "O2" {
		t.Fatalf("ids = %v", got)
	}

	if len(tr.events) != 1 {
		t.Fatalf("events = %d, want 1", len(tr.events))
	}
	ev := tr.events[0]
	if ev.SQL != pool.lastSQL || ev.Err != nil || ev.Slow {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestPGAdapter_QueryErrorIsTraced(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	tr := &recTracer{}
	a := &pgAdapter{pool: &fakePool{queryErr: boom}, tracer: tr}

	if _, err := a.Query(context.Background(), "SELECT 1"); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(tr.events) != 1 || !errors.Is(tr.events[0].Err, boom) {
		t.Fatalf("events = %+v", tr.events)
	}
}

func TestPGAdapter_QueryRowTracesAfterScan(t *testing.T) {
	t.Parallel()

	tr := &recTracer{}
	pool := &fakePool{rowScan: func(dest ...any) error {
		*(dest[0].(*int)) = 1
		return nil
	}}
	a := &pgAdapter{pool: pool, tracer: tr, slowMs: 0}

	r := a.QueryRow(context.Background(), "SELECT 1")
	if len(tr.events) != 0 {
		t.Fatalf("traced before scan")
	}
	var one int
	if err := r.Scan(&one); err != nil || one != 1 {
		t.Fatalf("scan: %v %d", err, one)
	}
	if len(tr.events) != 1 || !tr.events[0].Slow {
		t.Fatalf("slowMs=0 should flag every query slow: %+v", tr.events)
	}
}

func TestPGAdapter_PingAndClose(t *testing.T) {
	t.Parallel()

	closed := false
	a := &pgAdapter{
		pool:  &fakePool{rowScan: func(...any) error { return nil }},
		close: func() { closed = true },
	}
	if err := a.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := a.Close(); err != nil || !closed {
		t.Fatalf("close: %v closed=%v", err, closed)
	}

	var nilAdapter *pgAdapter
	if err := nilAdapter.Ping(context.Background()); err == nil {
		t.Fatalf("expected error on nil adapter")
	}
}
