package service

import (
	"context"
	"errors"
	"testing"
	"time"

	perr "orderexport/internal/platform/errors"
	"orderexport/internal/platform/testkit"
	"orderexport/internal/services/export/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var noon = time.Date(2024, 6, 1, 12, 34, 56, 0, time.UTC)

type harness struct {
	svc   *Service
	src   *fakeSource
	sink  *fakeSink
	reg   *prometheus.Registry
	spans *tracetest.SpanRecorder
}

func newHarness(t *testing.T, src *fakeSource, folder string) harness {
	t.Helper()
	sink := newFakeSink()
	reg := prometheus.NewRegistry()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	svc := New(Options{
		Source:      src,
		Sink:        sink,
		Folder:      folder,
		RecentLimit: 50,
		Metrics:     reg,
		Tracer:      tp.Tracer("test"),
		Now:         func() time.Time { return noon },
		NewRunID:    func() string { return "run-1" },
	})
	return harness{svc: svc, src: src, sink: sink, reg: reg, spans: sr}
}

func TestRun_TwoOrders(t *testing.T) {
	t.Parallel()

	h := newHarness(t, &fakeSource{rs: orders("O1", "O2")}, "")
	rep, err := h.svc.Run(context.Background(), domain.RunInput{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := h.sink.objects["orders_2024-06-01.csv"]; got != "OrderID\nO1\nO2" {
		t.Fatalf("stored = %q", got)
	}
	if rep.RunID != "run-1" || rep.Mode != domain.ModeToday || rep.Rows != 2 || rep.Bytes != len("OrderID\nO1\nO2") {
		t.Fatalf("report = %+v", rep)
	}
	want := "Orders for 2024-06-01 have been written to orders_2024-06-01.csv in GCS bucket connector-bck"
	if rep.Summary() != want {
		t.Fatalf("summary = %q", rep.Summary())
	}

	f := h.src.filters[0]
	if f.Where() != `createdAt >= "2024-06-01T00:00:00Z" and createdAt <= "2024-06-01T23:59:59Z"` {
		t.Fatalf("where = %q", f.Where())
	}
}

func TestRun_EmptyResultStillStoresHeader(t *testing.T) {
	t.Parallel()

	h := newHarness(t, &fakeSource{rs: orders()}, "daily")
	rep, err := h.svc.Run(context.Background(), domain.RunInput{Mode: domain.ModeToday})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := h.sink.objects["daily/orders_2024-06-01.csv"]; got != "OrderID" {
		t.Fatalf("stored = %q", got)
	}
	if rep.Rows != 0 || rep.Destination != "daily/orders_2024-06-01.csv" {
		t.Fatalf("report = %+v", rep)
	}
}

func TestRun_RecentMode(t *testing.T) {
	t.Parallel()

	h := newHarness(t, &fakeSource{rs: orders("O9")}, "")
	if _, err := h.svc.Run(context.Background(), domain.RunInput{Mode: domain.ModeRecent}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	f := h.src.filters[0]
	if f.Bounded() || f.Sort != "lastModifiedAt desc" || f.Limit != 50 {
		t.Fatalf("filter = %+v", f)
	}

	if _, err := h.svc.Run(context.Background(), domain.RunInput{Mode: domain.ModeRecent, Limit: 5}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.src.filters[1].Limit != 5 {
		t.Fatalf("explicit limit ignored: %+v", h.src.filters[1])
	}
	if _, ok := h.sink.objects["orders_2024-06-01.csv"]; !ok {
		t.Fatalf("recent runs use the dated name")
	}
}

func TestRun_FetchFailureSkipsSink(t *testing.T) {
	t.Parallel()

	h := newHarness(t, &fakeSource{err: errors.New("403 insufficient_scope")}, "")
	rep, err := h.svc.Run(context.Background(), domain.RunInput{})
	testkit.MustCode(t, err, perr.ErrorCodeFetch)
	if perr.OpOf(err) != "fetch" {
		t.Fatalf("op = %q", perr.OpOf(err))
	}
	if h.sink.calls != 0 {
		t.Fatalf("sink called %d times after fetch failure", h.sink.calls)
	}
	if rep.RunID != "run-1" || rep.Day != "2024-06-01" {
		t.Fatalf("failure report = %+v", rep)
	}

	if got := testutil.ToFloat64(h.svc.m.runs.WithLabelValues("today", "failure")); got != 1 {
		t.Fatalf("failure runs = %v", got)
	}
	if got := testutil.ToFloat64(h.svc.m.stageFailures.WithLabelValues("fetch")); got != 1 {
		t.Fatalf("fetch failures = %v", got)
	}
}

func TestRun_SinkFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		code perr.ErrorCode
	}{
		{"plain error becomes store", errors.New("bucket gone"), perr.ErrorCodeStore},
		{"stage code is kept", perr.New(perr.ErrorCodeStage, "disk full"), perr.ErrorCodeStage},
		{"store code is kept", perr.New(perr.ErrorCodeStore, "403"), perr.ErrorCodeStore},
		{"bad name becomes store", perr.InvalidArgf("invalid object name"), perr.ErrorCodeStore},
	}
	for _, tc := range cases {
		h := newHarness(t, &fakeSource{rs: orders("O1")}, "")
		h.sink.err = tc.err
		rep, err := h.svc.Run(context.Background(), domain.RunInput{})
		testkit.MustCode(t, err, tc.code)
		if perr.OpOf(err) != "store" {
			t.Fatalf("%s: op = %q", tc.name, perr.OpOf(err))
		}
		if rep.RunID == "" {
			t.Fatalf("%s: run id missing on failure", tc.name)
		}
		if got := testutil.ToFloat64(h.svc.m.runs.WithLabelValues("today", "success")); got != 0 {
			t.Fatalf("%s: failure counted as success", tc.name)
		}
	}
}

func TestRun_UnknownModeFailsBeforeFetch(t *testing.T) {
	t.Parallel()

	h := newHarness(t, &fakeSource{rs: orders("O1")}, "")
	_, err := h.svc.Run(context.Background(), domain.RunInput{Mode: "yesterday"})
	testkit.MustCode(t, err, perr.ErrorCodeInvalidArgument)
	if h.src.calls != 0 || h.sink.calls != 0 {
		t.Fatalf("collaborators called: src=%d sink=%d", h.src.calls, h.sink.calls)
	}
}

func TestRun_TruncatedPageIsReported(t *testing.T) {
	t.Parallel()

	rs := orders("O1", "O2")
	rs.Total = 120
	h := newHarness(t, &fakeSource{rs: rs}, "")
	rep, err := h.svc.Run(context.Background(), domain.RunInput{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !rep.Truncated || rep.Rows != 2 {
		t.Fatalf("report = %+v", rep)
	}
}

func TestRun_MetricsAndSpans(t *testing.T) {
	t.Parallel()

	h := newHarness(t, &fakeSource{rs: orders("O1", "O2", "O3")}, "")
	if _, err := h.svc.Run(context.Background(), domain.RunInput{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := testutil.ToFloat64(h.svc.m.runs.WithLabelValues("today", "success")); got != 1 {
		t.Fatalf("success runs = %v", got)
	}
	if got := testutil.ToFloat64(h.svc.m.rows.WithLabelValues("today")); got != 3 {
		t.Fatalf("rows = %v", got)
	}
	if n, err := testutil.GatherAndCount(h.reg, "orderexport_run_duration_seconds"); err != nil || n != 1 {
		t.Fatalf("duration series = %d, %v", n, err)
	}

	names := map[string]bool{}
	for _, s := range h.spans.Ended() {
		names[s.Name()] = true
	}
	for _, want := range []string{"export.run", "export.filter", "export.fetch", "export.encode", "export.store"} {
		if !names[want] {
			t.Fatalf("missing span %q in %v", want, names)
		}
	}
}

func TestNew_RequiresCollaborators(t *testing.T) {
	t.Parallel()

	testkit.MustPanic(t, func() { New(Options{Sink: newFakeSink()}) })
	testkit.MustPanic(t, func() { New(Options{Source: &fakeSource{}}) })
	testkit.MustNotPanic(t, func() { New(Options{Source: &fakeSource{}, Sink: newFakeSink()}) })
}
