package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "orderexport/internal/platform/net/http"
)

func TestMountProfiler_Enabled(t *testing.T) {
	r := phttp.NewServer(phttp.ServerConfig{}).Router()
	phttp.MountProfiler(r, "/debug", true)

	for _, p := range []string{"/debug/pprof/", "/debug/pprof/cmdline"} {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", p, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 at %s, got %d", p, rec.Code)
		}
	}
}

func TestMountProfiler_Disabled(t *testing.T) {
	r := phttp.NewServer(phttp.ServerConfig{}).Router()
	phttp.MountProfiler(r, "/debug", false)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/debug/pprof/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when disabled, got %d", rec.Code)
	}
}
