package module

import (
	"net/http"
	"net/http/httptest"
	"testing"

	modkit "orderexport/internal/modkit"
	"orderexport/internal/platform/config"
	phttp "orderexport/internal/platform/net/http"
	"orderexport/internal/platform/store"

	"github.com/go-chi/chi/v5"
)

func TestMeta_MountsUnderPrefix(t *testing.T) {
	t.Parallel()

	m := New(modkit.Deps{Cfg: config.New(), Store: &store.Store{}})
	if m.Name() != "meta" || m.Ports() != nil {
		t.Fatalf("name = %q", m.Name())
	}

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	for _, p := range []string{"/meta/health", "/meta/ready", "/meta/version", "/meta/service"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d", p, rec.Code)
		}
	}
}

func TestMeta_CustomPrefix(t *testing.T) {
	t.Parallel()

	m := New(modkit.Deps{}, modkit.WithPrefix("/ops")).(*Module)
	if m.Prefix() != "/ops" {
		t.Fatalf("prefix = %q", m.Prefix())
	}
}
