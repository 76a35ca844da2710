// Package api composes the HTTP surface: the export trigger, meta, metrics, docs and pprof
package api

import (
	"time"

	"orderexport/internal/modkit"
	"orderexport/internal/modkit/httpkit"
	"orderexport/internal/modkit/module"
	"orderexport/internal/modkit/swaggerkit"
	"orderexport/internal/platform/config"
	"orderexport/internal/platform/logger"
	"orderexport/internal/platform/metrics"
	phttp "orderexport/internal/platform/net/http"
	"orderexport/internal/platform/net/middleware"
	"orderexport/internal/platform/store"

	"orderexport/internal/services/api/docs"
	metamod "orderexport/internal/services/api/meta/module"
	exportmod "orderexport/internal/services/export/module"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// Options are the API options
type Options struct {
	Config   config.Conf
	Store    *store.Store
	Logger   *logger.Logger
	Registry *prometheus.Registry
	Tracer   trace.Tracer

	Timeout        time.Duration // request deadline, 0 means none; export runs never inherit it
	SlowRequest    time.Duration
	EnableSwagger  bool
	EnableProfiler bool
	BaseURL        string

	// Export options are appended to the export module defaults
	Export []modkit.Option
}

// OptionsFrom reads CORE_API_* keys; collaborators are left for the caller
func OptionsFrom(root config.Conf) Options {
	c := root.Prefix("CORE_API_")
	return Options{
		Config:         root,
		Timeout:        c.MayDuration("TIMEOUT", 0),
		SlowRequest:    c.MayDuration("SLOW", 30*time.Second),
		EnableSwagger:  c.MayBool("SWAGGER", false),
		EnableProfiler: c.MayBool("PROFILER", false),
		BaseURL:        c.MayString("BASE_URL", "/"),
	}
}

// Mount mounts the API onto r and returns the mounted modules
func Mount(r phttp.Router, opt Options) []modkit.Module {
	reg := opt.Registry
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	var log logger.Logger
	if opt.Logger != nil {
		log = *opt.Logger
	}

	deps := modkit.Deps{
		Log:     log,
		Cfg:     opt.Config,
		Store:   opt.Store,
		Metrics: reg,
		Tracer:  opt.Tracer,
	}

	// server wide chain
	r.Use(middleware.Defaults(opt.Timeout)...)
	r.Use(
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: opt.SlowRequest}),
		middleware.NewHTTPMetrics(reg).Middleware,
		middleware.Heartbeat("/health"),
	)

	mods := []modkit.Module{
		exportmod.New(deps, opt.Export...),
		metamod.New(deps),
	}

	r.Handle("/metrics", metrics.Handler(reg))
	swaggerkit.Mount(r, opt.EnableSwagger, docs.OpenAPI, opt.BaseURL)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name so the CLI can find them
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
	return mods
}
