// Package module wires the export pipeline into the API and the CLI using modkit
package module

import (
	"context"
	"fmt"

	"orderexport/internal/adapters/blob"
	"orderexport/internal/adapters/orders/sqlsource"
	modkit "orderexport/internal/modkit"
	"orderexport/internal/modkit/httpkit"
	exporthttp "orderexport/internal/services/export/http"
	"orderexport/internal/services/export/domain"
	"orderexport/internal/services/export/service"
)

// Module implements the export module
type Module struct {
	b     modkit.Built
	svc   *service.Service
	ports any
}

// Ports declares collaborators a caller may inject instead of building them from config
type Ports struct {
	Source domain.OrderSource
	Sink   domain.Sink
}

// openers are seams over collaborator construction
var (
	openSink = func(ctx context.Context, o blob.Options) (domain.Sink, error) { return blob.Open(ctx, o) }
	openSrc  = openSource
)

// New constructs the export module; invalid configuration panics at boot
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("export"),
	}, opts...)...)

	o := FromConfig(deps.Cfg)
	o.Table = sqlsource.TableFromConfig(deps.Cfg, sqlsource.Dialect(o.Source))

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	ctx := context.Background()
	if injected.Source == nil {
		if err := o.Validate(); err != nil {
			panic(fmt.Sprintf("export module: %v", err))
		}
		src, err := openSrc(ctx, deps, o)
		if err != nil {
			panic(fmt.Sprintf("export module: %v", err))
		}
		injected.Source = src
	}
	if injected.Sink == nil {
		sink, err := openSink(ctx, o.Storage)
		if err != nil {
			panic(fmt.Sprintf("export module: %v", err))
		}
		injected.Sink = sink
	}

	svc := service.New(service.Options{
		Source:      injected.Source,
		Sink:        injected.Sink,
		Folder:      o.Folder,
		RecentLimit: o.RecentLimit,
		Metrics:     deps.Metrics,
		Tracer:      deps.Tracer,
	})

	m := &Module{b: b, svc: svc, ports: adaptRunPort{svc: svc}}

	external := b.Register
	m.b.Register = func(r httpkit.Router) {
		exporthttp.Register(r, m.svc)
		external(r)
	}
	return m
}

// MountRoutes mounts the trigger under the module prefix, or directly when there is none
func (m *Module) MountRoutes(r httpkit.Router) { m.b.Mount(r) }

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }
