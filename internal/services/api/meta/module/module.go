// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "orderexport/internal/modkit"
	"orderexport/internal/modkit/httpkit"
	str "orderexport/internal/platform/strings"

	metahttp "orderexport/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b         modkit.Built
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{b: b, startedAt: time.Now()}

	hd := metahttp.Deps{ServiceName: "orderexport", StartedAt: m.startedAt}
	if deps.Store != nil {
		// typed nils would read as configured, so only copy set backends
		if deps.Store.PG != nil {
			hd.PG = deps.Store.PG
		}
		if deps.Store.CH != nil {
			hd.CH = deps.Store.CH
		}
	}

	external := b.Register
	m.b.Register = func(r httpkit.Router) {
		metahttp.Register(r, hd)
		external(r)
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { m.b.Mount(r) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Prefix returns the mount prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
