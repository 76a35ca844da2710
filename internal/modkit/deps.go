package modkit

import (
	"orderexport/internal/platform/config"
	"orderexport/internal/platform/logger"
	"orderexport/internal/platform/store"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// Store holds the optional order mirrors, nil when none is configured
	Store *store.Store

	// Metrics is where modules register collectors, nil disables metrics
	Metrics prometheus.Registerer

	// Tracer is the run tracer, nil means no-op
	Tracer trace.Tracer
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional stores
func (d Deps) ZeroOK() bool { return true }
