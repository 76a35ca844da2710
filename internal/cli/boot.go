package cli

import (
	"context"
	"errors"

	"orderexport/internal/platform/config"
	"orderexport/internal/platform/logger"
	"orderexport/internal/platform/metrics"
	"orderexport/internal/platform/store"
	"orderexport/internal/platform/tracing"

	"github.com/prometheus/client_golang/prometheus"
)

// runtime is the process wide plumbing every command opens once
type runtime struct {
	cfg   config.Conf
	log   *logger.Logger
	store *store.Store
	trace *tracing.Provider
	reg   *prometheus.Registry
}

func boot(ctx context.Context) (*runtime, error) {
	cfg := config.New()
	log := logger.Get()

	st, err := store.Open(ctx, store.FromConfig(cfg, "orderexport"), store.WithLogger(*log))
	if err != nil {
		return nil, err
	}

	tp, err := tracing.NewProvider(ctx, tracing.FromConfig(cfg))
	if err != nil {
		_ = st.Close(ctx)
		return nil, err
	}

	return &runtime{cfg: cfg, log: log, store: st, trace: tp, reg: metrics.NewRegistry()}, nil
}

// close flushes spans and releases the mirrors
func (rt *runtime) close(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	return errors.Join(rt.trace.Shutdown(ctx), rt.store.Close(ctx))
}
