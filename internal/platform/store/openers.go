package store

import (
	"context"
	"time"

	perr "orderexport/internal/platform/errors"
	chx "orderexport/internal/platform/store/ch"
	"orderexport/internal/platform/store/pg"
)

var (
	openPGClient = pg.Open
	openCHClient = chx.Open
)

// openPG opens pg, pings the pool once and wraps it with the sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (RowQuerier, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := openPGClient(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracer, nil)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeConfig, "open postgres pool")
	}

	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// ping the pool directly so the boot check leaves no trace line
	if err := p.Ping(pingCtx); err != nil {
		p.Close()
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "postgres ping failed")
	}
	return newPGAdapter(p), nil
}

func openCH(ctx context.Context, cfg Config, _ *Store) (Clickhouse, error) {
	c, err := openCHClient(ctx, chx.Config{
		URL:         cfg.CH.URL,
		DialTimeout: cfg.CH.DialTimeout,
		ClientInfo:  chx.BuildClientInfo(cfg.AppName, "orders"),
	})
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "open clickhouse")
	}
	return newCHAdapter(c), nil
}
