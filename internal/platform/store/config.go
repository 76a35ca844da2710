package store

import (
	"time"

	"orderexport/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	PingTimeout time.Duration // default 5s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled     bool
	URL         string
	DialTimeout time.Duration
}

// FromConfig reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_* keys
// a backend is enabled when its DBURL is set
func FromConfig(cfg config.Conf, appName string) Config {
	pgc := cfg.Prefix("SERVICE_PGSQL_")
	chc := cfg.Prefix("SERVICE_CLICKHOUSE_")

	return Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:     pgc.Has("DBURL"),
			URL:         pgc.MayString("DBURL", ""),
			MaxConns:    int32(pgc.MayInt("MAX_CONNS", 4)),
			LogSQL:      pgc.MayBool("LOG_SQL", false),
			SlowQueryMs: pgc.MayInt("SLOW_MS", 500),
			PingTimeout: pgc.MayDuration("PING_TIMEOUT", 5*time.Second),
		},
		CH: CHConfig{
			Enabled:     chc.Has("DBURL"),
			URL:         chc.MayString("DBURL", ""),
			DialTimeout: chc.MayDuration("DIAL_TIMEOUT", 5*time.Second),
		},
	}
}
