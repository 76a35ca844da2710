package sqlsource

import "orderexport/internal/platform/config"

// TableFromConfig reads the mirror table name for d
// SERVICE_PGSQL_ORDERS_TABLE or SERVICE_CLICKHOUSE_ORDERS_TABLE
func TableFromConfig(cfg config.Conf, d Dialect) string {
	switch d {
	case ClickHouse:
		return cfg.Prefix("SERVICE_CLICKHOUSE_").MayString("ORDERS_TABLE", DefaultTable)
	default:
		return cfg.Prefix("SERVICE_PGSQL_").MayString("ORDERS_TABLE", DefaultTable)
	}
}
