package module

import (
	"context"

	"orderexport/internal/adapters/orders/commercetools"
	"orderexport/internal/adapters/orders/sqlsource"
	modkit "orderexport/internal/modkit"
	perr "orderexport/internal/platform/errors"
	"orderexport/internal/services/export/domain"
)

// openSource builds the configured order source once at startup
func openSource(ctx context.Context, deps modkit.Deps, o Options) (domain.OrderSource, error) {
	switch o.Source {
	case "commercetools":
		return commercetools.NewClient(ctx, o.CTP), nil
	case "postgres":
		if deps.Store == nil || deps.Store.PG == nil {
			return nil, perr.Configf("ORDERS_SOURCE=postgres requires SERVICE_PGSQL_DBURL")
		}
		return sqlsource.New(sqlsource.Postgres, deps.Store.PG, o.Table)
	case "clickhouse":
		if deps.Store == nil || deps.Store.CH == nil {
			return nil, perr.Configf("ORDERS_SOURCE=clickhouse requires SERVICE_CLICKHOUSE_DBURL")
		}
		return sqlsource.New(sqlsource.ClickHouse, deps.Store.CH, o.Table)
	default:
		return nil, perr.Configf("unknown order source %q", o.Source)
	}
}
