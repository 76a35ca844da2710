// Package sqlsource reads orders from a postgres or clickhouse mirror table
package sqlsource

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"orderexport/internal/core/order"
	perr "orderexport/internal/platform/errors"
	"orderexport/internal/platform/logger"
	"orderexport/internal/platform/store"
)

// Dialect selects placeholder style and naming
type Dialect string

const (
	Postgres   Dialect = "postgres"
	ClickHouse Dialect = "clickhouse"
)

// DefaultTable is used when no table is configured
const DefaultTable = "orders"

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// columns maps upstream field names onto mirror columns
var columns = map[string]string{
	"id":             "id",
	"createdAt":      "created_at",
	"lastModifiedAt": "last_modified_at",
}

// Source queries one mirror table
type Source struct {
	q       store.Querier
	table   string
	dialect Dialect
	log     logger.Logger
}

// New validates table and returns a Source over q
func New(d Dialect, q store.Querier, table string) (*Source, error) {
	if q == nil {
		panic("sqlsource: nil querier")
	}
	if d != Postgres && d != ClickHouse {
		return nil, perr.Configf("unknown sql dialect %q", d)
	}
	if table == "" {
		table = DefaultTable
	}
	if !identRe.MatchString(table) {
		return nil, perr.Configf("invalid orders table name %q", table)
	}
	return &Source{q: q, table: table, dialect: d, log: *logger.Named(string(d))}, nil
}

// Query runs one select for f; the result carries every matching row
func (s *Source) Query(ctx context.Context, f order.Filter) (order.ResultSet, error) {
	sql, args, err := s.build(f)
	if err != nil {
		return order.ResultSet{}, err
	}

	orders, err := store.Many(ctx, s.q, scanOrder, sql, args...)
	if err != nil {
		if s.dialect == Postgres {
			if perr.IsUndefinedTable(err) {
				s.log.Error().Str("table", s.table).Msg("orders table does not exist")
			}
			err = perr.FromPostgres(err, "select orders")
		}
		return order.ResultSet{}, perr.Wrapf(err, perr.ErrorCodeFetch, "%s orders query", s.dialect)
	}

	s.log.Debug().Str("table", s.table).Int("rows", len(orders)).Msg("orders query done")
	return order.ResultSet{Orders: orders}, nil
}

func scanOrder(r store.Row) (order.Order, error) {
	var (
		o        order.Order
		created  time.Time
		modified time.Time
	)
	if err := r.Scan(&o.ID, &created, &modified); err != nil {
		return order.Order{}, err
	}
	o.CreatedAt = created.UTC()
	o.LastModifiedAt = modified.UTC()
	return o, nil
}

// build renders the select for f in the source dialect
func (s *Source) build(f order.Filter) (string, []any, error) {
	var (
		b    strings.Builder
		args []any
	)
	bind := func(v any) string {
		args = append(args, v)
		if s.dialect == Postgres {
			return fmt.Sprintf("$%d", len(args))
		}
		return "?"
	}

	b.WriteString("SELECT id, created_at, last_modified_at FROM ")
	b.WriteString(s.table)

	if f.Bounded() {
		col, ok := columns[f.Field]
		if !ok {
			return "", nil, perr.InvalidArgf("unsupported filter field %q", f.Field)
		}
		fmt.Fprintf(&b, " WHERE %s >= %s AND %s <= %s", col, bind(f.Start.UTC()), col, bind(f.End.UTC()))
	}

	ob, err := orderBy(f.Sort)
	if err != nil {
		return "", nil, err
	}
	b.WriteString(" ORDER BY ")
	b.WriteString(ob)

	if f.Limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(bind(f.Limit))
	}
	return b.String(), args, nil
}

// orderBy maps "field [asc|desc]" onto a column clause; empty sorts by creation
func orderBy(sort string) (string, error) {
	parts := strings.Fields(sort)
	if len(parts) == 0 {
		return "created_at ASC, id ASC", nil
	}
	col, ok := columns[parts[0]]
	if !ok || len(parts) > 2 {
		return "", perr.InvalidArgf("unsupported sort %q", sort)
	}
	dir := "ASC"
	if len(parts) == 2 {
		switch strings.ToLower(parts[1]) {
		case "asc":
		case "desc":
			dir = "DESC"
		default:
			return "", perr.InvalidArgf("unsupported sort direction %q", parts[1])
		}
	}
	return col + " " + dir + ", id " + dir, nil
}
