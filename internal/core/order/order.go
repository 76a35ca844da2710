// Package order holds the order shapes shared by the export pipeline
package order

import (
	"fmt"
	"strings"
	"time"

	perr "orderexport/internal/platform/errors"
)

// TimestampLayout is the single canonical layout used in filter predicates
const TimestampLayout = "2006-01-02T15:04:05Z"

// Order is one upstream order; only ID is ever exported
type Order struct {
	ID             string
	CreatedAt      time.Time
	LastModifiedAt time.Time
}

// ResultSet is the ordered outcome of one upstream query
// Total is the upstream-reported match count, 0 when the source does not report it
type ResultSet struct {
	Orders []Order
	Total  int
}

// Len returns the number of orders in the set
func (rs ResultSet) Len() int { return len(rs.Orders) }

// Truncated reports whether the upstream matched more orders than it returned
func (rs ResultSet) Truncated() bool { return rs.Total > len(rs.Orders) }

// Mode names a query window
type Mode string

const (
	// ModeToday selects orders created during the current UTC day
	ModeToday Mode = "today"
	// ModeRecent selects the most recently modified orders, unbounded in time
	ModeRecent Mode = "recent"
)

// ParseMode maps a case-insensitive name onto a Mode
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeToday, ModeRecent:
		return m, nil
	case "":
		return ModeToday, nil
	default:
		return "", perr.InvalidArgf("unknown export mode %q", s)
	}
}

// Filter is the immutable query window for one run
type Filter struct {
	Mode  Mode
	Day   string // UTC date, YYYY-MM-DD
	Start time.Time
	End   time.Time
	Field string // timestamp field the bounds apply to
	Sort  string // optional, e.g. "lastModifiedAt desc"
	Limit int    // 0 means the upstream default page size
}

// Bounded reports whether the filter carries a time window
func (f Filter) Bounded() bool { return !f.Start.IsZero() && !f.End.IsZero() }

// Where renders the predicate, e.g. createdAt >= "2024-06-01T00:00:00Z" and createdAt <= "2024-06-01T23:59:59Z"
// An unbounded filter renders as ""
func (f Filter) Where() string {
	if !f.Bounded() {
		return ""
	}
	return fmt.Sprintf(`%s >= "%s" and %s <= "%s"`,
		f.Field, f.Start.UTC().Format(TimestampLayout),
		f.Field, f.End.UTC().Format(TimestampLayout))
}
