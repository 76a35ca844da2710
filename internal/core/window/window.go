// Package window builds the query window and destination name for an export run
package window

import (
	"time"

	"orderexport/internal/core/order"
	perr "orderexport/internal/platform/errors"
	pstrings "orderexport/internal/platform/strings"
	ptime "orderexport/internal/platform/time"
)

const (
	// CreatedField is the timestamp the daily window bounds
	CreatedField = "createdAt"

	// RecentSort orders the recent window newest-modified first
	RecentSort = "lastModifiedAt desc"
)

// Today returns the closed window covering now's UTC calendar day
func Today(now time.Time) order.Filter {
	start, end := ptime.DayBounds(now)
	return order.Filter{
		Mode:  order.ModeToday,
		Day:   ptime.Day(now),
		Start: start,
		End:   end,
		Field: CreatedField,
	}
}

// Recent returns the unbounded "most recent limit orders" window
// limit 0 leaves the page size to the upstream default
func Recent(now time.Time, limit int) order.Filter {
	return order.Filter{
		Mode:  order.ModeRecent,
		Day:   ptime.Day(now),
		Sort:  RecentSort,
		Limit: max(limit, 0),
	}
}

// For picks the window for mode
func For(mode order.Mode, now time.Time, limit int) (order.Filter, error) {
	switch mode {
	case order.ModeToday, "":
		return Today(now), nil
	case order.ModeRecent:
		return Recent(now, limit), nil
	default:
		return order.Filter{}, perr.InvalidArgf("unknown export mode %q", mode)
	}
}

// FileName returns orders_<day>.csv
func FileName(day string) string { return "orders_" + day + ".csv" }

// DestinationName returns [<folder>/]orders_<day>.csv
func DestinationName(day, folder string) string {
	return pstrings.JoinKey(folder, FileName(day))
}
