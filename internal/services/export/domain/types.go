// Package domain holds export types independent of transport or storage
package domain

import (
	"fmt"
	"time"

	"orderexport/internal/core/csvexport"
	"orderexport/internal/core/order"
)

type (
	// Order is one upstream order
	Order = order.Order
	// ResultSet is the ordered result of one upstream query
	ResultSet = order.ResultSet
	// Filter is the query window for one run
	Filter = order.Filter
	// Mode names a query window
	Mode = order.Mode
	// Artifact is the encoded CSV payload
	Artifact = csvexport.Artifact
)

const (
	ModeToday  = order.ModeToday
	ModeRecent = order.ModeRecent
)

// GenericFailure is the only failure text a caller ever sees
const GenericFailure = "Internal Server Error - Error retrieving all orders from the commercetools SDK"

// Stage names a pipeline step
type Stage string

const (
	StageFilter Stage = "filter"
	StageFetch  Stage = "fetch"
	StageEncode Stage = "encode"
	StageStore  Stage = "store"
)

// RunInput selects the window for one run; the zero value exports today
type RunInput struct {
	Mode  Mode
	Limit int // recent mode only; 0 uses the configured default
}

// Report describes a finished run
// on failure only RunID, Mode and Day may be set
type Report struct {
	RunID       string        `json:"run_id"`
	Mode        Mode          `json:"mode"`
	Day         string        `json:"day"`
	Destination string        `json:"destination"`
	Backend     string        `json:"backend"`
	Rows        int           `json:"rows"`
	Bytes       int           `json:"bytes"`
	Truncated   bool          `json:"truncated"`
	Duration    time.Duration `json:"duration"`
}

// Summary is the success line returned to the trigger
func (r Report) Summary() string {
	return fmt.Sprintf("Orders for %s have been written to %s in %s", r.Day, r.Destination, r.Backend)
}

// ParseMode maps a case-insensitive name onto a Mode; empty means today
var ParseMode = order.ParseMode
