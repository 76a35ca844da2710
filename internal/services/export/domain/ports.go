package domain

import "context"

// OrderSource answers one order query per call
type OrderSource interface {
	Query(ctx context.Context, f Filter) (ResultSet, error)
}

// Sink durably stores named content
type Sink interface {
	Store(ctx context.Context, name string, content []byte) error
	// Describe names the destination, e.g. "GCS bucket connector-bck"
	Describe() string
}

// RunPort runs one export; implemented by the export service
type RunPort interface {
	Run(ctx context.Context, in RunInput) (Report, error)
}
