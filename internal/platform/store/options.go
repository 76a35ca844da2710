package store

import (
	"orderexport/internal/platform/logger"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithPG installs an already built postgres seam and skips opening one
func WithPG(q RowQuerier) Option {
	return func(s *Store) error {
		s.PG = q
		return nil
	}
}
