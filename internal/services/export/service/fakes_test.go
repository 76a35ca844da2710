package service

import (
	"context"
	"sync"

	"orderexport/internal/services/export/domain"
)

type fakeSource struct {
	rs      domain.ResultSet
	err     error
	calls   int
	filters []domain.Filter
}

func (f *fakeSource) Query(_ context.Context, flt domain.Filter) (domain.ResultSet, error) {
	f.calls++
	f.filters = append(f.filters, flt)
	return f.rs, f.err
}

type fakeSink struct {
	mu      sync.Mutex
	objects map[string]string
	err     error
	calls   int
}

func newFakeSink() *fakeSink { return &fakeSink{objects: map[string]string{}} }

func (s *fakeSink) Store(_ context.Context, name string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return s.err
	}
	s.objects[name] = string(content)
	return nil
}

func (s *fakeSink) Describe() string { return "GCS bucket connector-bck" }

func orders(ids ...string) domain.ResultSet {
	rs := domain.ResultSet{Orders: make([]domain.Order, 0, len(ids))}
	for _, id := range ids {
		rs.Orders = append(rs.Orders, domain.Order{ID: id})
	}
	return rs
}
