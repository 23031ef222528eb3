package mock

import (
	"context"
	"sync"
	"time"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
)

// HistoryStore is an in-memory implementation of domain.HistoryStore for
// tests. Samples are kept per route key in insertion order; QuerySamples
// returns the most recent first, like the real store.
type HistoryStore struct {
	mu       sync.Mutex
	samples  map[string][]domain.PriceSample
	queryErr error
	writeErr error
}

// NewHistoryStore creates an empty in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		samples: make(map[string][]domain.PriceSample),
	}
}

// WithQueryError configures QuerySamples to fail with the given error.
func (s *HistoryStore) WithQueryError(err error) *HistoryStore {
	s.queryErr = err
	return s
}

// WithWriteError configures RecordSample to fail with the given error.
func (s *HistoryStore) WithWriteError(err error) *HistoryStore {
	s.writeErr = err
	return s
}

// Seed inserts prices for a route key with sequential timestamps. Convenient
// for building a history baseline in one call.
func (s *HistoryStore) Seed(key domain.RouteKey, prices ...float64) *HistoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, price := range prices {
		s.samples[key.String()] = append(s.samples[key.String()], domain.PriceSample{
			Key:        key,
			Price:      price,
			ObservedAt: base.Add(time.Duration(i) * 24 * time.Hour),
		})
	}
	return s
}

// QuerySamples implements domain.HistoryStore.QuerySamples.
func (s *HistoryStore) QuerySamples(_ context.Context, key domain.RouteKey, window int) ([]domain.PriceSample, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.samples[key.String()]
	result := make([]domain.PriceSample, 0, window)
	for i := len(stored) - 1; i >= 0 && len(result) < window; i-- {
		result = append(result, stored[i])
	}
	return result, nil
}

// RecordSample implements domain.HistoryStore.RecordSample.
func (s *HistoryStore) RecordSample(_ context.Context, key domain.RouteKey, price float64, observedAt time.Time) error {
	if s.writeErr != nil {
		return s.writeErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.samples[key.String()] = append(s.samples[key.String()], domain.PriceSample{
		Key:        key,
		Price:      price,
		ObservedAt: observedAt,
	})
	return nil
}

// SampleCount returns the number of stored samples for a route key.
func (s *HistoryStore) SampleCount(key domain.RouteKey) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.samples[key.String()])
}

// Ensure HistoryStore implements domain.HistoryStore at compile time.
var _ domain.HistoryStore = (*HistoryStore)(nil)
