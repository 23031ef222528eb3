// Package mock provides test doubles for the flight deal ranker.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
)

// Source is a configurable mock implementation of domain.OfferSource.
// It supports configurable delays, errors, and per-(airport, date) responses
// for testing various scenarios including timeouts and partial failures.
type Source struct {
	name      string
	offers    []domain.RawOffer
	byCombo   map[string][]domain.RawOffer
	errCombos map[string]error
	err       error
	delay     time.Duration
	callCount int
	mu        sync.Mutex
}

// NewSource creates a new mock source with the given name.
// The source is configured using the builder pattern methods.
func NewSource(name string) *Source {
	return &Source{
		name:      name,
		byCombo:   make(map[string][]domain.RawOffer),
		errCombos: make(map[string]error),
	}
}

// comboKey builds the lookup key for per-combination configuration.
func comboKey(airport, date string) string {
	return airport + "@" + date
}

// WithOffers configures the source to return the given offers for every fetch.
func (s *Source) WithOffers(offers []domain.RawOffer) *Source {
	s.offers = offers
	return s
}

// WithOffersFor configures the source to return the given offers only for one
// (airport, date) combination. Takes precedence over WithOffers.
func (s *Source) WithOffersFor(airport, date string, offers []domain.RawOffer) *Source {
	s.byCombo[comboKey(airport, date)] = offers
	return s
}

// WithError configures the source to return the given error for every fetch.
func (s *Source) WithError(err error) *Source {
	s.err = err
	return s
}

// WithErrorFor configures the source to fail only for one (airport, date)
// combination. Takes precedence over WithError.
func (s *Source) WithErrorFor(airport, date string, err error) *Source {
	s.errCombos[comboKey(airport, date)] = err
	return s
}

// WithDelay configures the source to wait the given duration before
// responding. This is useful for testing timeout behavior.
func (s *Source) WithDelay(d time.Duration) *Source {
	s.delay = d
	return s
}

// Name returns the source's unique identifier.
func (s *Source) Name() string {
	return s.name
}

// Fetch implements domain.OfferSource.Fetch.
// It respects context cancellation, applies configured delay, and returns
// configured offers or error.
func (s *Source) Fetch(ctx context.Context, origin, destination, date string) ([]domain.RawOffer, error) {
	s.mu.Lock()
	s.callCount++
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	key := comboKey(destination, date)
	if err, ok := s.errCombos[key]; ok {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	if offers, ok := s.byCombo[key]; ok {
		return offers, nil
	}
	return s.offers, nil
}

// CallCount returns the number of times Fetch was called.
func (s *Source) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

// Reset resets the call count to zero.
func (s *Source) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callCount = 0
}

// Ensure Source implements domain.OfferSource at compile time.
var _ domain.OfferSource = (*Source)(nil)

// SampleOffers returns count raw offers for the given route and date with
// realistic values. Prices step by 35 per offer; every third offer is a
// one-stop itinerary through DEN.
func SampleOffers(source, origin, destination, date string, count int) []domain.RawOffer {
	offers := make([]domain.RawOffer, count)

	day, _ := time.Parse("2006-01-02", date)
	base := time.Date(day.Year(), day.Month(), day.Day(), 6, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		departure := base.Add(time.Duration(i*2) * time.Hour)

		var segments []domain.RawSegment
		if i%3 == 2 {
			mid := departure.Add(90 * time.Minute)
			segments = []domain.RawSegment{
				{
					Carrier:       "AA",
					CarrierName:   "American Airlines",
					FlightNumber:  fmt.Sprintf("AA%d", 1000+i),
					Origin:        origin,
					Destination:   "DEN",
					DepartureTime: departure.Format(time.RFC3339),
					ArrivalTime:   mid.Format(time.RFC3339),
				},
				{
					Carrier:       "AA",
					CarrierName:   "American Airlines",
					FlightNumber:  fmt.Sprintf("AA%d", 2000+i),
					Origin:        "DEN",
					Destination:   destination,
					DepartureTime: mid.Add(2 * time.Hour).Format(time.RFC3339),
					ArrivalTime:   mid.Add(3*time.Hour + 30*time.Minute).Format(time.RFC3339),
				},
			}
		} else {
			segments = []domain.RawSegment{
				{
					Carrier:       "DL",
					CarrierName:   "Delta Air Lines",
					FlightNumber:  fmt.Sprintf("DL%d", 100+i),
					Origin:        origin,
					Destination:   destination,
					DepartureTime: departure.Format(time.RFC3339),
					ArrivalTime:   departure.Add(3 * time.Hour).Format(time.RFC3339),
				},
			}
		}

		offers[i] = domain.RawOffer{
			ID:       fmt.Sprintf("%s-%s-%d", source, date, i),
			Source:   source,
			Price:    180 + float64(i*35),
			Currency: "USD",
			Segments: segments,
		}
	}

	return offers
}
