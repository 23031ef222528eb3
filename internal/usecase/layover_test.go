package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
)

// optionWithGaps builds a connecting option with the given layover durations,
// one connection per gap, all through the given airports.
func optionWithGaps(airports []string, gaps []time.Duration) domain.FlightOption {
	departure := time.Date(2026, 1, 15, 6, 0, 0, 0, time.UTC)
	segments := make([]domain.Segment, 0, len(gaps)+1)

	current := departure
	origin := "MSP"
	for i, gap := range gaps {
		arrival := current.Add(90 * time.Minute)
		segments = append(segments, domain.Segment{
			Carrier:      "DL",
			FlightNumber: "DL100",
			Origin:       origin,
			Destination:  airports[i],
			Departure:    current,
			Arrival:      arrival,
		})
		origin = airports[i]
		current = arrival.Add(gap)
	}
	final := current.Add(90 * time.Minute)
	segments = append(segments, domain.Segment{
		Carrier:      "DL",
		FlightNumber: "DL200",
		Origin:       origin,
		Destination:  "PHX",
		Departure:    current,
		Arrival:      final,
	})

	return domain.FlightOption{
		ID:          "opt",
		Origin:      "MSP",
		Destination: "PHX",
		Departure:   departure,
		Arrival:     final,
		Segments:    segments,
		Duration:    final.Sub(departure),
		Price:       200,
		Currency:    "USD",
		Stops:       len(gaps),
		Source:      "test",
	}
}

func directOption() domain.FlightOption {
	return optionWithGaps(nil, nil)
}

func TestLayoverScoreDirectFlight(t *testing.T) {
	e := NewLayoverEvaluator(testSettings())

	// Direct flights always score a perfect 1.0.
	assert.Equal(t, 1.0, e.Score(directOption()))
}

func TestLayoverScoreGapPenalty(t *testing.T) {
	settings := testSettings()
	settings.Convenience = map[string]float64{}
	settings.ConvenienceDefault = 1.0 // isolate the gap penalty
	e := NewLayoverEvaluator(settings)

	tests := []struct {
		name string
		gap  time.Duration
		want float64
	}{
		{
			name: "comfortable gap costs nothing",
			gap:  2 * time.Hour,
			want: 1.0,
		},
		{
			name: "exactly minimum gap costs nothing",
			gap:  90 * time.Minute,
			want: 1.0,
		},
		{
			name: "exactly maximum gap costs nothing",
			gap:  4 * time.Hour,
			want: 1.0,
		},
		{
			name: "unmakeable connection scores zero",
			gap:  20 * time.Minute,
			want: 0.0,
		},
		{
			name: "gap at the cap scores zero",
			gap:  6 * time.Hour,
			want: 0.0,
		},
		{
			name: "gap midway between max and cap",
			gap:  5 * time.Hour,
			want: 0.5,
		},
		{
			name: "short gap halfway to the legal minimum",
			gap:  time.Hour, // shortfall 30/60 of the risky band
			want: 1 - 0.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			option := optionWithGaps([]string{"DEN"}, []time.Duration{tt.gap})
			assert.InDelta(t, tt.want, e.Score(option), 1e-9)
		})
	}
}

func TestLayoverScoreConvenience(t *testing.T) {
	settings := testSettings()
	settings.Convenience = map[string]float64{"DEN": 0.9}
	settings.ConvenienceDefault = 0.5
	e := NewLayoverEvaluator(settings)

	comfortable := 2 * time.Hour

	t.Run("hub airport uses its coefficient", func(t *testing.T) {
		option := optionWithGaps([]string{"DEN"}, []time.Duration{comfortable})
		assert.InDelta(t, 0.9, e.Score(option), 1e-9)
	})

	t.Run("unknown airport uses the neutral default", func(t *testing.T) {
		option := optionWithGaps([]string{"XNA"}, []time.Duration{comfortable})
		assert.InDelta(t, 0.5, e.Score(option), 1e-9)
	})

	t.Run("multiple gaps average penalty and convenience", func(t *testing.T) {
		option := optionWithGaps([]string{"DEN", "XNA"}, []time.Duration{comfortable, comfortable})
		// avg penalty 0, avg convenience (0.9+0.5)/2
		assert.InDelta(t, 0.7, e.Score(option), 1e-9)
	})
}

func TestWithinStopCeiling(t *testing.T) {
	tests := []struct {
		name    string
		stops   int
		ceiling int
		want    bool
	}{
		{name: "direct passes", stops: 0, ceiling: 3, want: true},
		{name: "two stops pass a ceiling of three", stops: 2, ceiling: 3, want: true},
		{name: "three stops hit the ceiling", stops: 3, ceiling: 3, want: false},
		{name: "four stops exceed the ceiling", stops: 4, ceiling: 3, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			option := domain.FlightOption{Stops: tt.stops}
			assert.Equal(t, tt.want, WithinStopCeiling(option, tt.ceiling))
		})
	}
}
