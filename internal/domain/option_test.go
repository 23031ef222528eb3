package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildOption returns a valid two-segment option departing at the given time.
func buildOption(departure time.Time) FlightOption {
	mid := departure.Add(2 * time.Hour)
	arrival := mid.Add(3 * time.Hour)
	return FlightOption{
		ID:          "opt-1",
		Origin:      "MSP",
		Destination: "PHX",
		Departure:   departure,
		Arrival:     arrival,
		Segments: []Segment{
			{
				Carrier:      "DL",
				FlightNumber: "DL100",
				Origin:       "MSP",
				Destination:  "DEN",
				Departure:    departure,
				Arrival:      mid.Add(-90 * time.Minute),
			},
			{
				Carrier:      "DL",
				FlightNumber: "DL200",
				Origin:       "DEN",
				Destination:  "PHX",
				Departure:    mid,
				Arrival:      arrival,
			},
		},
		Duration: arrival.Sub(departure),
		Price:    240,
		Currency: "USD",
		Stops:    1,
		Source:   "amadeus",
	}
}

func TestFlightOptionValidate(t *testing.T) {
	departure := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(*FlightOption)
		wantErr bool
	}{
		{
			name:    "valid two-segment option",
			mutate:  func(o *FlightOption) {},
			wantErr: false,
		},
		{
			name: "no segments",
			mutate: func(o *FlightOption) {
				o.Segments = nil
			},
			wantErr: true,
		},
		{
			name: "stops does not match segment count",
			mutate: func(o *FlightOption) {
				o.Stops = 2
			},
			wantErr: true,
		},
		{
			name: "segment arrives before it departs",
			mutate: func(o *FlightOption) {
				o.Segments[0].Arrival = o.Segments[0].Departure.Add(-time.Hour)
			},
			wantErr: true,
		},
		{
			name: "overlapping segments",
			mutate: func(o *FlightOption) {
				o.Segments[1].Departure = o.Segments[0].Arrival.Add(-time.Minute)
			},
			wantErr: true,
		},
		{
			name: "zero price",
			mutate: func(o *FlightOption) {
				o.Price = 0
			},
			wantErr: true,
		},
		{
			name: "negative price",
			mutate: func(o *FlightOption) {
				o.Price = -10
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			option := buildOption(departure)
			tt.mutate(&option)

			err := option.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidOption)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFlightOptionLayoverGaps(t *testing.T) {
	departure := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)

	t.Run("direct flight has no gaps", func(t *testing.T) {
		option := buildOption(departure)
		option.Segments = option.Segments[:1]
		option.Stops = 0

		assert.Nil(t, option.LayoverGaps())
	})

	t.Run("one-stop option has one gap at the connection airport", func(t *testing.T) {
		option := buildOption(departure)

		gaps := option.LayoverGaps()
		require.Len(t, gaps, 1)
		assert.Equal(t, "DEN", gaps[0].Airport)
		assert.Equal(t, 90*time.Minute, gaps[0].Duration)
	})
}

func TestFlightOptionDedupKey(t *testing.T) {
	departure := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)

	t.Run("same itinerary from different sources shares a key", func(t *testing.T) {
		a := buildOption(departure)
		b := buildOption(departure)
		b.ID = "opt-2"
		b.Source = "other"
		b.Price = 199

		assert.Equal(t, a.DedupKey(), b.DedupKey())
	})

	t.Run("different flight numbers differ", func(t *testing.T) {
		a := buildOption(departure)
		b := buildOption(departure)
		b.Segments[1].FlightNumber = "DL201"

		assert.NotEqual(t, a.DedupKey(), b.DedupKey())
	})

	t.Run("departure times differing only in seconds share a key", func(t *testing.T) {
		a := buildOption(departure)
		b := buildOption(departure)
		b.Departure = departure.Add(30 * time.Second)

		assert.Equal(t, a.DedupKey(), b.DedupKey())
	})

	t.Run("departure times in different minutes differ", func(t *testing.T) {
		a := buildOption(departure)
		b := buildOption(departure)
		b.Departure = departure.Add(time.Minute)

		assert.NotEqual(t, a.DedupKey(), b.DedupKey())
	})
}

func TestFlightOptionDepartureDate(t *testing.T) {
	option := buildOption(time.Date(2026, 1, 15, 23, 30, 0, 0, time.UTC))
	assert.Equal(t, "2026-01-15", option.DepartureDate())
}
