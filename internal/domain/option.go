// Package domain contains the core business entities and rules for the flight
// deal ranker. These entities are source-agnostic and form the foundation upon
// which all other components are built.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Segment represents one non-stop leg of a journey.
type Segment struct {
	// Carrier is the IATA airline code (e.g., "AA")
	Carrier string `json:"carrier"`

	// CarrierName is the full airline name (e.g., "American Airlines")
	CarrierName string `json:"carrierName,omitempty"`

	// FlightNumber is the airline's flight number (e.g., "AA1234")
	FlightNumber string `json:"flightNumber"`

	// Origin is the IATA code of the departure airport
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport
	Destination string `json:"destination"`

	// Departure is the scheduled departure time
	Departure time.Time `json:"departure"`

	// Arrival is the scheduled arrival time
	Arrival time.Time `json:"arrival"`

	// LayoverAfter is the ground time between this segment's arrival and the
	// next segment's departure. Nil on the final segment.
	LayoverAfter *time.Duration `json:"layoverAfter,omitempty"`
}

// FlightOption represents a complete priced way to fly a route, possibly
// across multiple segments. It is an immutable value created per pipeline run
// and discarded after scoring.
type FlightOption struct {
	// ID is a unique identifier for this option (generated internally)
	ID string `json:"id"`

	// Origin is the IATA code of the first segment's departure airport
	Origin string `json:"origin"`

	// Destination is the IATA code of the last segment's arrival airport
	Destination string `json:"destination"`

	// Departure is the first segment's departure time
	Departure time.Time `json:"departure"`

	// Arrival is the last segment's arrival time
	Arrival time.Time `json:"arrival"`

	// Segments is the time-ordered list of legs
	Segments []Segment `json:"segments"`

	// Duration is the total gate-to-gate travel time including layovers
	Duration time.Duration `json:"duration"`

	// Price is the total price in the reference currency
	Price float64 `json:"price"`

	// Currency is the ISO 4217 reference currency code (e.g., "USD")
	Currency string `json:"currency"`

	// Stops is the number of intermediate stops (0 = direct)
	Stops int `json:"stops"`

	// Source identifies which upstream source this option came from
	Source string `json:"source"`

	// BookingURL is an optional deep link to book this option
	BookingURL string `json:"bookingUrl,omitempty"`
}

// LayoverGap describes one ground-time gap between consecutive segments.
type LayoverGap struct {
	// Airport is the IATA code of the layover airport
	Airport string

	// Duration is the ground time at the layover airport
	Duration time.Duration
}

// Validate checks the structural invariants of a FlightOption:
// segments are non-empty, time-ordered and non-overlapping, and the stop
// count equals the segment count minus one.
func (o *FlightOption) Validate() error {
	if len(o.Segments) == 0 {
		return fmt.Errorf("%w: segments must not be empty", ErrInvalidOption)
	}
	if o.Stops != len(o.Segments)-1 {
		return fmt.Errorf("%w: stops (%d) must equal segment count minus one (%d)",
			ErrInvalidOption, o.Stops, len(o.Segments)-1)
	}
	for i, seg := range o.Segments {
		if !seg.Arrival.After(seg.Departure) {
			return fmt.Errorf("%w: segment %d arrives before it departs", ErrInvalidOption, i)
		}
		if i > 0 && seg.Departure.Before(o.Segments[i-1].Arrival) {
			return fmt.Errorf("%w: segment %d departs before segment %d arrives", ErrInvalidOption, i, i-1)
		}
	}
	if o.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidOption)
	}
	return nil
}

// LayoverGaps returns one LayoverGap per intermediate stop, in journey order.
// Returns nil for direct flights.
func (o *FlightOption) LayoverGaps() []LayoverGap {
	if len(o.Segments) < 2 {
		return nil
	}
	gaps := make([]LayoverGap, 0, len(o.Segments)-1)
	for i := 1; i < len(o.Segments); i++ {
		gaps = append(gaps, LayoverGap{
			Airport:  o.Segments[i].Origin,
			Duration: o.Segments[i].Departure.Sub(o.Segments[i-1].Arrival),
		})
	}
	return gaps
}

// DedupKey returns the identity key used to collapse the same itinerary
// reported by multiple sources: carrier, flight numbers and departure time
// truncated to the minute. Source and price are deliberately excluded.
func (o *FlightOption) DedupKey() string {
	numbers := make([]string, len(o.Segments))
	for i, seg := range o.Segments {
		numbers[i] = seg.FlightNumber
	}
	carrier := ""
	if len(o.Segments) > 0 {
		carrier = o.Segments[0].Carrier
	}
	return carrier + "|" + strings.Join(numbers, "-") + "|" +
		o.Departure.Truncate(time.Minute).UTC().Format(time.RFC3339)
}

// DepartureDate returns the departure date in YYYY-MM-DD form.
func (o *FlightOption) DepartureDate() string {
	return o.Departure.Format("2006-01-02")
}
