package domain

import "context"

// RawSegment is one leg of a raw offer as supplied by an upstream source.
// Timestamps are kept as strings; parsing and timezone normalization belong
// to the normalizer, not the acquisition layer.
type RawSegment struct {
	// Carrier is the IATA airline code
	Carrier string `json:"carrier"`

	// CarrierName is the full airline name, if the source provides one
	CarrierName string `json:"carrierName,omitempty"`

	// FlightNumber is the airline's flight number
	FlightNumber string `json:"flightNumber"`

	// Origin is the IATA code of the departure airport
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport
	Destination string `json:"destination"`

	// DepartureTime is the scheduled departure as an ISO 8601 string
	DepartureTime string `json:"departureTime"`

	// ArrivalTime is the scheduled arrival as an ISO 8601 string
	ArrivalTime string `json:"arrivalTime"`
}

// RawOffer is a flat offer record from any upstream source, before
// normalization. Any real-world API shape is adapted to this contract by a
// source adapter.
type RawOffer struct {
	// ID is the upstream identifier of the offer
	ID string `json:"id"`

	// Source identifies the upstream source
	Source string `json:"source"`

	// Price is the total price as reported by the source
	Price float64 `json:"price"`

	// Currency is the ISO 4217 code the price is quoted in
	Currency string `json:"currency"`

	// Segments is the ordered list of legs
	Segments []RawSegment `json:"segments"`

	// BookingURL is an optional deep link to book the offer
	BookingURL string `json:"bookingUrl,omitempty"`
}

//go:generate mockgen -source=source.go -destination=source_mock.go -package=domain

// OfferSource is the upstream acquisition collaborator. The core treats it as
// a black box returning raw offers for one (origin, destination, date)
// combination.
type OfferSource interface {
	// Name returns the source's unique identifier.
	Name() string

	// Fetch returns the raw offers for a single origin/destination/date
	// combination. date is in YYYY-MM-DD format. Implementations must respect
	// context cancellation.
	Fetch(ctx context.Context, origin, destination, date string) ([]RawOffer, error)
}
