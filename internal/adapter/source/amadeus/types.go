package amadeus

// offersResponse is the top-level Amadeus-shaped offers payload.
type offersResponse struct {
	Data []offerRecord `json:"data"`
}

// offerRecord is one priced offer on the wire.
type offerRecord struct {
	ID          string      `json:"id"`
	Price       priceRecord `json:"price"`
	Itineraries []itinerary `json:"itineraries"`
}

// priceRecord carries the quoted total as a string, per the upstream format.
type priceRecord struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// itinerary is one direction of travel containing ordered segments.
type itinerary struct {
	Duration string          `json:"duration"`
	Segments []segmentRecord `json:"segments"`
}

// segmentRecord is one leg on the wire.
type segmentRecord struct {
	CarrierCode string         `json:"carrierCode"`
	Number      string         `json:"number"`
	Departure   endpointRecord `json:"departure"`
	Arrival     endpointRecord `json:"arrival"`
	Aircraft    aircraftRecord `json:"aircraft"`
}

// endpointRecord is a departure or arrival point on the wire.
type endpointRecord struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

// aircraftRecord identifies the aircraft type.
type aircraftRecord struct {
	Code string `json:"code"`
}
