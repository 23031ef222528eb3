package amadeus

import (
	"strconv"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
)

// carrierNames maps common carrier codes to display names. Codes absent from
// the map fall back to the code itself.
var carrierNames = map[string]string{
	"AA": "American Airlines",
	"DL": "Delta Air Lines",
	"UA": "United Airlines",
	"WN": "Southwest Airlines",
	"AS": "Alaska Airlines",
	"B6": "JetBlue Airways",
	"NK": "Spirit Airlines",
	"F9": "Frontier Airlines",
	"HA": "Hawaiian Airlines",
	"SY": "Sun Country Airlines",
}

// toRawOffers converts the wire payload into source-agnostic raw offer
// records. Offers whose price does not parse are skipped; all deeper
// validation (timestamps, segment ordering, currency) belongs to the core
// normalizer, not the adapter.
func toRawOffers(resp *offersResponse) []domain.RawOffer {
	offers := make([]domain.RawOffer, 0, len(resp.Data))

	for _, record := range resp.Data {
		price, err := strconv.ParseFloat(record.Price.Total, 64)
		if err != nil {
			continue
		}

		var segments []domain.RawSegment
		for _, itin := range record.Itineraries {
			for _, seg := range itin.Segments {
				segments = append(segments, domain.RawSegment{
					Carrier:       seg.CarrierCode,
					CarrierName:   carrierName(seg.CarrierCode),
					FlightNumber:  seg.CarrierCode + seg.Number,
					Origin:        seg.Departure.IataCode,
					Destination:   seg.Arrival.IataCode,
					DepartureTime: seg.Departure.At,
					ArrivalTime:   seg.Arrival.At,
				})
			}
		}

		offers = append(offers, domain.RawOffer{
			ID:       record.ID,
			Source:   SourceName,
			Price:    price,
			Currency: record.Price.Currency,
			Segments: segments,
		})
	}

	return offers
}

// carrierName resolves a carrier code to a display name.
func carrierName(code string) string {
	if name, ok := carrierNames[code]; ok {
		return name
	}
	return code
}
