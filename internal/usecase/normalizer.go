package usecase

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
	"github.com/flight-monitor/flight-deal-ranker/internal/infrastructure/logger"
)

// Normalizer converts raw offer records from any upstream source into
// canonical FlightOption values. Malformed offers are rejected individually
// with the offending field named; a rejection never fails the batch.
type Normalizer struct {
	refCurrency string
	rates       map[string]float64
	log         *logger.Logger
}

// NewNormalizer creates a Normalizer from the given settings.
func NewNormalizer(settings Settings, log *logger.Logger) *Normalizer {
	if log == nil {
		log = logger.Nop()
	}
	return &Normalizer{
		refCurrency: settings.ReferenceCurrency,
		rates:       settings.ConversionRates,
		log:         log,
	}
}

// NormalizeBatch normalizes every raw offer in the batch. It returns the
// successfully normalized options and one failure record per rejected offer.
func (n *Normalizer) NormalizeBatch(raws []domain.RawOffer) ([]domain.FlightOption, []domain.NormalizationFailure) {
	options := make([]domain.FlightOption, 0, len(raws))
	var failures []domain.NormalizationFailure

	for _, raw := range raws {
		option, err := n.normalizeOffer(raw)
		if err != nil {
			failures = append(failures, domain.NormalizationFailure{
				OfferID: raw.ID,
				Source:  raw.Source,
				Err:     err,
			})
			n.log.Warn().
				Str("offer_id", raw.ID).
				Str("source", raw.Source).
				Err(err).
				Msg("Offer rejected during normalization")
			continue
		}
		options = append(options, option)
	}

	return options, failures
}

// normalizeOffer converts a single raw offer to a FlightOption.
func (n *Normalizer) normalizeOffer(raw domain.RawOffer) (domain.FlightOption, error) {
	if len(raw.Segments) == 0 {
		return domain.FlightOption{}, domain.NewFieldError("segments", "must not be empty")
	}

	if math.IsNaN(raw.Price) || math.IsInf(raw.Price, 0) {
		return domain.FlightOption{}, domain.NewFieldError("price", "must be a finite number")
	}
	if raw.Price <= 0 {
		return domain.FlightOption{}, domain.NewFieldError("price", fmt.Sprintf("must be positive, got %v", raw.Price))
	}

	currency := strings.ToUpper(strings.TrimSpace(raw.Currency))
	rate, ok := n.rates[currency]
	if !ok {
		return domain.FlightOption{}, domain.NewFieldError("currency", fmt.Sprintf("no conversion rate for %q", currency))
	}

	segments := make([]domain.Segment, len(raw.Segments))
	for i, rawSeg := range raw.Segments {
		departure, err := parseDateTime(rawSeg.DepartureTime)
		if err != nil {
			return domain.FlightOption{}, domain.NewFieldError(
				fmt.Sprintf("segments[%d].departureTime", i), err.Error())
		}
		arrival, err := parseDateTime(rawSeg.ArrivalTime)
		if err != nil {
			return domain.FlightOption{}, domain.NewFieldError(
				fmt.Sprintf("segments[%d].arrivalTime", i), err.Error())
		}
		if !arrival.After(departure) {
			return domain.FlightOption{}, domain.NewFieldError(
				fmt.Sprintf("segments[%d].arrivalTime", i), "arrival must be after departure")
		}
		if i > 0 && departure.Before(segments[i-1].Arrival) {
			return domain.FlightOption{}, domain.NewFieldError(
				fmt.Sprintf("segments[%d].departureTime", i),
				fmt.Sprintf("departs before segment %d arrives", i-1))
		}

		segments[i] = domain.Segment{
			Carrier:      rawSeg.Carrier,
			CarrierName:  rawSeg.CarrierName,
			FlightNumber: rawSeg.FlightNumber,
			Origin:       rawSeg.Origin,
			Destination:  rawSeg.Destination,
			Departure:    departure,
			Arrival:      arrival,
		}
		if i > 0 {
			gap := departure.Sub(segments[i-1].Arrival)
			segments[i-1].LayoverAfter = &gap
		}
	}

	first, last := segments[0], segments[len(segments)-1]

	option := domain.FlightOption{
		ID:          uuid.New().String(),
		Origin:      first.Origin,
		Destination: last.Destination,
		Departure:   first.Departure,
		Arrival:     last.Arrival,
		Segments:    segments,
		Duration:    last.Arrival.Sub(first.Departure),
		Price:       raw.Price * rate,
		Currency:    n.refCurrency,
		Stops:       len(segments) - 1,
		Source:      raw.Source,
		BookingURL:  raw.BookingURL,
	}

	if err := option.Validate(); err != nil {
		return domain.FlightOption{}, err
	}
	return option, nil
}

// parseDateTime parses an ISO 8601 datetime string to UTC.
// Supports "2006-01-02T15:04:05Z07:00" and "2006-01-02T15:04:05".
func parseDateTime(dateTime string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, dateTime)
	if err == nil {
		return t.UTC(), nil
	}

	t, err = time.Parse("2006-01-02T15:04:05", dateTime)
	if err == nil {
		return t.UTC(), nil
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime %q", dateTime)
}
