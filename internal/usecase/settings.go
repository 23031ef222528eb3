// Package usecase contains the decision-making core of the flight deal
// ranker: offer normalization, layover evaluation, deal detection, composite
// scoring, candidate ranking and the pipeline that orchestrates them.
package usecase

import (
	"time"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
)

// Weights are the composite score weights. They are expected to sum to 1.0.
type Weights struct {
	Price    float64
	Duration float64
	Stops    float64
	Layover  float64
}

// Settings is the immutable configuration value the ranking core consumes.
// It is assembled by the caller (from env config in production, literals in
// tests) and passed in at construction time, keeping every scoring function
// a pure function of its inputs.
type Settings struct {
	// Weights are the composite score weights
	Weights Weights

	// MinLayover is the shortest comfortable connection
	MinLayover time.Duration

	// MaxLayover is the longest gap that costs no penalty
	MaxLayover time.Duration

	// LayoverCap is where the wasted-time penalty saturates at 1.0
	LayoverCap time.Duration

	// StopCeiling is the hard transfer filter: options with this many stops
	// or more are excluded before scoring
	StopCeiling int

	// DealThreshold is the z-score at or below which a price is a deal
	DealThreshold float64

	// MinSamples is the minimum history size for a z-score
	MinSamples int

	// HistoryWindow is how many recent samples deal detection reads
	HistoryWindow int

	// ReferenceCurrency is the currency all prices are normalized to
	ReferenceCurrency string

	// ConversionRates maps currency codes to reference multipliers
	ConversionRates map[string]float64

	// Convenience maps airport codes to layover convenience coefficients
	Convenience map[string]float64

	// ConvenienceDefault is the neutral coefficient for unknown airports
	ConvenienceDefault float64

	// Groups maps destination group names to airport clusters
	Groups map[string]domain.AirportGroup
}

// DefaultSettings returns Settings with the stock tuning: 40/30/20/10
// weights, a 90 minute to 4 hour ideal layover window capped at 6 hours,
// a 3-stop ceiling, deals at one standard deviation below the mean with at
// least 5 samples, and USD as the reference currency.
func DefaultSettings() Settings {
	return Settings{
		Weights: Weights{
			Price:    0.40,
			Duration: 0.30,
			Stops:    0.20,
			Layover:  0.10,
		},
		MinLayover:         90 * time.Minute,
		MaxLayover:         4 * time.Hour,
		LayoverCap:         6 * time.Hour,
		StopCeiling:        3,
		DealThreshold:      -1.0,
		MinSamples:         5,
		HistoryWindow:      30,
		ReferenceCurrency:  "USD",
		ConversionRates:    map[string]float64{"USD": 1},
		Convenience:        map[string]float64{},
		ConvenienceDefault: 0.5,
		Groups:             map[string]domain.AirportGroup{},
	}
}
