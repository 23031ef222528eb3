package usecase

import (
	"time"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
)

// legalMinimumConnection is the floor below which a connection is treated as
// unmakeable. The penalty saturates at 1.0 here.
const legalMinimumConnection = 30 * time.Minute

// LayoverEvaluator scores the connection quality of a flight option.
// Direct flights always score 1.0; connecting options combine a gap-length
// penalty with a per-airport convenience coefficient.
type LayoverEvaluator struct {
	minGap      time.Duration
	maxGap      time.Duration
	penaltyCap  time.Duration
	convenience map[string]float64
	fallback    float64
}

// NewLayoverEvaluator creates a LayoverEvaluator from the given settings.
func NewLayoverEvaluator(settings Settings) *LayoverEvaluator {
	return &LayoverEvaluator{
		minGap:      settings.MinLayover,
		maxGap:      settings.MaxLayover,
		penaltyCap:  settings.LayoverCap,
		convenience: settings.Convenience,
		fallback:    settings.ConvenienceDefault,
	}
}

// Score returns the layover score in [0,1] for an option.
// The score is (1 − average gap penalty) × (average convenience coefficient
// across layover airports), floored at 0.
func (e *LayoverEvaluator) Score(option domain.FlightOption) float64 {
	gaps := option.LayoverGaps()
	if len(gaps) == 0 {
		return 1.0
	}

	var penaltySum, convenienceSum float64
	for _, gap := range gaps {
		penaltySum += e.gapPenalty(gap.Duration)
		convenienceSum += e.airportConvenience(gap.Airport)
	}

	avgPenalty := penaltySum / float64(len(gaps))
	avgConvenience := convenienceSum / float64(len(gaps))

	score := (1 - avgPenalty) * avgConvenience
	if score < 0 {
		return 0
	}
	return score
}

// gapPenalty returns the penalty in [0,1] for one inter-segment gap.
// Gaps inside [minGap, maxGap] cost nothing. Below minGap the penalty grows
// quadratically toward 1.0 at the legal minimum connection time; above
// maxGap it grows linearly, saturating at the cap.
func (e *LayoverEvaluator) gapPenalty(gap time.Duration) float64 {
	switch {
	case gap <= legalMinimumConnection:
		return 1.0
	case gap < e.minGap:
		shortfall := float64(e.minGap-gap) / float64(e.minGap-legalMinimumConnection)
		return shortfall * shortfall
	case gap <= e.maxGap:
		return 0
	case gap >= e.penaltyCap:
		return 1.0
	default:
		return float64(gap-e.maxGap) / float64(e.penaltyCap-e.maxGap)
	}
}

// airportConvenience returns the configured convenience coefficient for a
// layover airport, or the neutral default for unknown airports.
func (e *LayoverEvaluator) airportConvenience(code string) float64 {
	if v, ok := e.convenience[code]; ok {
		return v
	}
	return e.fallback
}

// WithinStopCeiling reports whether an option passes the hard transfer-count
// filter. Options at or above the ceiling are excluded from ranking entirely,
// regardless of price or score.
func WithinStopCeiling(option domain.FlightOption, ceiling int) bool {
	return option.Stops < ceiling
}
