package usecase

import (
	"math"
	"sort"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
)

// ComputeCompositeScores calculates the composite rank score for each option
// in a batch using per-batch min-max normalization:
//
//	Score = wPrice·(1 − nPrice) + wDuration·(1 − nDuration) +
//	        wStops·(1 − nStops) + wLayover·LayoverScore
//
// Normalized values are relative to the current batch, not absolute. When a
// dimension is uniform across the batch (min == max) it contributes its full
// favorable weight to every option, so it cannot distort the ranking.
//
// Higher score = better option. The input slice is not mutated.
func ComputeCompositeScores(batch []domain.ScoredOption, weights Weights) []domain.ScoredOption {
	if len(batch) == 0 {
		return batch
	}

	minPrice, maxPrice := priceRange(batch)
	minDuration, maxDuration := durationRange(batch)
	minStops, maxStops := stopsRange(batch)

	result := make([]domain.ScoredOption, len(batch))
	for i, option := range batch {
		result[i] = option

		priceTerm := favorable(option.Price, minPrice, maxPrice)
		durationTerm := favorable(float64(option.Duration), float64(minDuration), float64(maxDuration))
		stopsTerm := favorable(float64(option.Stops), float64(minStops), float64(maxStops))

		result[i].CompositeScore = weights.Price*priceTerm +
			weights.Duration*durationTerm +
			weights.Stops*stopsTerm +
			weights.Layover*option.LayoverScore
	}

	return result
}

// favorable returns 1 − minmax(value), the "lower is better" contribution in
// [0,1]. A uniform dimension (min == max) returns 1 so it contributes its
// maximum favorable value to every option.
func favorable(value, min, max float64) float64 {
	if max == min {
		return 1
	}
	return 1 - (value-min)/(max-min)
}

// SortByComposite orders a batch by non-increasing composite score, breaking
// ties by fewer stops, then shorter duration, then lower price, then stable
// input order. Output is deterministic for identical inputs.
// The input slice is not mutated.
func SortByComposite(batch []domain.ScoredOption) []domain.ScoredOption {
	result := make([]domain.ScoredOption, len(batch))
	copy(result, batch)

	if len(result) <= 1 {
		return result
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.CompositeScore != b.CompositeScore {
			return a.CompositeScore > b.CompositeScore
		}
		if a.Stops != b.Stops {
			return a.Stops < b.Stops
		}
		if a.Duration != b.Duration {
			return a.Duration < b.Duration
		}
		if a.Price != b.Price {
			return a.Price < b.Price
		}
		return false
	})

	return result
}

// priceRange finds the minimum and maximum price across the batch.
func priceRange(batch []domain.ScoredOption) (min, max float64) {
	min = math.MaxFloat64
	max = -math.MaxFloat64
	for _, o := range batch {
		if o.Price < min {
			min = o.Price
		}
		if o.Price > max {
			max = o.Price
		}
	}
	return min, max
}

// durationRange finds the minimum and maximum total duration across the batch.
func durationRange(batch []domain.ScoredOption) (min, max int64) {
	min = math.MaxInt64
	max = math.MinInt64
	for _, o := range batch {
		d := int64(o.Duration)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

// stopsRange finds the minimum and maximum stop count across the batch.
func stopsRange(batch []domain.ScoredOption) (min, max int) {
	min = math.MaxInt
	max = math.MinInt
	for _, o := range batch {
		if o.Stops < min {
			min = o.Stops
		}
		if o.Stops > max {
			max = o.Stops
		}
	}
	return min, max
}
