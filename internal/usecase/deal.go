package usecase

import (
	"context"

	"github.com/montanaflynn/stats"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
	"github.com/flight-monitor/flight-deal-ranker/internal/infrastructure/logger"
)

// DealDetector compares a candidate price against the historical price
// distribution for its route/date-bucket key and flags statistically
// significant drops. Too little history yields an "unknown" outcome, which
// downstream ranking must never read as "not a deal".
type DealDetector struct {
	store      domain.HistoryStore
	threshold  float64
	minSamples int
	window     int
	log        *logger.Logger
}

// NewDealDetector creates a DealDetector backed by the given history store.
// A nil store disables detection: every evaluation is unknown.
func NewDealDetector(store domain.HistoryStore, settings Settings, log *logger.Logger) *DealDetector {
	if log == nil {
		log = logger.Nop()
	}
	return &DealDetector{
		store:      store,
		threshold:  settings.DealThreshold,
		minSamples: settings.MinSamples,
		window:     settings.HistoryWindow,
		log:        log,
	}
}

// Evaluate returns the deal significance of a price for a route key.
// Oracle read failures degrade to unknown significance with a log; deal
// detection never aborts a ranking run.
func (d *DealDetector) Evaluate(ctx context.Context, price float64, key domain.RouteKey) domain.Significance {
	if d.store == nil {
		return domain.Significance{}
	}

	samples, err := d.store.QuerySamples(ctx, key, d.window)
	if err != nil {
		d.log.Warn().
			Str("route_key", key.String()).
			Err(err).
			Msg("History query failed, deal significance unknown")
		return domain.Significance{}
	}

	if len(samples) < d.minSamples {
		d.log.Debug().
			Str("route_key", key.String()).
			Int("samples", len(samples)).
			Int("min_samples", d.minSamples).
			Err(domain.ErrInsufficientHistory).
			Msg("Deal significance unknown")
		return domain.Significance{Samples: len(samples)}
	}

	prices := make([]float64, len(samples))
	for i, s := range samples {
		prices[i] = s.Price
	}

	mean, err := stats.Mean(prices)
	if err != nil {
		return domain.Significance{Samples: len(samples)}
	}
	stdDev, err := stats.StandardDeviationSample(prices)
	if err != nil || stdDev == 0 {
		// A flat distribution carries no significance signal.
		return domain.Significance{Samples: len(samples)}
	}

	z := (price - mean) / stdDev
	return domain.Significance{
		Known:   true,
		ZScore:  z,
		Deal:    z <= d.threshold,
		Samples: len(samples),
	}
}
