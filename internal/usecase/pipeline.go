package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
	"github.com/flight-monitor/flight-deal-ranker/internal/infrastructure/logger"
	"github.com/flight-monitor/flight-deal-ranker/internal/infrastructure/timeutil"
)

// Default timeout values.
const (
	DefaultGlobalTimeout = 20 * time.Second
	DefaultFetchTimeout  = 5 * time.Second
)

// RankingPipeline is the sole public surface of the decision-making core.
// Rank expands the destination group, fetches raw offers per (airport, date)
// combination, normalizes, filters, scores and ranks them, and assembles the
// recommendation bundle.
type RankingPipeline interface {
	Rank(ctx context.Context, req domain.RankingRequest) (*domain.RankingBundle, error)
}

// Config contains timeout configuration for the pipeline.
type Config struct {
	GlobalTimeout time.Duration
	FetchTimeout  time.Duration
}

// DefaultConfig returns the default pipeline timeout configuration.
func DefaultConfig() Config {
	return Config{
		GlobalTimeout: DefaultGlobalTimeout,
		FetchTimeout:  DefaultFetchTimeout,
	}
}

// rankingPipeline implements RankingPipeline using the scatter-gather pattern
// over (airport, date) combinations.
type rankingPipeline struct {
	sources       []domain.OfferSource
	settings      Settings
	normalizer    *Normalizer
	layover       *LayoverEvaluator
	deals         *DealDetector
	clock         timeutil.Clock
	log           *logger.Logger
	globalTimeout time.Duration
	fetchTimeout  time.Duration
}

// NewRankingPipeline creates a RankingPipeline. store may be nil, in which
// case deal significance is always unknown. If config is nil, default
// timeouts are used.
func NewRankingPipeline(
	sources []domain.OfferSource,
	store domain.HistoryStore,
	settings Settings,
	config *Config,
	clock timeutil.Clock,
	log *logger.Logger,
) RankingPipeline {
	cfg := DefaultConfig()
	if config != nil {
		if config.GlobalTimeout > 0 {
			cfg.GlobalTimeout = config.GlobalTimeout
		}
		if config.FetchTimeout > 0 {
			cfg.FetchTimeout = config.FetchTimeout
		}
	}
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}

	return &rankingPipeline{
		sources:       sources,
		settings:      settings,
		normalizer:    NewNormalizer(settings, log),
		layover:       NewLayoverEvaluator(settings),
		deals:         NewDealDetector(store, settings, log),
		clock:         clock,
		log:           log,
		globalTimeout: cfg.GlobalTimeout,
		fetchTimeout:  cfg.FetchTimeout,
	}
}

// combination is one (destination airport, departure date) fetch unit.
type combination struct {
	Airport string
	Date    string
}

// comboResult holds the gathered result of one combination's fetches.
type comboResult struct {
	Combo  combination
	Offers []domain.RawOffer
	Err    error
}

// Rank implements RankingPipeline.Rank.
func (p *rankingPipeline) Rank(ctx context.Context, req domain.RankingRequest) (*domain.RankingBundle, error) {
	start := p.clock.Now()

	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	group, ok := p.settings.Groups[req.DestinationGroup]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownGroup, req.DestinationGroup)
	}

	if len(p.sources) == 0 {
		return nil, domain.ErrAllSourcesFailed
	}

	combos := p.buildCombinations(req, group)
	if len(combos) == 0 {
		return nil, fmt.Errorf("%w: every window date is excluded", domain.ErrInvalidRequest)
	}

	ctx, cancel := context.WithTimeout(ctx, p.globalTimeout)
	defer cancel()

	results := p.scatterGather(ctx, req.Origin, combos)

	var (
		raws     []domain.RawOffer
		warnings []domain.FetchWarning
		failed   int
	)
	for _, res := range results {
		if res.Err != nil {
			failed++
			warnings = append(warnings, domain.FetchWarning{
				Airport: res.Combo.Airport,
				Date:    res.Combo.Date,
				Reason:  res.Err.Error(),
			})
			continue
		}
		raws = append(raws, res.Offers...)
	}

	if failed == len(combos) {
		return nil, fmt.Errorf("%w: %d of %d combinations failed", domain.ErrAllSourcesFailed, failed, len(combos))
	}

	options, rejections := p.normalizer.NormalizeBatch(raws)

	byDate := p.scoreCandidates(ctx, req.Origin, group.Name, options)

	outcome, err := RankCandidates(byDate, req, p.settings.Weights)
	if err != nil {
		return nil, err
	}

	var primary *domain.ScoredOption
	var alternatives []domain.ScoredOption
	if len(outcome.Shortlist) > 0 {
		primary = &outcome.Shortlist[0]
		alternatives = outcome.Shortlist[1:]
	}

	end := p.clock.Now()
	bundle := &domain.RankingBundle{
		Request:       req,
		Primary:       primary,
		Alternatives:  alternatives,
		FlexibleDates: outcome.Flexible,
		Stats:         batchPriceStats(outcome.PrimaryBatch),
		Warnings:      warnings,
		Substitution:  outcome.Substitution,
		Metadata: domain.RankingMetadata{
			CombinationsPlanned:   len(combos),
			CombinationsSucceeded: len(combos) - failed,
			CombinationsFailed:    failed,
			OffersSeen:            len(raws),
			OffersRejected:        len(rejections),
			ElapsedMs:             end.Sub(start).Milliseconds(),
			GeneratedAt:           end,
		},
	}

	p.log.Info().
		Str("origin", req.Origin).
		Str("group", req.DestinationGroup).
		Str("primary_date", outcome.PrimaryDate).
		Int("combinations", len(combos)).
		Int("failed", failed).
		Int("candidates", len(options)).
		Int("deals", bundle.DealCount()).
		Msg("Ranking run complete")

	return bundle, nil
}

// buildCombinations expands the destination group and flexible window into
// (airport, date) fetch units, skipping excluded dates up front.
func (p *rankingPipeline) buildCombinations(req domain.RankingRequest, group domain.AirportGroup) []combination {
	var combos []combination
	for _, date := range req.WindowDates() {
		if req.IsExcluded(date) {
			continue
		}
		for _, airport := range group.Members {
			combos = append(combos, combination{Airport: airport, Date: date})
		}
	}
	return combos
}

// scatterGather issues one concurrent fetch task per combination and waits
// for all of them to settle. Tasks own disjoint slices of the candidate set;
// results are merged only here, at the barrier.
func (p *rankingPipeline) scatterGather(ctx context.Context, origin string, combos []combination) []comboResult {
	resultsChan := make(chan comboResult, len(combos))

	var wg sync.WaitGroup
	for _, combo := range combos {
		wg.Add(1)
		go func(c combination) {
			defer wg.Done()
			p.fetchCombination(ctx, origin, c, resultsChan)
		}(combo)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	results := make([]comboResult, 0, len(combos))
	for res := range resultsChan {
		results = append(results, res)
	}
	return results
}

// fetchCombination queries every source for one combination with a per-fetch
// timeout and panic recovery. The combination fails only when all sources
// fail for it.
func (p *rankingPipeline) fetchCombination(ctx context.Context, origin string, combo combination, results chan<- comboResult) {
	ctx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	// A panicking source must not take the whole run down.
	defer func() {
		if r := recover(); r != nil {
			results <- comboResult{
				Combo: combo,
				Err:   fmt.Errorf("source panic: %v", r),
			}
		}
	}()

	var offers []domain.RawOffer
	var errs []error
	for _, source := range p.sources {
		fetched, err := source.Fetch(ctx, origin, combo.Airport, combo.Date)
		if err != nil {
			errs = append(errs, domain.NewSourceError(source.Name(), combo.Airport, combo.Date, err))
			continue
		}
		offers = append(offers, fetched...)
	}

	if len(offers) == 0 && len(errs) == len(p.sources) {
		results <- comboResult{Combo: combo, Err: errors.Join(errs...)}
		return
	}

	results <- comboResult{Combo: combo, Offers: offers}
}

// scoreCandidates applies the hard stop-count filter, layover scoring and
// deal detection, and groups candidates by departure date. Composite scores
// are left to the ranker, which normalizes per date batch.
func (p *rankingPipeline) scoreCandidates(ctx context.Context, origin, groupName string, options []domain.FlightOption) map[string][]domain.ScoredOption {
	byDate := make(map[string][]domain.ScoredOption)
	for _, option := range options {
		if !WithinStopCeiling(option, p.settings.StopCeiling) {
			continue
		}

		scored := domain.ScoredOption{
			FlightOption: option,
			LayoverScore: p.layover.Score(option),
			DealSignificance: p.deals.Evaluate(ctx, option.Price,
				domain.NewRouteKey(origin, groupName, option.Departure)),
		}
		date := option.DepartureDate()
		byDate[date] = append(byDate[date], scored)
	}
	return byDate
}

// batchPriceStats summarizes the primary-date candidate prices.
func batchPriceStats(batch []domain.ScoredOption) domain.PriceStats {
	if len(batch) == 0 {
		return domain.PriceStats{}
	}

	prices := make([]float64, len(batch))
	for i, o := range batch {
		prices[i] = o.Price
	}

	min, _ := stats.Min(prices)
	max, _ := stats.Max(prices)
	mean, _ := stats.Mean(prices)
	median, _ := stats.Median(prices)
	stdDev := 0.0
	if len(prices) > 1 {
		stdDev, _ = stats.StandardDeviationSample(prices)
	}

	return domain.PriceStats{
		Min:    min,
		Max:    max,
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Count:  len(prices),
	}
}

// Ensure rankingPipeline implements RankingPipeline at compile time.
var _ RankingPipeline = (*rankingPipeline)(nil)
