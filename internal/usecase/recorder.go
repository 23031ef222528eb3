package usecase

import (
	"context"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
	"github.com/flight-monitor/flight-deal-ranker/internal/infrastructure/logger"
	"github.com/flight-monitor/flight-deal-ranker/internal/infrastructure/timeutil"
)

// recordingPipeline decorates a RankingPipeline, writing the shortlist prices
// of each successful run into the history store. Today's observations become
// tomorrow's deal baseline.
type recordingPipeline struct {
	inner RankingPipeline
	store domain.HistoryStore
	clock timeutil.Clock
	log   *logger.Logger
}

// NewRecordingPipeline wraps a pipeline so that every successful run records
// its shortlist prices as history samples. Recording failures are logged and
// never fail the run.
func NewRecordingPipeline(inner RankingPipeline, store domain.HistoryStore, clock timeutil.Clock, log *logger.Logger) RankingPipeline {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &recordingPipeline{
		inner: inner,
		store: store,
		clock: clock,
		log:   log,
	}
}

// Rank delegates to the inner pipeline and records the resulting shortlist.
func (p *recordingPipeline) Rank(ctx context.Context, req domain.RankingRequest) (*domain.RankingBundle, error) {
	bundle, err := p.inner.Rank(ctx, req)
	if err != nil {
		return nil, err
	}
	if p.store != nil {
		p.recordShortlist(ctx, bundle)
	}
	return bundle, nil
}

// recordShortlist writes one sample per shortlist option.
func (p *recordingPipeline) recordShortlist(ctx context.Context, bundle *domain.RankingBundle) {
	now := p.clock.Now()

	options := make([]domain.ScoredOption, 0, 1+len(bundle.Alternatives))
	if bundle.Primary != nil {
		options = append(options, *bundle.Primary)
	}
	options = append(options, bundle.Alternatives...)

	for _, option := range options {
		key := domain.NewRouteKey(bundle.Request.Origin, bundle.Request.DestinationGroup, option.Departure)
		if err := p.store.RecordSample(ctx, key, option.Price, now); err != nil {
			p.log.Warn().
				Err(err).
				Str("route", key.String()).
				Msg("Failed to record price sample")
		}
	}
}

// Ensure recordingPipeline implements RankingPipeline at compile time.
var _ RankingPipeline = (*recordingPipeline)(nil)
