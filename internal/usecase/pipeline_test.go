package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
)

// offersFor returns a single direct raw offer for the given airport and date.
func offersFor(airport, date string, price float64) []domain.RawOffer {
	return []domain.RawOffer{
		rawOffer(airport+"-"+date, price,
			rawSegment("DL10"+airport[:1], "MSP", airport,
				date+"T08:00:00Z", date+"T11:00:00Z")),
	}
}

// pipelineRequest asks for the target date only, so combinations are exactly
// the group's airports.
func pipelineRequest() domain.RankingRequest {
	return domain.RankingRequest{
		Origin:           "MSP",
		DestinationGroup: "arizona",
		TargetDate:       "2026-01-15",
		FlexDays:         0,
		Limit:            5,
	}
}

func TestPipelineRankSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := domain.NewMockOfferSource(ctrl)
	source.EXPECT().Name().Return("amadeus").AnyTimes()
	source.EXPECT().
		Fetch(gomock.Any(), "MSP", gomock.Any(), "2026-01-15").
		DoAndReturn(func(_ context.Context, _, airport, date string) ([]domain.RawOffer, error) {
			switch airport {
			case "PHX":
				return offersFor(airport, date, 180), nil
			case "TUS":
				return offersFor(airport, date, 240), nil
			default:
				return nil, nil
			}
		}).
		Times(3)

	p := NewRankingPipeline([]domain.OfferSource{source}, nil, testSettings(), nil, nil, nil)

	bundle, err := p.Rank(context.Background(), pipelineRequest())
	require.NoError(t, err)

	require.NotNil(t, bundle.Primary)
	assert.Equal(t, 180.0, bundle.Primary.Price)
	assert.Len(t, bundle.Alternatives, 1)
	assert.Empty(t, bundle.Warnings)
	assert.Nil(t, bundle.Substitution)

	assert.Equal(t, 3, bundle.Metadata.CombinationsPlanned)
	assert.Equal(t, 3, bundle.Metadata.CombinationsSucceeded)
	assert.Equal(t, 0, bundle.Metadata.CombinationsFailed)
	assert.Equal(t, 2, bundle.Metadata.OffersSeen)
	assert.Equal(t, 0, bundle.Metadata.OffersRejected)

	assert.Equal(t, 180.0, bundle.Stats.Min)
	assert.Equal(t, 240.0, bundle.Stats.Max)
	assert.Equal(t, 2, bundle.Stats.Count)
}

func TestPipelineRankPartialFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := domain.NewMockOfferSource(ctrl)
	source.EXPECT().Name().Return("amadeus").AnyTimes()
	source.EXPECT().
		Fetch(gomock.Any(), "MSP", gomock.Any(), "2026-01-15").
		DoAndReturn(func(_ context.Context, _, airport, _ string) ([]domain.RawOffer, error) {
			if airport == "PHX" {
				return offersFor("PHX", "2026-01-15", 200), nil
			}
			return nil, errors.New("upstream unavailable")
		}).
		Times(3)

	p := NewRankingPipeline([]domain.OfferSource{source}, nil, testSettings(), nil, nil, nil)

	bundle, err := p.Rank(context.Background(), pipelineRequest())
	require.NoError(t, err)

	// Two of three combinations failed; the run degrades to partial results
	// with one warning per failed combination.
	require.NotNil(t, bundle.Primary)
	require.Len(t, bundle.Warnings, 2)
	for _, w := range bundle.Warnings {
		assert.Equal(t, "2026-01-15", w.Date)
		assert.Contains(t, w.Reason, "upstream unavailable")
	}
	assert.Equal(t, 2, bundle.Metadata.CombinationsFailed)
}

func TestPipelineRankAllCombinationsFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := domain.NewMockOfferSource(ctrl)
	source.EXPECT().Name().Return("amadeus").AnyTimes()
	source.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("down")).
		Times(3)

	p := NewRankingPipeline([]domain.OfferSource{source}, nil, testSettings(), nil, nil, nil)

	_, err := p.Rank(context.Background(), pipelineRequest())
	assert.ErrorIs(t, err, domain.ErrAllSourcesFailed)
}

func TestPipelineRankPanickingSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := domain.NewMockOfferSource(ctrl)
	source.EXPECT().Name().Return("amadeus").AnyTimes()
	source.EXPECT().
		Fetch(gomock.Any(), "MSP", gomock.Any(), "2026-01-15").
		DoAndReturn(func(_ context.Context, _, airport, _ string) ([]domain.RawOffer, error) {
			if airport == "FLG" {
				panic("boom")
			}
			return offersFor(airport, "2026-01-15", 200), nil
		}).
		Times(3)

	p := NewRankingPipeline([]domain.OfferSource{source}, nil, testSettings(), nil, nil, nil)

	bundle, err := p.Rank(context.Background(), pipelineRequest())
	require.NoError(t, err)

	// The panicking combination becomes a warning, not a crash.
	require.Len(t, bundle.Warnings, 1)
	assert.Equal(t, "FLG", bundle.Warnings[0].Airport)
	assert.Contains(t, bundle.Warnings[0].Reason, "panic")
}

func TestPipelineRankUnknownGroup(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := domain.NewMockOfferSource(ctrl)

	p := NewRankingPipeline([]domain.OfferSource{source}, nil, testSettings(), nil, nil, nil)

	req := pipelineRequest()
	req.DestinationGroup = "atlantis"

	_, err := p.Rank(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnknownGroup)
}

func TestPipelineRankInvalidRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := domain.NewMockOfferSource(ctrl)

	p := NewRankingPipeline([]domain.OfferSource{source}, nil, testSettings(), nil, nil, nil)

	req := pipelineRequest()
	req.Origin = "not-a-code"

	_, err := p.Rank(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestPipelineRankNoSources(t *testing.T) {
	p := NewRankingPipeline(nil, nil, testSettings(), nil, nil, nil)

	_, err := p.Rank(context.Background(), pipelineRequest())
	assert.ErrorIs(t, err, domain.ErrAllSourcesFailed)
}

func TestPipelineRankEveryWindowDateExcluded(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := domain.NewMockOfferSource(ctrl)

	p := NewRankingPipeline([]domain.OfferSource{source}, nil, testSettings(), nil, nil, nil)

	req := pipelineRequest()
	req.ExcludedDates = []string{"2026-01-15"}

	_, err := p.Rank(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestPipelineRankStopCeiling(t *testing.T) {
	// A three-stop itinerary never reaches ranking, whatever its price.
	threeStop := domain.RawOffer{
		ID:       "marathon",
		Source:   "amadeus",
		Price:    20,
		Currency: "USD",
		Segments: []domain.RawSegment{
			rawSegment("DL100", "MSP", "ORD", "2026-01-15T06:00:00Z", "2026-01-15T07:00:00Z"),
			rawSegment("DL200", "ORD", "DEN", "2026-01-15T09:00:00Z", "2026-01-15T10:00:00Z"),
			rawSegment("DL300", "DEN", "ABQ", "2026-01-15T12:00:00Z", "2026-01-15T13:00:00Z"),
			rawSegment("DL400", "ABQ", "PHX", "2026-01-15T15:00:00Z", "2026-01-15T16:00:00Z"),
		},
	}

	ctrl := gomock.NewController(t)
	source := domain.NewMockOfferSource(ctrl)
	source.EXPECT().Name().Return("amadeus").AnyTimes()
	source.EXPECT().
		Fetch(gomock.Any(), "MSP", gomock.Any(), "2026-01-15").
		DoAndReturn(func(_ context.Context, _, airport, _ string) ([]domain.RawOffer, error) {
			if airport == "PHX" {
				return []domain.RawOffer{
					threeStop,
					rawOffer("direct", 300,
						rawSegment("WN417", "MSP", "PHX", "2026-01-15T13:40:00Z", "2026-01-15T16:00:00Z")),
				}, nil
			}
			return nil, nil
		}).
		Times(3)

	p := NewRankingPipeline([]domain.OfferSource{source}, nil, testSettings(), nil, nil, nil)

	bundle, err := p.Rank(context.Background(), pipelineRequest())
	require.NoError(t, err)

	require.NotNil(t, bundle.Primary)
	assert.Equal(t, "WN417", bundle.Primary.Segments[0].FlightNumber)
	assert.Len(t, bundle.Alternatives, 0)
}

func TestPipelineRankDeduplicatesAcrossSources(t *testing.T) {
	makeSource := func(ctrl *gomock.Controller, name string, price float64) *domain.MockOfferSource {
		source := domain.NewMockOfferSource(ctrl)
		source.EXPECT().Name().Return(name).AnyTimes()
		source.EXPECT().
			Fetch(gomock.Any(), "MSP", gomock.Any(), "2026-01-15").
			DoAndReturn(func(_ context.Context, _, airport, _ string) ([]domain.RawOffer, error) {
				if airport != "PHX" {
					return nil, nil
				}
				offer := rawOffer(fmt.Sprintf("%s-offer", name), price,
					rawSegment("DL1542", "MSP", "PHX", "2026-01-15T08:05:00Z", "2026-01-15T10:30:00Z"))
				offer.Source = name
				return []domain.RawOffer{offer}, nil
			}).
			Times(3)
		return source
	}

	ctrl := gomock.NewController(t)
	a := makeSource(ctrl, "alpha", 210)
	b := makeSource(ctrl, "beta", 185)

	p := NewRankingPipeline([]domain.OfferSource{a, b}, nil, testSettings(), nil, nil, nil)

	bundle, err := p.Rank(context.Background(), pipelineRequest())
	require.NoError(t, err)

	// The same itinerary from two sources collapses to the cheaper quote.
	require.NotNil(t, bundle.Primary)
	assert.Empty(t, bundle.Alternatives)
	assert.Equal(t, 185.0, bundle.Primary.Price)
	assert.Equal(t, "beta", bundle.Primary.Source)
}
