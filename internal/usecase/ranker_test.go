package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
)

// candidate builds a ScoredOption with a real itinerary so DedupKey and
// DepartureDate work.
func candidate(flightNumber string, date string, price float64, stops int) domain.ScoredOption {
	day, _ := time.Parse("2006-01-02", date)
	departure := time.Date(day.Year(), day.Month(), day.Day(), 8, 0, 0, 0, time.UTC)

	segments := []domain.Segment{
		{
			Carrier:      flightNumber[:2],
			FlightNumber: flightNumber,
			Origin:       "MSP",
			Destination:  "PHX",
			Departure:    departure,
			Arrival:      departure.Add(3 * time.Hour),
		},
	}
	duration := 3 * time.Hour
	if stops > 0 {
		mid := departure.Add(90 * time.Minute)
		segments = []domain.Segment{
			{
				Carrier:      flightNumber[:2],
				FlightNumber: flightNumber,
				Origin:       "MSP",
				Destination:  "DEN",
				Departure:    departure,
				Arrival:      mid,
			},
			{
				Carrier:      flightNumber[:2],
				FlightNumber: flightNumber + "B",
				Origin:       "DEN",
				Destination:  "PHX",
				Departure:    mid.Add(2 * time.Hour),
				Arrival:      mid.Add(3 * time.Hour),
			},
		}
		duration = segments[1].Arrival.Sub(departure)
	}

	return domain.ScoredOption{
		FlightOption: domain.FlightOption{
			ID:          flightNumber + "-" + date,
			Origin:      "MSP",
			Destination: "PHX",
			Departure:   departure,
			Arrival:     segments[len(segments)-1].Arrival,
			Segments:    segments,
			Duration:    duration,
			Price:       price,
			Currency:    "USD",
			Stops:       stops,
			Source:      "amadeus",
		},
		LayoverScore: 1.0,
	}
}

func rankingRequest(target string) domain.RankingRequest {
	return domain.RankingRequest{
		Origin:           "MSP",
		DestinationGroup: "arizona",
		TargetDate:       target,
		FlexDays:         3,
		Limit:            5,
	}
}

func TestDeduplicate(t *testing.T) {
	t.Run("keeps the lowest price for the same itinerary", func(t *testing.T) {
		expensive := candidate("DL100", "2026-01-15", 250, 0)
		cheap := candidate("DL100", "2026-01-15", 199, 0)
		cheap.Source = "other"
		other := candidate("AA200", "2026-01-15", 220, 0)

		result := Deduplicate([]domain.ScoredOption{expensive, cheap, other})

		require.Len(t, result, 2)
		assert.Equal(t, 199.0, result[0].Price)
		assert.Equal(t, "other", result[0].Source)
		assert.Equal(t, "AA200-2026-01-15", result[1].ID)
	})

	t.Run("preserves first-seen order", func(t *testing.T) {
		a := candidate("DL100", "2026-01-15", 200, 0)
		b := candidate("AA200", "2026-01-15", 180, 0)
		c := candidate("DL100", "2026-01-15", 150, 0)

		result := Deduplicate([]domain.ScoredOption{a, b, c})

		require.Len(t, result, 2)
		assert.Equal(t, 150.0, result[0].Price) // DL100 slot keeps its position
		assert.Equal(t, "AA200-2026-01-15", result[1].ID)
	})

	t.Run("is idempotent", func(t *testing.T) {
		batch := []domain.ScoredOption{
			candidate("DL100", "2026-01-15", 250, 0),
			candidate("DL100", "2026-01-15", 199, 0),
			candidate("AA200", "2026-01-15", 220, 0),
		}

		once := Deduplicate(batch)
		twice := Deduplicate(once)

		assert.Equal(t, once, twice)
	})
}

func TestRankCandidatesTargetDate(t *testing.T) {
	byDate := map[string][]domain.ScoredOption{
		"2026-01-15": {
			candidate("DL100", "2026-01-15", 250, 0),
			candidate("AA200", "2026-01-15", 150, 1),
			candidate("WN300", "2026-01-15", 300, 0),
		},
		"2026-01-14": {
			candidate("UA400", "2026-01-14", 120, 1),
		},
	}

	outcome, err := RankCandidates(byDate, rankingRequest("2026-01-15"), defaultWeights())
	require.NoError(t, err)

	assert.Equal(t, "2026-01-15", outcome.PrimaryDate)
	assert.Nil(t, outcome.Substitution)
	require.Len(t, outcome.Shortlist, 3)

	// Ranks are 1-based and contiguous.
	for i, option := range outcome.Shortlist {
		assert.Equal(t, i+1, option.Rank)
	}

	// Flexible row is chronological and holds each date's best.
	require.Len(t, outcome.Flexible, 2)
	assert.Equal(t, "2026-01-14", outcome.Flexible[0].Date)
	assert.Equal(t, "2026-01-15", outcome.Flexible[1].Date)
}

func TestRankCandidatesLimit(t *testing.T) {
	batch := []domain.ScoredOption{
		candidate("DL100", "2026-01-15", 100, 0),
		candidate("AA200", "2026-01-15", 120, 0),
		candidate("WN300", "2026-01-15", 140, 0),
		candidate("UA400", "2026-01-15", 160, 0),
	}
	req := rankingRequest("2026-01-15")
	req.Limit = 2

	outcome, err := RankCandidates(map[string][]domain.ScoredOption{"2026-01-15": batch}, req, defaultWeights())
	require.NoError(t, err)

	assert.Len(t, outcome.Shortlist, 2)
	assert.Len(t, outcome.PrimaryBatch, 4)
}

func TestRankCandidatesExcludedTarget(t *testing.T) {
	byDate := map[string][]domain.ScoredOption{
		"2026-01-15": {candidate("DL100", "2026-01-15", 100, 0)},
		"2026-01-16": {candidate("AA200", "2026-01-16", 150, 0)},
	}
	req := rankingRequest("2026-01-15")
	req.ExcludedDates = []string{"2026-01-15"}

	outcome, err := RankCandidates(byDate, req, defaultWeights())
	require.NoError(t, err)

	// The excluded target's candidates must not be used, and the
	// substitution is reported explicitly.
	assert.Equal(t, "2026-01-16", outcome.PrimaryDate)
	require.NotNil(t, outcome.Substitution)
	assert.Equal(t, "2026-01-15", outcome.Substitution.RequestedDate)
	assert.Equal(t, "2026-01-16", outcome.Substitution.ActualDate)
	assert.Contains(t, outcome.Substitution.Reason, "excluded")

	require.Len(t, outcome.Flexible, 1)
	assert.Equal(t, "2026-01-16", outcome.Flexible[0].Date)
}

func TestRankCandidatesEmptyTargetDate(t *testing.T) {
	byDate := map[string][]domain.ScoredOption{
		"2026-01-14": {candidate("UA400", "2026-01-14", 180, 1)},
		"2026-01-16": {candidate("DL100", "2026-01-16", 150, 0)},
	}

	outcome, err := RankCandidates(byDate, rankingRequest("2026-01-15"), defaultWeights())
	require.NoError(t, err)

	// The direct, cheaper option wins the cross-date comparison.
	assert.Equal(t, "2026-01-16", outcome.PrimaryDate)
	require.NotNil(t, outcome.Substitution)
	assert.Contains(t, outcome.Substitution.Reason, "no options")
}

func TestRankCandidatesNoOptionsAnywhere(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := RankCandidates(map[string][]domain.ScoredOption{}, rankingRequest("2026-01-15"), defaultWeights())
		assert.ErrorIs(t, err, domain.ErrNoOptions)
	})

	t.Run("every date excluded", func(t *testing.T) {
		byDate := map[string][]domain.ScoredOption{
			"2026-01-15": {candidate("DL100", "2026-01-15", 100, 0)},
		}
		req := rankingRequest("2026-01-15")
		req.ExcludedDates = []string{"2026-01-15"}

		_, err := RankCandidates(byDate, req, defaultWeights())
		assert.ErrorIs(t, err, domain.ErrNoOptions)
	})
}
