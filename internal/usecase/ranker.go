package usecase

import (
	"sort"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
)

// RankOutcome is the Candidate Ranker's result: the shortlist for the primary
// date, the flexible-date comparison row, and an explicit substitution notice
// when the primary date differs from the requested target.
type RankOutcome struct {
	// PrimaryDate is the date the shortlist was built for. Equals the
	// requested target date unless a substitution occurred.
	PrimaryDate string

	// Shortlist is the ranked top-N for PrimaryDate, Rank fields set.
	Shortlist []domain.ScoredOption

	// PrimaryBatch is the full deduplicated, scored candidate set for
	// PrimaryDate, in rank order. Superset of Shortlist; used for batch
	// statistics.
	PrimaryBatch []domain.ScoredOption

	// Flexible holds the single best option per non-excluded window date,
	// in chronological order.
	Flexible []domain.FlexOption

	// Substitution is non-nil when PrimaryDate differs from the request's
	// target date.
	Substitution *domain.Substitution
}

// Deduplicate collapses options that are identical in carrier, flight numbers
// and departure time across sources, keeping the lowest price. First-seen
// order is preserved, which makes deduplication idempotent.
func Deduplicate(batch []domain.ScoredOption) []domain.ScoredOption {
	seen := make(map[string]int, len(batch))
	result := make([]domain.ScoredOption, 0, len(batch))

	for _, option := range batch {
		key := option.DedupKey()
		if idx, ok := seen[key]; ok {
			if option.Price < result[idx].Price {
				result[idx] = option
			}
			continue
		}
		seen[key] = len(result)
		result = append(result, option)
	}

	return result
}

// RankCandidates deduplicates, scores and ranks the per-date candidate sets
// and assembles the ranking outcome for a request.
//
// Excluded dates are removed before consideration. If the target date itself
// is excluded, or has no candidates, the best available window date becomes
// the primary and the substitution is reported explicitly. Returns
// domain.ErrNoOptions when no date in the window has any candidate.
func RankCandidates(byDate map[string][]domain.ScoredOption, req domain.RankingRequest, weights Weights) (*RankOutcome, error) {
	ranked := make(map[string][]domain.ScoredOption, len(byDate))
	for date, batch := range byDate {
		if req.IsExcluded(date) || len(batch) == 0 {
			continue
		}
		deduped := Deduplicate(batch)
		scored := ComputeCompositeScores(deduped, weights)
		ranked[date] = SortByComposite(scored)
	}

	if len(ranked) == 0 {
		return nil, domain.ErrNoOptions
	}

	outcome := &RankOutcome{PrimaryDate: req.TargetDate}

	if _, ok := ranked[req.TargetDate]; !ok {
		best := bestAvailableDate(ranked, weights)
		reason := "no options available on target date"
		if req.IsExcluded(req.TargetDate) {
			reason = "target date excluded by schedule conflict"
		}
		outcome.PrimaryDate = best
		outcome.Substitution = &domain.Substitution{
			RequestedDate: req.TargetDate,
			ActualDate:    best,
			Reason:        reason,
		}
	}

	outcome.PrimaryBatch = ranked[outcome.PrimaryDate]

	limit := req.Limit
	if limit > len(outcome.PrimaryBatch) {
		limit = len(outcome.PrimaryBatch)
	}
	outcome.Shortlist = make([]domain.ScoredOption, limit)
	copy(outcome.Shortlist, outcome.PrimaryBatch[:limit])
	for i := range outcome.Shortlist {
		outcome.Shortlist[i].Rank = i + 1
	}

	for _, date := range req.WindowDates() {
		if batch, ok := ranked[date]; ok {
			outcome.Flexible = append(outcome.Flexible, domain.FlexOption{
				Date:   date,
				Option: batch[0],
			})
		}
	}

	return outcome, nil
}

// bestAvailableDate picks the substitute primary date by scoring each date's
// best option as one cross-date comparison batch and taking the winner.
func bestAvailableDate(ranked map[string][]domain.ScoredOption, weights Weights) string {
	bests := make([]domain.ScoredOption, 0, len(ranked))
	for _, batch := range ranked {
		bests = append(bests, batch[0])
	}
	// Stable comparison input: chronological by departure.
	bests = sortByDeparture(bests)

	winner := SortByComposite(ComputeCompositeScores(bests, weights))[0]
	return winner.DepartureDate()
}

// sortByDeparture orders options by departure time ascending.
func sortByDeparture(options []domain.ScoredOption) []domain.ScoredOption {
	result := make([]domain.ScoredOption, len(options))
	copy(result, options)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Departure.Before(result[j].Departure)
	})
	return result
}
