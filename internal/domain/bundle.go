package domain

import "time"

// Significance is the outcome of deal detection for one option. Known is
// false when the route/date-bucket has too little history; that is a
// first-class "unknown" outcome, never to be read as "not a deal".
type Significance struct {
	// Known is true when enough history existed to compute a z-score
	Known bool `json:"known"`

	// ZScore is the option's price z-score against the historical
	// distribution. Only meaningful when Known is true.
	ZScore float64 `json:"zScore,omitempty"`

	// Deal is true when ZScore is at or below the configured threshold
	Deal bool `json:"deal"`

	// Samples is the number of historical samples behind the z-score
	Samples int `json:"samples"`
}

// ScoredOption is a FlightOption annotated with the pipeline's derived
// fields. Immutable once produced.
type ScoredOption struct {
	FlightOption

	// LayoverScore is the connection quality score in [0,1]; 1.0 for direct
	LayoverScore float64 `json:"layoverScore"`

	// DealSignificance is the historical-deal outcome for this option
	DealSignificance Significance `json:"dealSignificance"`

	// CompositeScore is the weighted rank score in [0,1]; higher is better
	CompositeScore float64 `json:"compositeScore"`

	// Rank is the 1-based position within the target-date shortlist
	Rank int `json:"rank,omitempty"`
}

// FetchWarning records one (airport, date) combination whose acquisition
// failed or timed out. The pipeline degrades to partial results and attaches
// these to the bundle rather than aborting.
type FetchWarning struct {
	// Airport is the destination airport of the failed combination
	Airport string `json:"airport"`

	// Date is the departure date of the failed combination
	Date string `json:"date"`

	// Reason describes the failure
	Reason string `json:"reason"`
}

// Substitution reports that the requested target date could not be used and
// another window date was promoted to primary. Never silent.
type Substitution struct {
	// RequestedDate is the originally requested target date
	RequestedDate string `json:"requestedDate"`

	// ActualDate is the window date promoted to primary
	ActualDate string `json:"actualDate"`

	// Reason explains the substitution (excluded date, no options)
	Reason string `json:"reason"`
}

// PriceStats summarizes the target-date candidate prices.
type PriceStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
	Count  int     `json:"count"`
}

// FlexOption is the single best option for one date in the flexible window.
type FlexOption struct {
	// Date is the departure date (YYYY-MM-DD)
	Date string `json:"date"`

	// Option is the best-scoring option for that date
	Option ScoredOption `json:"option"`
}

// RankingMetadata describes how a ranking run executed.
type RankingMetadata struct {
	// CombinationsPlanned is the number of (airport, date) fetches issued
	CombinationsPlanned int `json:"combinationsPlanned"`

	// CombinationsSucceeded is the number of fetches that returned offers
	CombinationsSucceeded int `json:"combinationsSucceeded"`

	// CombinationsFailed is the number of fetches that failed or timed out
	CombinationsFailed int `json:"combinationsFailed"`

	// OffersSeen is the raw offer count before normalization and filtering
	OffersSeen int `json:"offersSeen"`

	// OffersRejected is the count of offers the normalizer rejected
	OffersRejected int `json:"offersRejected"`

	// ElapsedMs is the total run duration in milliseconds
	ElapsedMs int64 `json:"elapsedMs"`

	// GeneratedAt is when the bundle was produced
	GeneratedAt time.Time `json:"generatedAt"`
}

// RankingBundle is the pipeline's output artifact: the primary
// recommendation, the remaining shortlist, the flexible-date comparison row
// and any warnings the caller must see.
type RankingBundle struct {
	// Request echoes the originating request
	Request RankingRequest `json:"request"`

	// Primary is the top recommendation. Nil only when the bundle itself
	// could not be produced, in which case the pipeline returns an error
	// instead of a bundle.
	Primary *ScoredOption `json:"primary"`

	// Alternatives are the next best options for the primary date (size ≤ N−1)
	Alternatives []ScoredOption `json:"alternatives"`

	// FlexibleDates holds the best option per window date, chronological
	FlexibleDates []FlexOption `json:"flexibleDates"`

	// Stats summarizes the primary-date candidate prices
	Stats PriceStats `json:"stats"`

	// Warnings lists partial-result fetch failures
	Warnings []FetchWarning `json:"warnings,omitempty"`

	// Substitution is set when the primary comes from a different date than
	// requested
	Substitution *Substitution `json:"substitution,omitempty"`

	// Metadata describes the run
	Metadata RankingMetadata `json:"metadata"`
}

// DealCount returns how many shortlist options (primary included) are
// flagged as deals.
func (b *RankingBundle) DealCount() int {
	count := 0
	if b.Primary != nil && b.Primary.DealSignificance.Deal {
		count++
	}
	for _, alt := range b.Alternatives {
		if alt.DealSignificance.Deal {
			count++
		}
	}
	return count
}

// ShortlistPrices returns the prices of the primary and alternatives in rank
// order. Used by callers recording samples into the historical store.
func (b *RankingBundle) ShortlistPrices() []float64 {
	var prices []float64
	if b.Primary != nil {
		prices = append(prices, b.Primary.Price)
	}
	for _, alt := range b.Alternatives {
		prices = append(prices, alt.Price)
	}
	return prices
}
