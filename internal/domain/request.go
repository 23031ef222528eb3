package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Request defaults.
const (
	// DefaultFlexDays is the default flexible-date window (± days).
	DefaultFlexDays = 3

	// DefaultLimit is the default shortlist size.
	DefaultLimit = 5

	// MaxFlexDays bounds the flexible-date window.
	MaxFlexDays = 7

	// MaxLimit bounds the shortlist size.
	MaxLimit = 20
)

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// groupNameRegex matches destination group names (lowercase words and dashes).
var groupNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// RankingRequest defines the parameters for one ranking run.
type RankingRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "LAX")
	Origin string `json:"origin"`

	// DestinationGroup is the name of the destination cluster (e.g., "arizona")
	DestinationGroup string `json:"destinationGroup"`

	// TargetDate is the preferred departure date in YYYY-MM-DD format
	TargetDate string `json:"targetDate"`

	// FlexDays is the ± day window around TargetDate to also consider
	FlexDays int `json:"flexDays"`

	// ExcludedDates are dates the traveller cannot fly (YYYY-MM-DD)
	ExcludedDates []string `json:"excludedDates,omitempty"`

	// Limit is the shortlist size N for the target date
	Limit int `json:"limit"`
}

// Validate checks if the ranking request is valid.
// Returns a wrapped ErrInvalidRequest error if validation fails.
func (r *RankingRequest) Validate() error {
	if r.Origin == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidRequest)
	}
	if !airportCodeRegex.MatchString(r.Origin) {
		return fmt.Errorf("%w: origin must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, r.Origin)
	}

	if r.DestinationGroup == "" {
		return fmt.Errorf("%w: destinationGroup is required", ErrInvalidRequest)
	}
	if !groupNameRegex.MatchString(r.DestinationGroup) {
		return fmt.Errorf("%w: destinationGroup must be a lowercase group name, got %q", ErrInvalidRequest, r.DestinationGroup)
	}

	if r.TargetDate == "" {
		return fmt.Errorf("%w: targetDate is required", ErrInvalidRequest)
	}
	if !dateRegex.MatchString(r.TargetDate) {
		return fmt.Errorf("%w: targetDate must be in YYYY-MM-DD format, got %q", ErrInvalidRequest, r.TargetDate)
	}
	if _, err := time.Parse("2006-01-02", r.TargetDate); err != nil {
		return fmt.Errorf("%w: targetDate is not a valid date: %s", ErrInvalidRequest, r.TargetDate)
	}

	if r.FlexDays < 0 || r.FlexDays > MaxFlexDays {
		return fmt.Errorf("%w: flexDays must be between 0 and %d, got %d", ErrInvalidRequest, MaxFlexDays, r.FlexDays)
	}

	if r.Limit < 1 || r.Limit > MaxLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d, got %d", ErrInvalidRequest, MaxLimit, r.Limit)
	}

	for _, d := range r.ExcludedDates {
		if !dateRegex.MatchString(d) {
			return fmt.Errorf("%w: excluded date must be in YYYY-MM-DD format, got %q", ErrInvalidRequest, d)
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("%w: excluded date is not a valid date: %s", ErrInvalidRequest, d)
		}
	}

	return nil
}

// SetDefaults applies the default shortlist size when Limit is unset.
// FlexDays is left alone: zero is a meaningful value (target date only),
// so callers that want the default window must set it themselves.
func (r *RankingRequest) SetDefaults() {
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
}

// WindowDates returns every date in the flexible window (target ± FlexDays)
// in chronological order, excluded dates included; the ranker removes those.
func (r *RankingRequest) WindowDates() []string {
	target, err := time.Parse("2006-01-02", r.TargetDate)
	if err != nil {
		return nil
	}
	dates := make([]string, 0, 2*r.FlexDays+1)
	for offset := -r.FlexDays; offset <= r.FlexDays; offset++ {
		dates = append(dates, target.AddDate(0, 0, offset).Format("2006-01-02"))
	}
	return dates
}

// IsExcluded reports whether the given date is in the excluded set.
func (r *RankingRequest) IsExcluded(date string) bool {
	for _, d := range r.ExcludedDates {
		if d == date {
			return true
		}
	}
	return false
}
