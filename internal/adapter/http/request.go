package http

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// SearchRankingsRequest represents the request body for a ranking run.
type SearchRankingsRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "MSP")
	Origin string `json:"origin"`

	// DestinationGroup is the configured destination group name (e.g., "arizona")
	DestinationGroup string `json:"destinationGroup"`

	// TargetDate is the preferred departure date in YYYY-MM-DD format
	TargetDate string `json:"targetDate"`

	// FlexDays widens the search window to target +/- flexDays (optional, default 3)
	FlexDays *int `json:"flexDays,omitempty"`

	// ExcludedDates lists departure dates to skip, YYYY-MM-DD format (optional)
	ExcludedDates []string `json:"excludedDates,omitempty"`

	// Limit caps the shortlist length (optional, default 5)
	Limit *int `json:"limit,omitempty"`
}

// Validation regex patterns.
var (
	airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	groupNamePattern   = regexp.MustCompile(`^[a-z0-9-]+$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Request bounds mirroring the core defaults.
const (
	maxFlexDays = 7
	maxLimit    = 20
)

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate validates the ranking request and returns any validation errors.
func (r *SearchRankingsRequest) Validate() error {
	errs := &ValidationErrors{}

	r.validateOrigin(errs)
	r.validateDestinationGroup(errs)
	r.validateTargetDate(errs)
	r.validateFlexDays(errs)
	r.validateExcludedDates(errs)
	r.validateLimit(errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *SearchRankingsRequest) validateOrigin(errs *ValidationErrors) {
	if r.Origin == "" {
		errs.Add("origin", "origin is required")
		return
	}

	origin := strings.ToUpper(r.Origin)
	if !airportCodePattern.MatchString(origin) {
		errs.Add("origin", "origin must be a valid 3-letter IATA airport code")
		return
	}
	r.Origin = origin // Normalize to uppercase
}

func (r *SearchRankingsRequest) validateDestinationGroup(errs *ValidationErrors) {
	if r.DestinationGroup == "" {
		errs.Add("destinationGroup", "destinationGroup is required")
		return
	}

	group := strings.ToLower(r.DestinationGroup)
	if !groupNamePattern.MatchString(group) {
		errs.Add("destinationGroup", "destinationGroup must contain only lowercase letters, digits and hyphens")
		return
	}
	r.DestinationGroup = group // Normalize to lowercase
}

func (r *SearchRankingsRequest) validateTargetDate(errs *ValidationErrors) {
	if r.TargetDate == "" {
		errs.Add("targetDate", "targetDate is required")
		return
	}

	if !datePattern.MatchString(r.TargetDate) {
		errs.Add("targetDate", "targetDate must be in YYYY-MM-DD format")
		return
	}

	if _, err := time.Parse("2006-01-02", r.TargetDate); err != nil {
		errs.Add("targetDate", "targetDate is not a valid date")
	}
}

func (r *SearchRankingsRequest) validateFlexDays(errs *ValidationErrors) {
	if r.FlexDays == nil {
		return
	}
	if *r.FlexDays < 0 {
		errs.Add("flexDays", "flexDays must be a non-negative number")
		return
	}
	if *r.FlexDays > maxFlexDays {
		errs.Add("flexDays", fmt.Sprintf("flexDays cannot exceed %d", maxFlexDays))
	}
}

func (r *SearchRankingsRequest) validateExcludedDates(errs *ValidationErrors) {
	for i, date := range r.ExcludedDates {
		if !datePattern.MatchString(date) {
			errs.Add(fmt.Sprintf("excludedDates[%d]", i), "excluded date must be in YYYY-MM-DD format")
			continue
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			errs.Add(fmt.Sprintf("excludedDates[%d]", i), "excluded date is not a valid date")
		}
	}
}

func (r *SearchRankingsRequest) validateLimit(errs *ValidationErrors) {
	if r.Limit == nil {
		return
	}
	if *r.Limit < 1 {
		errs.Add("limit", "limit must be at least 1")
		return
	}
	if *r.Limit > maxLimit {
		errs.Add("limit", fmt.Sprintf("limit cannot exceed %d", maxLimit))
	}
}
