package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the ranking pipeline.
var (
	// ErrInvalidRequest indicates a ranking request failed validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidOption indicates a flight option violates a structural invariant.
	ErrInvalidOption = errors.New("invalid flight option")

	// ErrAllSourcesFailed indicates every (airport, date) fetch failed.
	// This is the only condition the pipeline propagates to its caller
	// as a hard failure.
	ErrAllSourcesFailed = errors.New("all acquisition fetches failed")

	// ErrNoOptions indicates that after filtering, no candidate remained on
	// any date in the window. Distinct from ErrAllSourcesFailed so callers
	// can tell "nothing available" from "couldn't check".
	ErrNoOptions = errors.New("no flight options available")

	// ErrUnknownGroup indicates the requested destination group is not configured.
	ErrUnknownGroup = errors.New("unknown destination group")

	// ErrInsufficientHistory indicates a route/date-bucket has too few
	// historical samples for a z-score. Not a failure; deal significance is
	// simply unknown.
	ErrInsufficientHistory = errors.New("insufficient price history")
)

// SourceError wraps a failure from a single upstream fetch. It records which
// (airport, date) combination failed so the pipeline can degrade to partial
// results instead of aborting.
type SourceError struct {
	// Source is the upstream source name
	Source string

	// Airport is the destination airport of the failed fetch
	Airport string

	// Date is the departure date of the failed fetch (YYYY-MM-DD)
	Date string

	// Err is the underlying error
	Err error

	// Retryable indicates whether the caller may retry this fetch
	Retryable bool
}

// NewSourceError creates a non-retryable SourceError.
func NewSourceError(source, airport, date string, err error) *SourceError {
	return &SourceError{Source: source, Airport: airport, Date: date, Err: err}
}

// NewRetryableSourceError creates a SourceError marked retryable.
func NewRetryableSourceError(source, airport, date string, err error) *SourceError {
	return &SourceError{Source: source, Airport: airport, Date: date, Err: err, Retryable: true}
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: fetch %s on %s: %v", e.Source, e.Airport, e.Date, e.Err)
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// FieldError reports a normalization failure on a specific field of a raw
// offer record. One malformed offer is skipped, never fatal to the batch.
type FieldError struct {
	// Field is the name of the offending field
	Field string

	// Reason describes why the field was rejected
	Reason string
}

// NewFieldError creates a FieldError for the given field.
func NewFieldError(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason}
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

// NormalizationFailure records one rejected raw offer together with the
// field-level reason.
type NormalizationFailure struct {
	// OfferID is the upstream identifier of the rejected offer
	OfferID string

	// Source is the upstream source the offer came from
	Source string

	// Err is the field-level rejection reason
	Err error
}

// Error implements the error interface.
func (f NormalizationFailure) Error() string {
	return fmt.Sprintf("offer %s from %s rejected: %v", f.OfferID, f.Source, f.Err)
}
