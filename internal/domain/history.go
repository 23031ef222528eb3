package domain

import (
	"context"
	"strings"
	"time"
)

// RouteKey identifies the historical price distribution an observation belongs
// to: origin airport, destination group and date bucket. Bucketing by
// route and date class keeps inherently-cheap and inherently-expensive
// itineraries out of each other's baselines.
type RouteKey struct {
	// Origin is the IATA code of the origin airport
	Origin string

	// Group is the destination group name
	Group string

	// Bucket is the date class (see DateBucket)
	Bucket string
}

// String returns the key in "origin/group/bucket" form.
func (k RouteKey) String() string {
	return k.Origin + "/" + k.Group + "/" + k.Bucket
}

// DateBucket classifies a departure date into a pooling bucket:
// month plus weekday/weekend class (e.g., "jan-weekday", "jul-weekend").
func DateBucket(t time.Time) string {
	class := "weekday"
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		class = "weekend"
	}
	return strings.ToLower(t.Month().String()[:3]) + "-" + class
}

// NewRouteKey builds the RouteKey for an origin, destination group and
// departure date.
func NewRouteKey(origin, group string, departure time.Time) RouteKey {
	return RouteKey{Origin: origin, Group: group, Bucket: DateBucket(departure)}
}

// PriceSample is one historical price observation for a route key.
// Samples are append-only and owned by the historical store; the core only
// reads them.
type PriceSample struct {
	// Key identifies the route and date bucket
	Key RouteKey

	// Price is the observed total price in the reference currency
	Price float64

	// ObservedAt is when the price was recorded
	ObservedAt time.Time
}

//go:generate mockgen -source=history.go -destination=history_mock.go -package=domain

// HistoryStore is the historical price oracle. QuerySamples returns up to
// window samples for a key, most recent first. RecordSample appends an
// observation; the pipeline itself never calls it. Recording happens in the
// caller after a successful run.
type HistoryStore interface {
	QuerySamples(ctx context.Context, key RouteKey, window int) ([]PriceSample, error)
	RecordSample(ctx context.Context, key RouteKey, price float64, observedAt time.Time) error
}
