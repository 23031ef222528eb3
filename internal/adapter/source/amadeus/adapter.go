// Package amadeus adapts an Amadeus-shaped flight offers API to the
// domain.OfferSource contract. The adapter only reshapes the payload into raw
// offer records; semantic validation happens in the core normalizer.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
)

// SourceName is the unique identifier for this source.
const SourceName = "amadeus"

// defaultHTTPTimeout bounds a single upstream request.
const defaultHTTPTimeout = 15 * time.Second

// Adapter implements domain.OfferSource against either a live HTTP endpoint
// or a local JSON fixture. Live calls go through a rate limiter so bursts of
// (airport, date) combinations do not hammer the upstream quota.
type Adapter struct {
	baseURL     string
	fixturePath string
	client      *http.Client
	limiter     *rate.Limiter
}

// NewAdapter creates a fixture-backed adapter that serves offers from a local
// JSON file. Used in development and tests.
func NewAdapter(fixturePath string) *Adapter {
	return &Adapter{fixturePath: fixturePath}
}

// NewHTTPAdapter creates an adapter that queries a live endpoint, limited to
// requestsPerSecond upstream calls.
func NewHTTPAdapter(baseURL string, requestsPerSecond float64) *Adapter {
	return &Adapter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultHTTPTimeout},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Name returns the source's unique identifier.
func (a *Adapter) Name() string {
	return SourceName
}

// Fetch implements domain.OfferSource.Fetch.
func (a *Adapter) Fetch(ctx context.Context, origin, destination, date string) ([]domain.RawOffer, error) {
	var payload []byte
	var err error

	if a.baseURL != "" {
		payload, err = a.fetchHTTP(ctx, origin, destination, date)
	} else {
		payload, err = a.fetchFixture(ctx)
	}
	if err != nil {
		return nil, err
	}

	var resp offersResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("decode offers response: %w", err)
	}

	return toRawOffers(&resp), nil
}

// fetchHTTP queries the live endpoint, waiting on the rate limiter first.
func (a *Adapter) fetchHTTP(ctx context.Context, origin, destination, date string) ([]byte, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	query := url.Values{}
	query.Set("originLocationCode", origin)
	query.Set("destinationLocationCode", destination)
	query.Set("departureDate", date)
	query.Set("currencyCode", "USD")
	query.Set("max", "50")

	endpoint := a.baseURL + "/v2/shopping/flight-offers?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// fetchFixture reads the configured fixture file, honoring cancellation.
func (a *Adapter) fetchFixture(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(a.fixturePath)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", a.fixturePath, err)
	}
	return data, nil
}

// Ensure Adapter implements domain.OfferSource at compile time.
var _ domain.OfferSource = (*Adapter)(nil)
