// Package integration provides helpers and integration tests for the flight
// deal ranker. These tests exercise the ranking pipeline and HTTP handlers
// together, using the configurable mocks from test/mock.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"

	httpAdapter "github.com/flight-monitor/flight-deal-ranker/internal/adapter/http"
	"github.com/flight-monitor/flight-deal-ranker/internal/adapter/http/response"
	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
	"github.com/flight-monitor/flight-deal-ranker/internal/usecase"
)

// TestServer wraps an Echo instance and provides helper methods for
// integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Handler *httpAdapter.RankingHandler
}

// NewTestServer creates a test server backed by the given pipeline.
func NewTestServer(pipeline usecase.RankingPipeline) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	handler := httpAdapter.NewRankingHandler(pipeline)
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:    e,
		Handler: handler,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	ContentType string
}

// Response represents a recorded test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request against the server and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	if req.Body != nil {
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchRequest posts the given body to the ranking search endpoint.
func (ts *TestServer) SearchRequest(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/rankings/search",
		Body:   body,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseRanking parses the response body as a RankingResponseDTO.
func (r *Response) ParseRanking() (*httpAdapter.RankingResponseDTO, error) {
	var dto httpAdapter.RankingResponseDTO
	if err := json.Unmarshal(r.Body, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

// ParseError parses the response body as an ErrorDetail.
func (r *Response) ParseError() (*response.ErrorDetail, error) {
	var detail response.ErrorDetail
	if err := json.Unmarshal(r.Body, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// RankingRequestBody is a helper struct for building search request bodies.
type RankingRequestBody struct {
	Origin           string   `json:"origin"`
	DestinationGroup string   `json:"destinationGroup"`
	TargetDate       string   `json:"targetDate"`
	FlexDays         *int     `json:"flexDays,omitempty"`
	ExcludedDates    []string `json:"excludedDates,omitempty"`
	Limit            *int     `json:"limit,omitempty"`
}

// TargetDate is the departure date all integration scenarios revolve around.
const TargetDate = "2026-01-15"

// DefaultRankingRequest returns a valid single-date ranking request body.
func DefaultRankingRequest() RankingRequestBody {
	zero := 0
	return RankingRequestBody{
		Origin:           "MSP",
		DestinationGroup: "arizona",
		TargetDate:       TargetDate,
		FlexDays:         &zero,
	}
}

// TestSettings returns pipeline settings with the stock tuning and an arizona
// destination group.
func TestSettings() usecase.Settings {
	settings := usecase.DefaultSettings()
	settings.Groups = map[string]domain.AirportGroup{
		"arizona": {
			Name:    "arizona",
			Primary: "PHX",
			Members: []string{"PHX", "TUS", "FLG"},
		},
	}
	return settings
}

// CreatePipeline creates a ranking pipeline with the given sources and store
// and default timeouts.
func CreatePipeline(sources []domain.OfferSource, store domain.HistoryStore) usecase.RankingPipeline {
	return usecase.NewRankingPipeline(sources, store, TestSettings(), nil, nil, nil)
}

// CreatePipelineWithConfig creates a ranking pipeline with custom timeouts.
func CreatePipelineWithConfig(sources []domain.OfferSource, store domain.HistoryStore, config *usecase.Config) usecase.RankingPipeline {
	return usecase.NewRankingPipeline(sources, store, TestSettings(), config, nil, nil)
}

// DefaultRankingCriteria returns a valid single-date request for driving the
// pipeline directly.
func DefaultRankingCriteria() domain.RankingRequest {
	return domain.RankingRequest{
		Origin:           "MSP",
		DestinationGroup: "arizona",
		TargetDate:       TargetDate,
		FlexDays:         0,
		Limit:            5,
	}
}

// RouteKeyFor builds the history route key for the given departure date.
func RouteKeyFor(date string) domain.RouteKey {
	day, _ := time.Parse("2006-01-02", date)
	return domain.NewRouteKey("MSP", "arizona", day)
}
