// Package http provides the HTTP handler layer for the deal ranking API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/flight-monitor/flight-deal-ranker/internal/adapter/http/response"
	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
	"github.com/flight-monitor/flight-deal-ranker/internal/usecase"
)

// RankingHandler handles HTTP requests for ranking endpoints.
type RankingHandler struct {
	pipeline usecase.RankingPipeline
}

// NewRankingHandler creates a new RankingHandler with the given pipeline.
func NewRankingHandler(p usecase.RankingPipeline) *RankingHandler {
	return &RankingHandler{
		pipeline: p,
	}
}

// SearchRankings handles POST /api/v1/rankings/search
//
// @Summary Rank flight deals
// @Description Fetch, score and rank flight options for a destination group and flexible date window
// @Tags rankings
// @Accept json
// @Produce json
// @Param request body SearchRankingsRequest true "Ranking criteria"
// @Success 200 {object} RankingResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 404 {object} response.ErrorDetail "No options found"
// @Failure 503 {object} response.ErrorDetail "Service unavailable"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/rankings/search [post]
func (h *RankingHandler) SearchRankings(c echo.Context) error {
	var req SearchRankingsRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	bundle, err := h.pipeline.Rank(c.Request().Context(), ToDomainRequest(&req))
	if err != nil {
		return h.handleError(c, err)
	}

	return response.RankingResults(c, ToRankingResponseDTO(bundle))
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *RankingHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *RankingHandler) handleError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrUnknownGroup) {
		return response.UnknownGroup(c, err.Error())
	}

	if errors.Is(err, domain.ErrInvalidRequest) {
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	if errors.Is(err, domain.ErrNoOptions) {
		return response.NoOptions(c)
	}

	if errors.Is(err, domain.ErrAllSourcesFailed) {
		return response.ServiceUnavailable(c)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return response.GatewayTimeout(c)
	}

	if errors.Is(err, context.Canceled) {
		return response.RequestCancelled(c)
	}

	return response.InternalServerError(c)
}

// Health handles GET /health
// Simple health check endpoint.
func (h *RankingHandler) Health(c echo.Context) error {
	return response.Health(c)
}
