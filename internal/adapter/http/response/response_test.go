package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// call invokes the builder against a fresh context and returns the recorder.
func call(t *testing.T, builder func(echo.Context) error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, builder(c))
	return rec
}

// decodeError unmarshals the recorded body as an ErrorDetail.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()

	var detail ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	return detail
}

func TestErrorBuilders(t *testing.T) {
	tests := []struct {
		name       string
		builder    func(echo.Context) error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid request body",
			builder:    InvalidRequestBody,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidRequest,
		},
		{
			name: "bad request",
			builder: func(c echo.Context) error {
				return BadRequest(c, "nope")
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidRequest,
		},
		{
			name: "unknown group",
			builder: func(c echo.Context) error {
				return UnknownGroup(c, "unknown destination group")
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeUnknownGroup,
		},
		{
			name:       "no options",
			builder:    NoOptions,
			wantStatus: http.StatusNotFound,
			wantCode:   CodeNoOptions,
		},
		{
			name:       "service unavailable",
			builder:    ServiceUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   CodeServiceUnavailable,
		},
		{
			name:       "gateway timeout",
			builder:    GatewayTimeout,
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   CodeTimeout,
		},
		{
			name:       "request cancelled",
			builder:    RequestCancelled,
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   CodeTimeout,
		},
		{
			name:       "internal server error",
			builder:    InternalServerError,
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, tt.builder)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestValidationErrorCarriesDetails(t *testing.T) {
	rec := call(t, func(c echo.Context) error {
		return ValidationError(c, map[string]string{"origin": "origin is required"})
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	detail := decodeError(t, rec)
	assert.Equal(t, CodeValidationError, detail.Code)
	assert.Equal(t, "origin is required", detail.Details["origin"])
}

func TestValidationErrorWithMessage(t *testing.T) {
	rec := call(t, func(c echo.Context) error {
		return ValidationErrorWithMessage(c, "every date in the window is excluded")
	})

	detail := decodeError(t, rec)
	assert.Equal(t, CodeValidationError, detail.Code)
	assert.Equal(t, "every date in the window is excluded", detail.Message)
	assert.Empty(t, detail.Details)
}

func TestHealth(t *testing.T) {
	rec := call(t, Health)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSuccessEnvelope(t *testing.T) {
	resp := Success(map[string]int{"count": 3})
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestFailureEnvelope(t *testing.T) {
	resp := Failure(CodeNoOptions, MsgNoOptions, nil)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeNoOptions, resp.Error.Code)
}
