package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serve runs a GET / request through the given middleware and handler.
func serve(mw echo.MiddlewareFunc, handler echo.HandlerFunc, header http.Header) *httptest.ResponseRecorder {
	e := echo.New()
	e.Use(mw)
	e.GET("/", handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRequestIDGeneratesWhenAbsent(t *testing.T) {
	var captured string
	rec := serve(RequestID(), func(c echo.Context) error {
		captured = GetRequestID(c)
		return okHandler(c)
	}, nil)

	assert.NotEmpty(t, captured)
	assert.Equal(t, captured, rec.Header().Get(RequestIDHeader))

	_, err := uuid.Parse(captured)
	assert.NoError(t, err)
}

func TestRequestIDPropagatesIncoming(t *testing.T) {
	header := http.Header{}
	header.Set(RequestIDHeader, "client-supplied-id")

	var captured string
	rec := serve(RequestID(), func(c echo.Context) error {
		captured = GetRequestID(c)
		return okHandler(c)
	}, header)

	assert.Equal(t, "client-supplied-id", captured)
	assert.Equal(t, "client-supplied-id", rec.Header().Get(RequestIDHeader))
}

func TestGetRequestIDWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Equal(t, "", GetRequestID(c))
}

func TestRequestLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		handler   echo.HandlerFunc
		wantLevel string
	}{
		{
			name:      "2xx logs at info",
			handler:   okHandler,
			wantLevel: "info",
		},
		{
			name: "4xx logs at warn",
			handler: func(c echo.Context) error {
				return c.String(http.StatusNotFound, "missing")
			},
			wantLevel: "warn",
		},
		{
			name: "5xx logs at error",
			handler: func(c echo.Context) error {
				return echo.NewHTTPError(http.StatusInternalServerError, "boom")
			},
			wantLevel: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := zerolog.New(&buf)

			serve(RequestLogger(log), tt.handler, nil)

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "GET", entry["method"])
			assert.Equal(t, "/", entry["path"])
			assert.Contains(t, entry, "duration_ms")
		})
	}
}

func TestRecoverReturnsGeneric500(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	rec := serve(Recover(log), func(echo.Context) error {
		panic("handler exploded")
	}, nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	// The panic message must not reach the client.
	assert.NotContains(t, rec.Body.String(), "handler exploded")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "handler exploded", entry["panic"])
	assert.Contains(t, entry, "stack")
}

func TestRecoverLogsErrorPanics(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	serve(Recover(log), func(echo.Context) error {
		panic(errors.New("wrapped failure"))
	}, nil)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "wrapped failure", entry["panic"])
}

func TestRecoverWithConfigSuppressesStack(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	serve(RecoverWithConfig(log, RecoveryConfig{DisablePrintStack: true}), func(echo.Context) error {
		panic("quiet")
	}, nil)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, "stack")
}

func TestChainCoversAllConcerns(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	e := echo.New()
	e.Use(Chain(log)...)
	e.GET("/", func(echo.Context) error {
		panic("down the stack")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	// Request ID set, panic recovered, and both events carry the same ID.
	reqID := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, reqID)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(line, &entry))
		assert.Equal(t, reqID, entry["request_id"])
	}
}
