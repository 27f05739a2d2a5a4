package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func runWithRequestID(t *testing.T, req *http.Request, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, RequestID()(next)(c))
	return rec
}

func TestRequestID_GeneratesValidUUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	var traceID string
	rec := runWithRequestID(t, req, func(c echo.Context) error {
		traceID = GetTraceID(c)
		return c.NoContent(http.StatusOK)
	})

	_, err := uuid.Parse(traceID)
	assert.NoError(t, err, "generated trace ID should be a UUID")
	assert.Equal(t, traceID, rec.Header().Get(TraceIDHeader))
}

func TestRequestID_PropagatesCallerTraceID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, "caller-supplied-trace")

	rec := runWithRequestID(t, req, func(c echo.Context) error {
		assert.Equal(t, "caller-supplied-trace", GetTraceID(c))
		return c.NoContent(http.StatusOK)
	})

	assert.Equal(t, "caller-supplied-trace", rec.Header().Get(TraceIDHeader))
}

func TestGetTraceID_EmptyWithoutMiddleware(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Empty(t, GetTraceID(c))
}
