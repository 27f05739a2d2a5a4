package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func resetVisitors() {
	mu.Lock()
	visitors = make(map[string]*visitor)
	mu.Unlock()
}

func hit(e *echo.Echo, handler echo.HandlerFunc, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	req.RemoteAddr = ip + ":54321"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = handler(c)
	return rec
}

func TestRateLimiter_AllowsBurstThenRejects(t *testing.T) {
	resetVisitors()

	e := echo.New()
	handler := RateLimiterWithConfig(1, 3)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		rec := hit(e, handler, "10.0.0.1")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d within burst", i)
	}

	rec := hit(e, handler, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "SYSTEM_004")
}

func TestRateLimiter_TracksClientsIndependently(t *testing.T) {
	resetVisitors()

	e := echo.New()
	handler := RateLimiterWithConfig(1, 2)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// Exhaust the first client's burst
	hit(e, handler, "10.0.0.1")
	hit(e, handler, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, hit(e, handler, "10.0.0.1").Code)

	// A different client is unaffected
	assert.Equal(t, http.StatusOK, hit(e, handler, "10.0.0.2").Code)
}

func TestRateLimiter_UsesForwardedForHeader(t *testing.T) {
	resetVisitors()

	e := echo.New()
	handler := RateLimiterWithConfig(1, 1)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	send := func(forwardedFor string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "172.16.0.9:1000"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		rec := httptest.NewRecorder()
		_ = handler(e.NewContext(req, rec))
		return rec
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.7").Code)
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.7").Code)
	assert.Equal(t, http.StatusOK, send("203.0.113.8").Code)
}
