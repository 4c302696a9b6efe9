package middleware_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"lingo-quiz/internal/dto"
	"lingo-quiz/internal/middleware"
	"lingo-quiz/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.RequestID())
	var seen string
	app.Get("/", func(c *fiber.Ctx) error {
		seen = middleware.RequestIDFrom(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	generated := resp.Header.Get(middleware.RequestIDHeader)
	_, parseErr := uuid.Parse(generated)
	assert.NoError(t, parseErr)
	assert.Equal(t, generated, seen)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "client-id-1")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "client-id-1", resp.Header.Get(middleware.RequestIDHeader))

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set(middleware.RequestIDHeader, strings.Repeat("x", 200))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(middleware.RequestIDHeader), 36)
}

func TestRequestLogger_RunsErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.RequestLogger())
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.Metrics(metrics), middleware.RequestLogger())
	app.Get("/api/vocab/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/api/fail", func(c *fiber.Ctx) error { return fiber.ErrBadRequest })

	for _, path := range []string{"/api/vocab/1", "/api/vocab/2", "/api/fail"} {
		_, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
		require.NoError(t, err)
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.RequestCounter.WithLabelValues("GET", "/api/vocab/:id", "204")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RequestCounter.WithLabelValues("GET", "/api/fail", "400")))
}

func TestRateLimiter(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 2)
	app := fiber.New()
	app.Post("/login", limiter.Handler(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/login", nil), -1)
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
	}
	assert.Equal(t, []int{fiber.StatusOK, fiber.StatusOK, fiber.StatusTooManyRequests}, statuses)
}

func TestTracing_PassesUserContext(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.Tracing())
	app.Get("/", func(c *fiber.Ctx) error {
		require.NotNil(t, c.UserContext())
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPagination(t *testing.T) {
	tests := []struct {
		query    string
		status   int
		expected dto.PageRequest
		fields   []string
	}{
		{query: "", status: fiber.StatusOK},
		{query: "?page=2&limit=5", status: fiber.StatusOK, expected: dto.PageRequest{Page: 2, Limit: 5}},
		{query: "?page=0", status: fiber.StatusBadRequest, fields: []string{"page"}},
		{query: "?page=abc&limit=-1", status: fiber.StatusBadRequest, fields: []string{"page", "limit"}},
		{query: "?page=922337203685477582&limit=10", status: fiber.StatusBadRequest, fields: []string{"page"}},
		{query: "?page=922337203685477582", status: fiber.StatusBadRequest, fields: []string{"page"}},
		{query: "?page=1000&limit=100", status: fiber.StatusOK, expected: dto.PageRequest{Page: 1000, Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
			var got dto.PageRequest
			app.Get("/history", middleware.Pagination(), func(c *fiber.Ctx) error {
				got = middleware.PageFrom(c)
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/history"+tt.query, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			if tt.status == fiber.StatusOK {
				assert.Equal(t, tt.expected, got)
				return
			}
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var verr middleware.ValidationErrorResponse
			require.NoError(t, json.Unmarshal(body, &verr))
			var fields []string
			for _, e := range verr.Errors {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}
