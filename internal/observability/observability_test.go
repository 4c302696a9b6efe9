package observability

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"lingo-quiz/internal/config"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordQuizSubmission(t *testing.T) {
	m := NewMetrics()

	m.RecordQuizSubmission("vocabulary", true)
	m.RecordQuizSubmission("vocabulary", true)
	m.RecordQuizSubmission("vocabulary", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.QuizSubmissions.WithLabelValues("vocabulary", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuizSubmissions.WithLabelValues("vocabulary", "false")))
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordQuizSubmission("vocabulary", true)
		m.ObserveRequest("GET", "/api/health", 200, time.Millisecond)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest("GET", "/api/quiz/stats", 200, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{endpoint="/api/quiz/stats",method="GET",status="200"} 1`)
}

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), config.TracingConfig{Enabled: false}, "test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestClampRatio(t *testing.T) {
	assert.Equal(t, 0.0, clampRatio(-1))
	assert.Equal(t, 1.0, clampRatio(3))
	assert.Equal(t, 0.25, clampRatio(0.25))
}
