package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(ctx context.Context) *redis.StatusCmd {
	if p.err != nil {
		return redis.NewStatusResult("", p.err)
	}
	return redis.NewStatusResult("PONG", nil)
}

func doRequest(t *testing.T, h http.Handler, path string) (*http.Response, []byte) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	resp := rec.Result()
	t.Cleanup(func() { _ = resp.Body.Close() })

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestHealthServer_Healthy(t *testing.T) {
	t.Parallel()

	hs := NewHealthServer(0, fakePinger{}, nil, zap.NewNop())

	resp, body := doRequest(t, hs.Handler(), "/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var health HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	require.Equal(t, HealthResponse{Status: "healthy", Checks: map[string]string{"redis": "healthy"}}, health)

	resp, body = doRequest(t, hs.Handler(), "/ready")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"status":"ready"}`, string(body))
}

func TestHealthServer_Unhealthy(t *testing.T) {
	t.Parallel()

	hs := NewHealthServer(0, fakePinger{err: errors.New("connection refused")}, nil, zap.NewNop())

	resp, body := doRequest(t, hs.Handler(), "/health")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	require.Equal(t, "unhealthy", health.Status)
	require.Equal(t, "unhealthy: connection refused", health.Checks["redis"])

	resp, body = doRequest(t, hs.Handler(), "/ready")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.JSONEq(t, `{"status":"not ready"}`, string(body))
}

func TestHealthServer_Metrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	metrics.observeRendered("casual")
	metrics.observeRendered("casual")
	metrics.observeFailure(reasonNilUser)

	hs := NewHealthServer(0, fakePinger{}, reg, zap.NewNop())

	resp, body := doRequest(t, hs.Handler(), "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `greetings_rendered_total{category="casual"} 2`)
	require.Contains(t, string(body), `greeting_failures_total{reason="nil_user"} 1`)
}

func TestHealthServer_NoMetricsWithoutGatherer(t *testing.T) {
	t.Parallel()

	hs := NewHealthServer(0, fakePinger{}, nil, zap.NewNop())

	resp, _ := doRequest(t, hs.Handler(), "/metrics")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	require.NotPanics(t, func() {
		m.observeRendered("casual")
		m.observeFailure(reasonOther)
	})
}

func TestHealthServer_StopWithoutStart(t *testing.T) {
	t.Parallel()

	hs := NewHealthServer(0, fakePinger{}, nil, zap.NewNop())
	require.NoError(t, hs.Stop())
}
