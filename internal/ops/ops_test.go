package ops

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamshidbekman/rivojbot/internal/stats"
)

type fixedStats stats.Snapshot

func (f fixedStats) Snapshot(context.Context) stats.Snapshot { return stats.Snapshot(f) }

type fakeSessions struct {
	mu     sync.Mutex
	n      int
	sweeps int
	idle   time.Duration
}

func (f *fakeSessions) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.n
}

func (f *fakeSessions) Sweep(idle time.Duration) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sweeps++
	f.idle = idle
	removed := f.n
	f.n = 0
	return removed
}

func (f *fakeSessions) Sweeps() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sweeps
}

func TestHealthEndpoint(t *testing.T) {
	s := New(fixedStats{Total: 5, Today: 2}, &fakeSessions{n: 3}, Options{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 5, body.Leads.Total)
	assert.Equal(t, 2, body.Leads.Today)
	assert.Equal(t, 3, body.Sessions)
	assert.Empty(t, body.Dependencies)
}

func TestHealthReportsDegradedDependency(t *testing.T) {
	s := New(fixedStats{}, &fakeSessions{}, Options{Checks: map[string]Check{
		"postgres": func(context.Context) error { return nil },
		"amqp":     func(context.Context) error { return errors.New("connection closed") },
	}})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "healthy", body.Dependencies["postgres"])
	assert.Equal(t, "unhealthy: connection closed", body.Dependencies["amqp"])
}

func TestHealthRejectsPost(t *testing.T) {
	s := New(fixedStats{}, &fakeSessions{}, Options{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := New(fixedStats{}, &fakeSessions{}, Options{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "go_goroutines"))
}

func TestSweepSessionsUsesTTL(t *testing.T) {
	sessions := &fakeSessions{n: 4}
	s := New(fixedStats{}, sessions, Options{SessionTTL: time.Hour})
	assert.Equal(t, 4, s.SweepSessions(context.Background()))
	assert.Equal(t, time.Hour, sessions.idle)
}

func TestStartStopWithoutListener(t *testing.T) {
	sessions := &fakeSessions{n: 1}
	s := New(fixedStats{}, sessions, Options{
		SessionTTL:     time.Minute,
		SweepInterval:  10 * time.Millisecond,
		HealthInterval: 10 * time.Millisecond,
	})
	require.NoError(t, s.Start(context.Background()))
	require.Eventually(t, func() bool { return sessions.Sweeps() > 0 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))
}

func TestStartServesHTTP(t *testing.T) {
	s := New(fixedStats{Total: 1}, &fakeSessions{}, Options{Listen: "127.0.0.1:0"})
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())
	require.NotNil(t, s.srv)
}
