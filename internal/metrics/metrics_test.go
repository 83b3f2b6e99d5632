package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "GET /api/jobs", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "GET /api/jobs", http.StatusOK, 10*time.Millisecond)
	m.ObserveMutation("create")

	assert.InDelta(t, 2, testutil.ToFloat64(m.requests.WithLabelValues("GET", "GET /api/jobs", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.mutations.WithLabelValues("create")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.mutations.WithLabelValues("delete")), 0)
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveMutation("update")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `jobpilot_applications_mutations_total{op="update"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
