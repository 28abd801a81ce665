package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/go-gym-server/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.RecordLogin("success")
	c.RecordLogin("success")
	c.RecordLogin("bad_credentials")
	c.RecordAuthFailure("expired")
	c.RecordRevocation()
	c.RecordPruned(3)
	c.RecordRequest(http.MethodGet, "GET /rooms", http.StatusOK, 5*time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "gym_logins_total")
	require.NoError(t, err)
	require.Equal(t, 2, count) // one series per outcome

	count, err = testutil.GatherAndCount(reg, "gym_auth_failures_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)

	count, err = testutil.GatherAndCount(reg, "gym_http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)
	c.RecordRevocation()

	w := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "gym_token_revocations_total 1")
}
