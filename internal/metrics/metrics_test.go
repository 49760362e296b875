package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.ScanRequest(true)
	r.ScanRequest(true)
	r.ScanRequest(false)
	assert.Equal(t, 2.0, testutil.ToFloat64(r.scans.WithLabelValues("allowed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.scans.WithLabelValues("throttled")))

	r.Batch(12, 3)
	assert.Equal(t, 12.0, testutil.ToFloat64(r.visible))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.suspicious))

	r.TrackerUpdate(true, 128)
	r.TrackerUpdate(false, 0)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.updates.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.updates.WithLabelValues("false")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.amplitude))
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)
	r.Batch(5, 1)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "wififinder_networks_visible 5"))
}

func TestDoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
