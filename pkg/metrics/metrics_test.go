package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "test")

	m.RecordHTTPRequest(http.MethodPost, "/api/v1/bookings", http.StatusCreated, 10*time.Millisecond)
	m.RecordHTTPRequest(http.MethodPost, "/api/v1/bookings", http.StatusCreated, 20*time.Millisecond)
	m.RecordHTTPRequest(http.MethodPost, "/api/v1/bookings", http.StatusConflict, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/bookings", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/bookings", "409")))
}

func TestMetrics_RecordDBQueryCountsErrors(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "test")

	m.RecordDBQuery("update", time.Millisecond, nil)
	m.RecordDBQuery("update", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("update")))
}
