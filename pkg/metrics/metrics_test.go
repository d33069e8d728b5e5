package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("studio-test", reg)

	m.ObserveHTTPRequest("GET", "/api/v1/reservations", 200, 15*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/api/v1/reservations", 200, 5*time.Millisecond)
	m.ObserveDBQuery("query", time.Millisecond, nil)
	m.ObserveDBQuery("exec", time.Millisecond, errors.New("boom"))
	m.IncNotification("telegram", true)
	m.IncNotification("telegram", false)
	m.IncEmailIngested("stored")
	m.SetDBPoolStats(4, 1, 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/reservations", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("exec")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("query")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notificationsSent.WithLabelValues("telegram", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.emailsIngested.WithLabelValues("stored")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.dbOpenConns.WithLabelValues()))
}
