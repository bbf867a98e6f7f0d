package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveLookup(t *testing.T) {
	m := NewMetrics("weather_test")

	m.ObserveLookup("success", 10*time.Millisecond)
	m.ObserveLookup("success", 20*time.Millisecond)
	m.ObserveLookup("http", 5*time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("http")), 0)
}

func TestHTTPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics("weather_test")

	router := gin.New()
	router.Use(m.HTTPMiddleware())
	router.GET("/weather", func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})

	rec := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/weather", nil)
	require.NoError(t, err)
	router.ServeHTTP(rec, req)

	assert.InDelta(t, 1, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/weather", "4xx")), 0)
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := NewMetrics("weather_test")
	m.ObserveLookup("network", time.Millisecond)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/metrics", nil)
	require.NoError(t, err)
	m.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `weather_test_lookups_total{outcome="network"} 1`)
}

func TestGetStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", getStatusClass(http.StatusOK))
	assert.Equal(t, "5xx", getStatusClass(http.StatusBadGateway))
}
