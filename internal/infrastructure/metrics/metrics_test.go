package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmanzanog/finrecords/internal/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_SetRecordCount(t *testing.T) {
	m := New()

	m.SetRecordCount(domain.KindTransaction, 12)
	m.SetRecordCount(domain.KindTransaction, 15)

	assert.Equal(t, 15.0, testutil.ToFloat64(m.recordCount.WithLabelValues("transaction")))
}

func TestMetrics_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/v1/users/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/"+id, nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/users/:id", "204")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "finrecords_http_requests_total"))
}
