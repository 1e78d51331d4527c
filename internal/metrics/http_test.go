package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	provider, err := NewProvider("envseal")
	require.NoError(t, err)

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "envseal"))
	router.POST("/v1/encrypt", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	t.Run("records matched route", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest("POST", "/v1/encrypt", nil))
		require.Equal(t, http.StatusOK, recorder.Code)

		body := scrape(t, provider)
		assert.Contains(t, body, "envseal_http_requests_total")
		assert.Contains(t, body, `path="/v1/encrypt"`)
		assert.Contains(t, body, `status_code="200"`)
	})

	t.Run("unmatched route uses unknown label", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest("GET", "/nope", nil))
		require.Equal(t, http.StatusNotFound, recorder.Code)

		assert.Contains(t, scrape(t, provider), `path="unknown"`)
	})
}

func TestRoutePattern(t *testing.T) {
	assert.Equal(t, "/v1/encrypt", routePattern("/v1/encrypt"))
	assert.Equal(t, "unknown", routePattern(""))
}
