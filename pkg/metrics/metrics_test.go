package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddleware_CountsStatusPerRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/ping/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	before := testutil.ToFloat64(httpStatusCounter.WithLabelValues("/ping/:id", "418"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping/1", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpStatusCounter.WithLabelValues("/ping/:id", "418")))
}

func TestObserveConnectionTest(t *testing.T) {
	before := testutil.ToFloat64(connectionTestCounter.WithLabelValues("mysql", "error"))
	ObserveConnectionTest("mysql", "error", 20*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(connectionTestCounter.WithLabelValues("mysql", "error")))
}

func TestObserveQueryRender(t *testing.T) {
	before := testutil.ToFloat64(queryRenderCounter.WithLabelValues("mongodb", "ok"))
	ObserveQueryRender("mongodb", "ok")
	assert.Equal(t, before+1, testutil.ToFloat64(queryRenderCounter.WithLabelValues("mongodb", "ok")))
}
