package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/opentransit/editor-backend/api/middleware"
	"github.com/opentransit/editor-backend/utils"
)

func makeRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(buf, nil))

	r := gin.New()
	r.Use(utils.StoreLoggerInContextMiddleware(logger))
	r.Use(middleware.RequestLogging("/liveness"))
	r.GET("/tasks", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/liveness", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/broken", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})
	return r
}

func TestRequestLogging_usesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	r := makeRouter(&buf)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tasks", nil))

	logged := buf.String()
	assert.Contains(t, logged, "GET /tasks")
	assert.Contains(t, logged, "status=200")
	assert.Contains(t, logged, "level=INFO")
}

func TestRequestLogging_serverErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	r := makeRouter(&buf)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))

	logged := buf.String()
	assert.Contains(t, logged, "status=500")
	assert.Contains(t, logged, "level=ERROR")
}

func TestRequestLogging_ignoredPath(t *testing.T) {
	var buf bytes.Buffer
	r := makeRouter(&buf)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/liveness", nil))

	assert.Empty(t, buf.String())
}
