package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRouterRegistersGroupsUnderVersionPrefix(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	billing := NewDomainGroup("billing", "/billing")
	billing.POST("/bills/generate", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	billing.GET("/stats/occupancy", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.Register(billing)
	r.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/billing/bills/generate", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/billing/stats/occupancy", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/billing/stats/occupancy", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDomainGroupMiddlewareApplies(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	called := false
	g := NewDomainGroup("billing", "/billing")
	g.Use(func(c *gin.Context) {
		called = true
		c.Next()
	})
	g.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.Register(g)
	r.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/billing/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
	assert.Equal(t, "billing", g.Name())
}
