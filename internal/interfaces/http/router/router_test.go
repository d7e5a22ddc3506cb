package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hotelsaas/backend/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("system", "/system")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group)
	r.Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/system/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("transfers", "/transfers")
		assert.Equal(t, "transfers", g.Name())
		assert.Equal(t, "/transfers", g.Prefix())
	})

	t.Run("applies group middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("transfers", "/transfers")
		g.Use(func(c *gin.Context) {
			c.Header("X-Guard", "ran")
			c.Next()
		})
		g.GET("", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/transfers", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ran", w.Header().Get("X-Guard"))
	})

	t.Run("registers nested subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("admin", "/admin")
		sub := g.Group("transfers", "/transfers")
		sub.GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "all")
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/transfers", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("route methods map to HTTP verbs", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.POST("/create", func(c *gin.Context) { c.Status(http.StatusCreated) })
		g.PUT("/update", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.DELETE("/remove", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		for path, want := range map[string]struct {
			method string
			status int
		}{
			"/api/v1/test/create": {http.MethodPost, http.StatusCreated},
			"/api/v1/test/update": {http.MethodPut, http.StatusOK},
			"/api/v1/test/remove": {http.MethodDelete, http.StatusNoContent},
		} {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(want.method, path, nil))
			assert.Equal(t, want.status, w.Code, path)
		}
	})
}

func TestRegisterSettlementRoutes(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	RegisterSettlementRoutes(r, Handlers{
		Transfer:   handler.NewTransferHandler(nil),
		Commission: handler.NewCommissionHandler(nil),
		System:     handler.NewSystemHandler(),
	})
	r.Setup()

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/v1/transfers",
		"GET /api/v1/transfers",
		"GET /api/v1/transfers/:id",
		"POST /api/v1/transfers/:id/process",
		"POST /api/v1/transfers/:id/reject",
		"POST /api/v1/transfers/:id/cancel",
		"GET /api/v1/commission/summary",
		"GET /api/v1/commission/entries",
		"GET /api/v1/admin/transfers",
		"GET /api/v1/payment-gateway/status",
		"GET /api/v1/system/info",
		"GET /api/v1/system/ping",
	}
	for _, want := range expected {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestRegisterHealthRoutes(t *testing.T) {
	engine := gin.New()
	RegisterHealthRoutes(engine)

	for _, path := range []string{"/health", "/healthz"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), "ok")
	}
}
