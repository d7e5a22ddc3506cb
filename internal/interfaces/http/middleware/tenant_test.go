package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/hotelsaas/backend/internal/infrastructure/auth"
	"github.com/hotelsaas/backend/internal/interfaces/http/dto"
)

// setupTenantRouter simulates the JWT middleware by seeding claims directly,
// then runs TenantContext on every request.
func setupTenantRouter(seed func(c *gin.Context)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if seed != nil {
			seed(c)
		}
		c.Next()
	})
	r.Use(TenantContext())
	r.GET("/transfers", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tenant_id": GetTenantID(c)})
	})
	return r
}

func TestTenantContext(t *testing.T) {
	tenantID := uuid.New()

	t.Run("partner tenant comes from JWT claims", func(t *testing.T) {
		r := setupTenantRouter(func(c *gin.Context) {
			c.Set(JWTTenantIDKey, tenantID.String())
			c.Set(JWTRoleKey, string(auth.RolePartner))
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/transfers", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), tenantID.String())
	})

	t.Run("partner cannot override tenant via header", func(t *testing.T) {
		other := uuid.New()
		r := setupTenantRouter(func(c *gin.Context) {
			c.Set(JWTTenantIDKey, tenantID.String())
			c.Set(JWTRoleKey, string(auth.RolePartner))
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/transfers", nil)
		req.Header.Set(TenantHeaderKey, other.String())
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), tenantID.String())
		assert.NotContains(t, w.Body.String(), other.String())
	})

	t.Run("admin may target a tenant via header", func(t *testing.T) {
		r := setupTenantRouter(func(c *gin.Context) {
			c.Set(JWTRoleKey, string(auth.RoleAdmin))
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/transfers", nil)
		req.Header.Set(TenantHeaderKey, tenantID.String())
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), tenantID.String())
	})

	t.Run("admin with malformed tenant header gets 400", func(t *testing.T) {
		r := setupTenantRouter(func(c *gin.Context) {
			c.Set(JWTRoleKey, string(auth.RoleAdmin))
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/transfers", nil)
		req.Header.Set(TenantHeaderKey, "not-a-uuid")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeBadRequest, decodeErrorCode(t, w))
	})

	t.Run("no tenant resolves to empty context", func(t *testing.T) {
		r := setupTenantRouter(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/transfers", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"tenant_id":""`)
	})
}

func TestRequireTenant(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("passes with tenant bound", func(t *testing.T) {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Set(TenantIDKey, uuid.New().String())
		})
		r.GET("/transfers", RequireTenant(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/transfers", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects without tenant", func(t *testing.T) {
		r := gin.New()
		r.GET("/transfers", RequireTenant(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/transfers", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestGetTenantUUID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("parses bound tenant", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		tenantID := uuid.New()
		c.Set(TenantIDKey, tenantID.String())

		got, ok := GetTenantUUID(c)
		assert.True(t, ok)
		assert.Equal(t, tenantID, got)
	})

	t.Run("missing tenant", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		_, ok := GetTenantUUID(c)
		assert.False(t, ok)
	})

	t.Run("invalid value", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(TenantIDKey, "broken")
		_, ok := GetTenantUUID(c)
		assert.False(t, ok)
	})
}
