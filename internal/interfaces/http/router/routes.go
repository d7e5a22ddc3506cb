package router

import (
	"github.com/gin-gonic/gin"

	"github.com/hotelsaas/backend/internal/interfaces/http/handler"
	"github.com/hotelsaas/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the handlers the settlement API exposes
type Handlers struct {
	Transfer   *handler.TransferHandler
	Commission *handler.CommissionHandler
	System     *handler.SystemHandler
}

// RegisterSettlementRoutes wires the settlement API surface onto the router.
//
// Partner routes run behind the tenant guard: a partner token carries its
// tenant, an admin caller must target one via the X-Tenant-ID header.
// Decision routes (process/reject) and the global listing are admin only.
func RegisterSettlementRoutes(r *Router, h Handlers) {
	transfers := NewDomainGroup("transfers", "/transfers")
	transfers.Use(middleware.TenantContext())
	transfers.POST("", middleware.RequireTenant(), h.Transfer.Create)
	transfers.GET("", middleware.RequireTenant(), h.Transfer.List)
	transfers.GET("/:id", middleware.RequireTenant(), h.Transfer.GetByID)
	transfers.POST("/:id/process", middleware.RequireAdmin(), h.Transfer.Process)
	transfers.POST("/:id/reject", middleware.RequireAdmin(), h.Transfer.Reject)
	transfers.POST("/:id/cancel", h.Transfer.Cancel)
	r.Register(transfers)

	commission := NewDomainGroup("commission", "/commission")
	commission.Use(middleware.TenantContext(), middleware.RequireTenant())
	commission.GET("/summary", h.Commission.Summary)
	commission.GET("/entries", h.Commission.Entries)
	r.Register(commission)

	admin := NewDomainGroup("admin", "/admin")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/transfers", h.Transfer.AdminList)
	r.Register(admin)

	gateway := NewDomainGroup("payment-gateway", "/payment-gateway")
	gateway.GET("/status", h.Transfer.GatewayStatus)
	r.Register(gateway)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo)
	system.GET("/ping", h.System.Ping)
	r.Register(system)
}

// RegisterHealthRoutes exposes the unauthenticated health endpoints directly
// on the engine, outside the versioned API group.
func RegisterHealthRoutes(engine *gin.Engine, checks ...gin.HandlerFunc) {
	healthHandler := func(c *gin.Context) {
		for _, check := range checks {
			check(c)
			if c.IsAborted() {
				return
			}
		}
		c.JSON(200, gin.H{"status": "ok"})
	}
	engine.GET("/health", healthHandler)
	engine.GET("/healthz", healthHandler)
}
