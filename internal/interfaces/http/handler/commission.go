package handler

import (
	"github.com/gin-gonic/gin"

	appsettlement "github.com/hotelsaas/backend/internal/application/settlement"
	"github.com/hotelsaas/backend/internal/domain/shared"
	"github.com/hotelsaas/backend/internal/interfaces/http/dto"
)

// CommissionHandler exposes the tenant's commission balance and ledger
type CommissionHandler struct {
	BaseHandler
	commissionService *appsettlement.CommissionService
}

// NewCommissionHandler creates a new commission handler
func NewCommissionHandler(commissionService *appsettlement.CommissionService) *CommissionHandler {
	return &CommissionHandler{
		commissionService: commissionService,
	}
}

// Summary godoc
// @Summary      Get the tenant's commission balance summary
// @Description  Returns earned, settled, pending, and available commission
// @Description  totals. Available commission is what a new transfer request
// @Description  may draw on.
// @Tags         commission
// @Produce      json
// @Success      200 {object} dto.Response{data=CommissionSummaryResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /commission/summary [get]
func (h *CommissionHandler) Summary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "Tenant context required")
		return
	}

	summary, err := h.commissionService.Summary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toCommissionSummaryResponse(summary))
}

// Entries godoc
// @Summary      List the tenant's earned commission entries
// @Tags         commission
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]CommissionEntryResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /commission/entries [get]
func (h *CommissionHandler) Entries(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "Tenant context required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	}

	entries, total, err := h.commissionService.Entries(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toCommissionEntryResponses(entries), total, filter.Page, filter.PageSize)
}
