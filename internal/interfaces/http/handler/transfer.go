package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appsettlement "github.com/hotelsaas/backend/internal/application/settlement"
	"github.com/hotelsaas/backend/internal/domain/settlement"
	"github.com/hotelsaas/backend/internal/domain/shared"
	"github.com/hotelsaas/backend/internal/interfaces/http/middleware"
)

// IdempotencyHeaderKey is the request header that deduplicates retried
// transfer submissions.
const IdempotencyHeaderKey = "Idempotency-Key"

// TransferHandler handles commission transfer HTTP requests
type TransferHandler struct {
	BaseHandler
	transferService *appsettlement.TransferService
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferService *appsettlement.TransferService) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
	}
}

// Create godoc
// @Summary      Request a commission transfer
// @Description  Creates a pending transfer for the caller's tenant. Retries
// @Description  carrying the same Idempotency-Key header return the original
// @Description  transfer instead of creating a duplicate.
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Deduplication key for retried submissions"
// @Param        request body CreateTransferRequest true "Transfer request"
// @Success      201 {object} dto.Response{data=TransferResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /transfers [post]
func (h *TransferHandler) Create(c *gin.Context) {
	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	tenantID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "Tenant context required")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	transfer, err := h.transferService.RequestTransfer(c.Request.Context(), appsettlement.RequestTransferInput{
		TenantID:       tenantID,
		RequestedBy:    userID,
		GrossAmount:    req.GrossAmount,
		BankIBAN:       req.BankIBAN,
		Notes:          req.Notes,
		IdempotencyKey: c.GetHeader(IdempotencyHeaderKey),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toTransferResponse(transfer))
}

// List godoc
// @Summary      List transfers for the caller's tenant
// @Tags         transfers
// @Produce      json
// @Param        status query string false "Filter by status" Enums(PENDING,PROCESSING,COMPLETED,FAILED,CANCELLED)
// @Param        from query string false "Creation date range start (RFC 3339)"
// @Param        to query string false "Creation date range end (RFC 3339)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]TransferResponse}
// @Security     BearerAuth
// @Router       /transfers [get]
func (h *TransferHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "Tenant context required")
		return
	}

	filter, ok := h.bindTransferFilter(c, false)
	if !ok {
		return
	}

	transfers, total, err := h.transferService.ListForTenant(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toTransferResponses(transfers), total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary      Get a transfer by ID
// @Tags         transfers
// @Produce      json
// @Param        id path string true "Transfer ID" format(uuid)
// @Success      200 {object} dto.Response{data=TransferResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /transfers/{id} [get]
func (h *TransferHandler) GetByID(c *gin.Context) {
	transferID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID")
		return
	}
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Forbidden(c, "Tenant context required")
		return
	}

	transfer, err := h.transferService.Get(c.Request.Context(), tenantID, transferID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTransferResponse(transfer))
}

// Process godoc
// @Summary      Approve and settle a pending transfer
// @Description  Moves the transfer to PROCESSING and executes the payout at
// @Description  the payment gateway synchronously. The response carries the
// @Description  terminal COMPLETED or FAILED state.
// @Tags         transfers
// @Produce      json
// @Param        id path string true "Transfer ID" format(uuid)
// @Success      200 {object} dto.Response{data=TransferResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /transfers/{id}/process [post]
func (h *TransferHandler) Process(c *gin.Context) {
	transferID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID")
		return
	}
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	transfer, err := h.transferService.Approve(c.Request.Context(), transferID, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTransferResponse(transfer))
}

// Reject godoc
// @Summary      Reject a pending transfer
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id path string true "Transfer ID" format(uuid)
// @Param        request body RejectTransferRequest false "Rejection reason"
// @Success      200 {object} dto.Response{data=TransferResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /transfers/{id}/reject [post]
func (h *TransferHandler) Reject(c *gin.Context) {
	transferID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID")
		return
	}
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req RejectTransferRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body")
			return
		}
	}

	transfer, err := h.transferService.Reject(c.Request.Context(), transferID, actorID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTransferResponse(transfer))
}

// Cancel godoc
// @Summary      Cancel a pending transfer
// @Description  The requesting user may withdraw their own pending transfer;
// @Description  administrators may cancel any pending transfer.
// @Tags         transfers
// @Produce      json
// @Param        id path string true "Transfer ID" format(uuid)
// @Success      200 {object} dto.Response{data=TransferResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /transfers/{id}/cancel [post]
func (h *TransferHandler) Cancel(c *gin.Context) {
	transferID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID")
		return
	}
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	transfer, err := h.transferService.CancelByRequester(c.Request.Context(), transferID, actorID, middleware.IsAdminCaller(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTransferResponse(transfer))
}

// AdminList godoc
// @Summary      List transfers across all tenants
// @Tags         transfers
// @Produce      json
// @Param        tenant_id query string false "Filter by tenant" format(uuid)
// @Param        status query string false "Filter by status" Enums(PENDING,PROCESSING,COMPLETED,FAILED,CANCELLED)
// @Param        min_amount query string false "Minimum gross amount"
// @Param        max_amount query string false "Maximum gross amount"
// @Success      200 {object} dto.Response{data=[]TransferResponse}
// @Security     BearerAuth
// @Router       /admin/transfers [get]
func (h *TransferHandler) AdminList(c *gin.Context) {
	filter, ok := h.bindTransferFilter(c, true)
	if !ok {
		return
	}

	transfers, total, err := h.transferService.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toTransferResponses(transfers), total, filter.Page, filter.PageSize)
}

// GatewayStatus godoc
// @Summary      Report the configured payment gateway
// @Description  Surfaces the gateway name and demo flag so partner screens
// @Description  can warn when payouts are simulated.
// @Tags         transfers
// @Produce      json
// @Success      200 {object} dto.Response{data=GatewayStatusResponse}
// @Security     BearerAuth
// @Router       /payment-gateway/status [get]
func (h *TransferHandler) GatewayStatus(c *gin.Context) {
	status := h.transferService.GatewayStatus()
	h.Success(c, GatewayStatusResponse{
		GatewayName:      status.GatewayName,
		IsDemoMode:       status.IsDemoMode,
		APIKeyConfigured: status.APIKeyConfigured,
	})
}

// bindTransferFilter parses and validates list query parameters. Admin scope
// additionally honors tenant and amount range filters. Returns false after
// writing the error response when a parameter is malformed.
func (h *TransferHandler) bindTransferFilter(c *gin.Context, adminScope bool) (settlement.TransferFilter, bool) {
	var query ListTransfersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return settlement.TransferFilter{}, false
	}

	filter := settlement.TransferFilter{
		Filter: shared.Filter{
			Page:     query.Page,
			PageSize: query.PageSize,
			OrderBy:  query.OrderBy,
			OrderDir: query.OrderDir,
		},
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	if query.Status != "" {
		status := settlement.TransferStatus(query.Status)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid transfer status")
			return settlement.TransferFilter{}, false
		}
		filter.Status = &status
	}

	if query.From != "" {
		from, err := parseQueryTime(query.From)
		if err != nil {
			h.BadRequest(c, "Invalid 'from' date")
			return settlement.TransferFilter{}, false
		}
		filter.FromDate = &from
	}
	if query.To != "" {
		to, err := parseQueryTime(query.To)
		if err != nil {
			h.BadRequest(c, "Invalid 'to' date")
			return settlement.TransferFilter{}, false
		}
		filter.ToDate = &to
	}

	if adminScope {
		if query.TenantID != "" {
			tenantID, err := uuid.Parse(query.TenantID)
			if err != nil {
				h.BadRequest(c, "Invalid tenant ID")
				return settlement.TransferFilter{}, false
			}
			filter.TenantID = &tenantID
		}
		if query.MinAmount != "" {
			min, err := decimal.NewFromString(query.MinAmount)
			if err != nil {
				h.BadRequest(c, "Invalid minimum amount")
				return settlement.TransferFilter{}, false
			}
			filter.MinAmount = &min
		}
		if query.MaxAmount != "" {
			max, err := decimal.NewFromString(query.MaxAmount)
			if err != nil {
				h.BadRequest(c, "Invalid maximum amount")
				return settlement.TransferFilter{}, false
			}
			filter.MaxAmount = &max
		}
	}

	return filter, true
}

// parseQueryTime accepts RFC 3339 timestamps and bare dates
func parseQueryTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
