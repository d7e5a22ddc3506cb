package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hotelsaas/backend/internal/domain/settlement"
)

// CreateTransferRequest is the payload for requesting a commission transfer
// @name HandlerCreateTransferRequest
type CreateTransferRequest struct {
	GrossAmount decimal.Decimal `json:"gross_amount" binding:"required" example:"1000.00"`
	BankIBAN    string          `json:"bank_iban,omitempty" example:"TR330006100519786457841326"`
	Notes       string          `json:"notes,omitempty" example:"September payout"`
}

// RejectTransferRequest is the payload for rejecting a pending transfer
// @name HandlerRejectTransferRequest
type RejectTransferRequest struct {
	Reason string `json:"reason,omitempty" example:"IBAN does not match tenant records"`
}

// ListTransfersQuery holds the query parameters for transfer listings
// @name HandlerListTransfersQuery
type ListTransfersQuery struct {
	Status    string `form:"status"`
	From      string `form:"from"`
	To        string `form:"to"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir"`
	TenantID  string `form:"tenant_id"`  // admin listings only
	MinAmount string `form:"min_amount"` // admin listings only
	MaxAmount string `form:"max_amount"` // admin listings only
}

// TransferResponse represents a commission transfer in API responses
// @name HandlerTransferResponse
type TransferResponse struct {
	ID               string     `json:"id"`
	TenantID         string     `json:"tenant_id"`
	TransferNumber   string     `json:"transfer_number"`
	GrossAmount      string     `json:"gross_amount"`
	CommissionAmount string     `json:"commission_amount"`
	NetAmount        string     `json:"net_amount"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	BankIBAN         string     `json:"bank_iban,omitempty"`
	ReferenceID      string     `json:"reference_id,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	ErrorMessage     string     `json:"error_message,omitempty"`
	RequestedByID    string     `json:"requested_by_id"`
	TransferDate     *time.Time `json:"transfer_date,omitempty"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	Version          int        `json:"version"`
}

// toTransferResponse converts a Transfer aggregate to its API representation.
// Monetary fields are serialized as fixed two-decimal strings so clients
// never see float artifacts.
func toTransferResponse(t *settlement.Transfer) TransferResponse {
	return TransferResponse{
		ID:               t.ID.String(),
		TenantID:         t.TenantID.String(),
		TransferNumber:   t.TransferNumber,
		GrossAmount:      t.GrossAmount.StringFixed(2),
		CommissionAmount: t.CommissionAmount.StringFixed(2),
		NetAmount:        t.NetAmount.StringFixed(2),
		Currency:         string(t.GetGrossAmountMoney().Currency()),
		Status:           t.Status.String(),
		BankIBAN:         t.BankIBAN,
		ReferenceID:      t.ReferenceID,
		Notes:            t.Notes,
		ErrorMessage:     t.ErrorMessage,
		RequestedByID:    t.RequestedByID.String(),
		TransferDate:     t.TransferDate,
		ApprovedAt:       t.ApprovedAt,
		CancelledAt:      t.CancelledAt,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
		Version:          t.Version,
	}
}

// toTransferResponses converts a slice of transfers
func toTransferResponses(transfers []settlement.Transfer) []TransferResponse {
	responses := make([]TransferResponse, 0, len(transfers))
	for i := range transfers {
		responses = append(responses, toTransferResponse(&transfers[i]))
	}
	return responses
}

// CommissionSummaryResponse is the balance view a partner sees before
// requesting a transfer
// @name HandlerCommissionSummaryResponse
type CommissionSummaryResponse struct {
	TenantID            string    `json:"tenant_id"`
	TotalEarned         string    `json:"total_earned"`
	TotalSettled        string    `json:"total_settled"`
	PendingTotal        string    `json:"pending_total"`
	AvailableCommission string    `json:"available_commission"`
	Currency            string    `json:"currency"`
	AsOf                time.Time `json:"as_of"`
}

func toCommissionSummaryResponse(s *settlement.CommissionSummary) CommissionSummaryResponse {
	return CommissionSummaryResponse{
		TenantID:            s.TenantID.String(),
		TotalEarned:         s.TotalEarned.StringFixed(2),
		TotalSettled:        s.TotalSettled.StringFixed(2),
		PendingTotal:        s.PendingTotal.StringFixed(2),
		AvailableCommission: s.AvailableCommission.StringFixed(2),
		Currency:            s.Currency,
		AsOf:                s.AsOf,
	}
}

// CommissionEntryResponse represents a single earned commission row
// @name HandlerCommissionEntryResponse
type CommissionEntryResponse struct {
	ID               string    `json:"id"`
	BookingReference string    `json:"booking_reference"`
	Amount           string    `json:"amount"`
	EarnedAt         time.Time `json:"earned_at"`
}

func toCommissionEntryResponses(entries []settlement.CommissionEntry) []CommissionEntryResponse {
	responses := make([]CommissionEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, CommissionEntryResponse{
			ID:               e.ID.String(),
			BookingReference: e.BookingReference,
			Amount:           e.Amount.StringFixed(2),
			EarnedAt:         e.EarnedAt,
		})
	}
	return responses
}

// GatewayStatusResponse describes the configured payment gateway
// @name HandlerGatewayStatusResponse
type GatewayStatusResponse struct {
	GatewayName      string `json:"gateway_name"`
	IsDemoMode       bool   `json:"is_demo_mode"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}
