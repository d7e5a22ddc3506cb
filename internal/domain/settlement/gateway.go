package settlement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gateway errors
var (
	ErrGatewayNotConfigured = errors.New("settlement: gateway not configured")
	ErrGatewayTimeout       = errors.New("settlement: gateway call timed out")
	ErrGatewayRejected      = errors.New("settlement: gateway rejected the transfer")

	ErrPayoutInvalidTenantID   = errors.New("payout: invalid tenant ID")
	ErrPayoutInvalidTransferID = errors.New("payout: invalid transfer ID")
	ErrPayoutInvalidAmount     = errors.New("payout: invalid payout amount")
)

// PayoutRequest represents a request to move money for an approved transfer
type PayoutRequest struct {
	// TenantID is the partner being paid out
	TenantID uuid.UUID
	// TransferID is our internal transfer ID
	TransferID uuid.UUID
	// TransferNumber is our internal transfer number (shown on statements)
	TransferNumber string
	// Amount is the net payout amount
	Amount decimal.Decimal
	// Currency is the payout currency (default: TRY)
	Currency string
	// BankIBAN is the destination account
	BankIBAN string
	// Description is an optional statement descriptor
	Description string
}

// Validate validates the payout request
func (r *PayoutRequest) Validate() error {
	if r.TenantID == uuid.Nil {
		return ErrPayoutInvalidTenantID
	}
	if r.TransferID == uuid.Nil {
		return ErrPayoutInvalidTransferID
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrPayoutInvalidAmount
	}
	return nil
}

// PayoutResult represents the gateway's answer to a payout request
type PayoutResult struct {
	// Success reports whether the gateway settled the payout
	Success bool
	// ReferenceID is the settlement reference in the gateway, set on success
	ReferenceID string
	// ErrorMessage explains the rejection, set on failure
	ErrorMessage string
	// SettledAt is when the gateway settled the payout
	SettledAt *time.Time
	// RawResponse is the original gateway response (JSON), empty in demo mode
	RawResponse string
}

// GatewayStatus describes the active gateway configuration, surfaced to
// callers so partner screens can warn about demo mode.
type GatewayStatus struct {
	GatewayName      string `json:"gateway_name"`
	IsDemoMode       bool   `json:"is_demo_mode"`
	APIKeyConfigured bool   `json:"api_key_configured"`
}

// PaymentGateway defines the port interface for the settlement payment
// network. It is defined in the domain layer; concrete implementations
// (MagicPay live, MagicPay demo) live in the infrastructure layer, and the
// ledger only ever sees this interface.
type PaymentGateway interface {
	// Name returns the display name of the gateway
	Name() string

	// IsDemo reports whether this gateway simulates settlement
	IsDemo() bool

	// ProcessPayout executes a payout for an approved transfer.
	// Implementations must honor ctx cancellation and deadlines; a deadline
	// overrun is returned as ErrGatewayTimeout, never as an indefinite block.
	ProcessPayout(ctx context.Context, req *PayoutRequest) (*PayoutResult, error)

	// Status reports the current gateway configuration
	Status() GatewayStatus
}
