package payment

import "time"

// magicPayPayoutRequest is the wire format for POST /v1/payouts
type magicPayPayoutRequest struct {
	// IdempotencyKey deduplicates retried payouts at the gateway.
	// We use our internal transfer ID, which is unique per payout attempt.
	IdempotencyKey  string            `json:"idempotency_key"`
	Amount          string            `json:"amount"`
	Currency        string            `json:"currency"`
	DestinationIBAN string            `json:"destination_iban"`
	Description     string            `json:"description,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// magicPayPayoutResponse is the wire format of a payout resource
type magicPayPayoutResponse struct {
	ID            string     `json:"id"`
	Status        string     `json:"status"`
	FailureReason string     `json:"failure_reason,omitempty"`
	SettledAt     *time.Time `json:"settled_at,omitempty"`
}

// Payout statuses returned by the MagicPay API
const (
	magicPayStatusSettled  = "settled"
	magicPayStatusRejected = "rejected"
)

// magicPayErrorResponse is the wire format of an API-level error
type magicPayErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
