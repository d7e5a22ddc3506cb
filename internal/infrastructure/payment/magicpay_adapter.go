package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hotelsaas/backend/internal/domain/settlement"
)

const magicPayPayoutsPath = "/v1/payouts"

// MagicPayAdapter implements settlement.PaymentGateway against the live
// MagicPay REST API. Transport and authentication failures surface as errors;
// a payout the gateway examined and rejected comes back as an unsuccessful
// PayoutResult instead, so the caller can record the rejection reason.
type MagicPayAdapter struct {
	config     *MagicPayConfig
	httpClient *http.Client
}

// NewMagicPayAdapter creates a new MagicPay adapter
func NewMagicPayAdapter(config *MagicPayConfig) (*MagicPayAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &MagicPayAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Name returns the display name of the gateway
func (a *MagicPayAdapter) Name() string {
	return "MagicPay"
}

// IsDemo reports whether this gateway simulates settlement
func (a *MagicPayAdapter) IsDemo() bool {
	return false
}

// Status reports the current gateway configuration
func (a *MagicPayAdapter) Status() settlement.GatewayStatus {
	return settlement.GatewayStatus{
		GatewayName:      a.Name(),
		IsDemoMode:       false,
		APIKeyConfigured: a.config.APIKey != "",
	}
}

// ProcessPayout executes a payout through the MagicPay payouts API
func (a *MagicPayAdapter) ProcessPayout(ctx context.Context, req *settlement.PayoutRequest) (*settlement.PayoutResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := magicPayPayoutRequest{
		IdempotencyKey:  req.TransferID.String(),
		Amount:          req.Amount.StringFixed(2),
		Currency:        req.Currency,
		DestinationIBAN: req.BankIBAN,
		Description:     req.Description,
		Metadata: map[string]string{
			"tenant_id":       req.TenantID.String(),
			"transfer_number": req.TransferNumber,
		},
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("magicpay: failed to marshal request: %w", err)
	}

	respBody, statusCode, err := a.doRequest(ctx, http.MethodPost, magicPayPayoutsPath, bodyBytes)
	if err != nil {
		return nil, err
	}

	// 422 means the gateway understood the payout and refused it: a terminal
	// business rejection, not a transport failure.
	if statusCode == http.StatusUnprocessableEntity {
		var errResp magicPayErrorResponse
		message := "payout rejected"
		if jsonErr := json.Unmarshal(respBody, &errResp); jsonErr == nil && errResp.Message != "" {
			message = errResp.Message
		}
		return &settlement.PayoutResult{
			Success:      false,
			ErrorMessage: message,
			RawResponse:  string(respBody),
		}, nil
	}

	if statusCode >= 400 {
		var errResp magicPayErrorResponse
		if jsonErr := json.Unmarshal(respBody, &errResp); jsonErr == nil && errResp.Code != "" {
			return nil, fmt.Errorf("magicpay: %s - %s", errResp.Code, errResp.Message)
		}
		return nil, fmt.Errorf("magicpay: HTTP %d", statusCode)
	}

	var payout magicPayPayoutResponse
	if err := json.Unmarshal(respBody, &payout); err != nil {
		return nil, fmt.Errorf("magicpay: failed to parse response: %w", err)
	}

	result := &settlement.PayoutResult{
		RawResponse: string(respBody),
	}
	switch payout.Status {
	case magicPayStatusSettled:
		result.Success = true
		result.ReferenceID = payout.ID
		result.SettledAt = payout.SettledAt
	case magicPayStatusRejected:
		result.Success = false
		result.ErrorMessage = payout.FailureReason
		if result.ErrorMessage == "" {
			result.ErrorMessage = "payout rejected"
		}
	default:
		return nil, fmt.Errorf("magicpay: unexpected payout status %q", payout.Status)
	}
	return result, nil
}

func (a *MagicPayAdapter) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, int, error) {
	url := a.config.BaseURL + path

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("magicpay: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.config.APIKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("magicpay: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("magicpay: failed to read response: %w", err)
	}

	return respBody, resp.StatusCode, nil
}
