package payment

import (
	"errors"
	"strings"
	"time"

	"github.com/hotelsaas/backend/internal/infrastructure/config"
)

// Errors for configuration validation
var (
	ErrMagicPayMissingAPIKey  = errors.New("magicpay: missing API key")
	ErrMagicPayInvalidAPIKey  = errors.New("magicpay: API key must start with mp_")
	ErrMagicPayMissingBaseURL = errors.New("magicpay: missing base URL")
	ErrMagicPayInvalidBaseURL = errors.New("magicpay: base URL must use https")
)

// MagicPayConfig contains configuration for the MagicPay payouts API
type MagicPayConfig struct {
	// APIKey is the secret API key ("mp_live_..." or "mp_test_...")
	APIKey string
	// BaseURL is the MagicPay API base URL, without trailing slash
	BaseURL string
	// Timeout is the per-request HTTP timeout
	Timeout time.Duration
}

// NewMagicPayConfig builds a MagicPayConfig from application gateway settings
func NewMagicPayConfig(gw config.GatewayConfig) *MagicPayConfig {
	timeout := gw.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MagicPayConfig{
		APIKey:  gw.APIKey,
		BaseURL: strings.TrimRight(gw.BaseURL, "/"),
		Timeout: timeout,
	}
}

// Validate validates the configuration
func (c *MagicPayConfig) Validate() error {
	if c.APIKey == "" {
		return ErrMagicPayMissingAPIKey
	}
	if !strings.HasPrefix(c.APIKey, "mp_") {
		return ErrMagicPayInvalidAPIKey
	}
	if c.BaseURL == "" {
		return ErrMagicPayMissingBaseURL
	}
	if !strings.HasPrefix(c.BaseURL, "https://") && !strings.HasPrefix(c.BaseURL, "http://localhost") && !strings.HasPrefix(c.BaseURL, "http://127.0.0.1") {
		return ErrMagicPayInvalidBaseURL
	}
	return nil
}

// IsTestKey reports whether the configured key targets the MagicPay sandbox
func (c *MagicPayConfig) IsTestKey() bool {
	return strings.HasPrefix(c.APIKey, "mp_test_")
}
