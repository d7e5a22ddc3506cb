package payment

import (
	"github.com/hotelsaas/backend/internal/domain/settlement"
	"github.com/hotelsaas/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewPaymentGateway selects the gateway implementation from configuration.
// Demo mode, or a missing API key, selects the demo adapter; everything else
// gets the live MagicPay adapter. The choice is made once at startup so
// business code only ever sees the settlement.PaymentGateway interface.
func NewPaymentGateway(cfg config.GatewayConfig, logger *zap.Logger) (settlement.PaymentGateway, error) {
	if cfg.DemoMode {
		logger.Info("payment gateway running in demo mode",
			zap.String("gateway", cfg.Name),
		)
		return NewMagicPayDemoAdapter(), nil
	}

	if cfg.APIKey == "" {
		logger.Warn("payment gateway API key not configured, falling back to demo mode",
			zap.String("gateway", cfg.Name),
		)
		return NewMagicPayDemoAdapter(), nil
	}

	adapter, err := NewMagicPayAdapter(NewMagicPayConfig(cfg))
	if err != nil {
		return nil, err
	}

	logger.Info("payment gateway configured",
		zap.String("gateway", adapter.Name()),
		zap.Bool("test_key", adapter.config.IsTestKey()),
	)
	return adapter, nil
}
