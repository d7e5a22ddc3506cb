package payment

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hotelsaas/backend/internal/domain/settlement"
)

// MagicPayDemoAdapter implements settlement.PaymentGateway without any
// network calls. Payouts settle instantly with a DEMO-prefixed reference,
// in a deterministic sequence, so environments without MagicPay credentials
// can exercise the full approval flow end to end.
type MagicPayDemoAdapter struct {
	seq       atomic.Uint64
	latency   time.Duration
	failEvery uint64
}

// DemoOption configures the demo adapter
type DemoOption func(*MagicPayDemoAdapter)

// WithDemoLatency makes each payout take the given duration, so timeout
// handling can be exercised without a real gateway.
func WithDemoLatency(d time.Duration) DemoOption {
	return func(a *MagicPayDemoAdapter) {
		a.latency = d
	}
}

// WithSimulatedFailureEvery makes every nth payout come back rejected.
// Zero disables simulated failures.
func WithSimulatedFailureEvery(n uint64) DemoOption {
	return func(a *MagicPayDemoAdapter) {
		a.failEvery = n
	}
}

// NewMagicPayDemoAdapter creates a new demo adapter
func NewMagicPayDemoAdapter(opts ...DemoOption) *MagicPayDemoAdapter {
	a := &MagicPayDemoAdapter{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the display name of the gateway
func (a *MagicPayDemoAdapter) Name() string {
	return "MagicPay Demo"
}

// IsDemo reports whether this gateway simulates settlement
func (a *MagicPayDemoAdapter) IsDemo() bool {
	return true
}

// Status reports the current gateway configuration
func (a *MagicPayDemoAdapter) Status() settlement.GatewayStatus {
	return settlement.GatewayStatus{
		GatewayName:      a.Name(),
		IsDemoMode:       true,
		APIKeyConfigured: false,
	}
}

// ProcessPayout simulates a payout. The reference sequence is deterministic
// per adapter instance ("DEMO-000001", "DEMO-000002", ...).
func (a *MagicPayDemoAdapter) ProcessPayout(ctx context.Context, req *settlement.PayoutRequest) (*settlement.PayoutResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if a.latency > 0 {
		select {
		case <-time.After(a.latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := a.seq.Add(1)
	if a.failEvery > 0 && n%a.failEvery == 0 {
		return &settlement.PayoutResult{
			Success:      false,
			ErrorMessage: "Simulated gateway rejection (demo mode)",
		}, nil
	}

	settledAt := time.Now().UTC()
	return &settlement.PayoutResult{
		Success:     true,
		ReferenceID: fmt.Sprintf("DEMO-%06d", n),
		SettledAt:   &settledAt,
	}, nil
}
