package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/hotelsaas/backend/internal/domain/identity"
	"github.com/hotelsaas/backend/internal/domain/settlement"
	"github.com/hotelsaas/backend/internal/domain/shared"
	"github.com/hotelsaas/backend/internal/domain/shared/valueobject"
	"github.com/hotelsaas/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultCommissionRatePercent is the platform fee withheld from each payout
// when no tenant-specific rate is configured.
var DefaultCommissionRatePercent = decimal.NewFromInt(10)

// DefaultGatewayTimeout bounds the synchronous gateway call during approval.
const DefaultGatewayTimeout = 30 * time.Second

// TransferService orchestrates the commission transfer workflow: intake,
// admin approval/rejection, requester cancellation, and queries.
type TransferService struct {
	transfers      settlement.TransferRepository
	commissions    settlement.CommissionEntryRepository
	tenants        identity.TenantRepository
	gateway        settlement.PaymentGateway
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	logger         *zap.Logger
	commissionRate decimal.Decimal
	gatewayTimeout time.Duration
}

// TransferServiceOption configures a TransferService
type TransferServiceOption func(*TransferService)

// WithCommissionRate overrides the platform commission rate (percent)
func WithCommissionRate(ratePercent decimal.Decimal) TransferServiceOption {
	return func(s *TransferService) {
		s.commissionRate = ratePercent
	}
}

// WithGatewayTimeout overrides the gateway call timeout
func WithGatewayTimeout(d time.Duration) TransferServiceOption {
	return func(s *TransferService) {
		s.gatewayTimeout = d
	}
}

// WithIdempotencyStore enables Idempotency-Key deduplication on intake
func WithIdempotencyStore(store shared.IdempotencyStore, ttl time.Duration) TransferServiceOption {
	return func(s *TransferService) {
		s.idempotency = store
		s.idempotencyTTL = ttl
	}
}

// NewTransferService creates a new TransferService
func NewTransferService(
	transfers settlement.TransferRepository,
	commissions settlement.CommissionEntryRepository,
	tenants identity.TenantRepository,
	gateway settlement.PaymentGateway,
	logger *zap.Logger,
	opts ...TransferServiceOption,
) *TransferService {
	s := &TransferService{
		transfers:      transfers,
		commissions:    commissions,
		tenants:        tenants,
		gateway:        gateway,
		logger:         logger,
		commissionRate: DefaultCommissionRatePercent,
		gatewayTimeout: DefaultGatewayTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestTransferInput carries a partner's transfer request
type RequestTransferInput struct {
	TenantID       uuid.UUID
	RequestedBy    uuid.UUID
	GrossAmount    decimal.Decimal
	BankIBAN       string
	Notes          string
	IdempotencyKey string
}

// RequestTransfer creates a new pending transfer for a tenant.
// The balance check is a best-effort read: two concurrent requests can both
// pass it, which is accepted (the admin gate catches overdrawn requests).
func (s *TransferService) RequestTransfer(ctx context.Context, in RequestTransferInput) (*settlement.Transfer, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "transfer", "request")
	defer span.End()

	telemetry.SetAttributes(span,
		"tenant_id", in.TenantID.String(),
		"gross_amount", in.GrossAmount.String(),
	)

	if in.GrossAmount.LessThanOrEqual(decimal.Zero) {
		err := shared.NewDomainError("INVALID_AMOUNT",
			fmt.Sprintf("Gross amount must be positive, got %s", in.GrossAmount.String()))
		telemetry.RecordError(span, err)
		return nil, err
	}

	if existing, err := s.replayedTransfer(ctx, in); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	} else if existing != nil {
		telemetry.AddEvent(span, "idempotent_replay", "transfer_id", existing.ID.String())
		return existing, nil
	}

	tenant, err := s.tenants.FindByID(ctx, in.TenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if tenant == nil {
		err := shared.NewDomainError("NOT_FOUND", "Tenant not found")
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !tenant.IsActive() {
		err := shared.NewDomainError("TENANT_INACTIVE",
			fmt.Sprintf("Tenant %s is %s and cannot request transfers", tenant.Code, tenant.Status))
		telemetry.RecordError(span, err)
		return nil, err
	}

	summary, err := s.commissionSummary(ctx, in.TenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if in.GrossAmount.GreaterThan(summary.AvailableCommission) {
		err := shared.NewDomainError("INSUFFICIENT_BALANCE",
			fmt.Sprintf("Insufficient commission balance: available %s, requested %s",
				summary.AvailableCommission.StringFixed(2), in.GrossAmount.StringFixed(2)))
		telemetry.RecordError(span, err)
		return nil, err
	}

	number, err := s.transfers.GenerateTransferNumber(ctx, in.TenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to generate transfer number: %w", err)
	}

	gross := valueobject.NewMoneyTRY(in.GrossAmount)
	commission := gross.CommissionAt(s.commissionRate)

	iban := in.BankIBAN
	if iban == "" {
		iban = tenant.BankIBAN
	}

	transfer, err := settlement.NewTransfer(in.TenantID, number, gross, commission, in.RequestedBy, iban, in.Notes)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.transfers.Save(ctx, transfer); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save transfer: %w", err)
	}

	if s.idempotency != nil && in.IdempotencyKey != "" {
		key := idempotencyKey(in.TenantID, in.IdempotencyKey)
		if _, _, err := s.idempotency.Remember(ctx, key, transfer.ID.String(), s.idempotencyTTL); err != nil {
			// Dedup is best effort; the transfer itself is already durable
			s.logger.Warn("failed to remember idempotency key",
				zap.String("transfer_id", transfer.ID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("transfer requested",
		zap.String("transfer_id", transfer.ID.String()),
		zap.String("transfer_number", transfer.TransferNumber),
		zap.String("tenant_id", in.TenantID.String()),
		zap.String("gross_amount", in.GrossAmount.String()),
	)

	telemetry.AddEvent(span, "transfer_requested", "transfer_id", transfer.ID.String())

	return transfer, nil
}

// replayedTransfer resolves a previously-created transfer when the request
// carries a known idempotency key. Returns (nil, nil) for fresh requests.
func (s *TransferService) replayedTransfer(ctx context.Context, in RequestTransferInput) (*settlement.Transfer, error) {
	if s.idempotency == nil || in.IdempotencyKey == "" {
		return nil, nil
	}

	existingID, err := s.idempotency.Lookup(ctx, idempotencyKey(in.TenantID, in.IdempotencyKey))
	if err != nil {
		return nil, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	if existingID == "" {
		return nil, nil
	}

	transferID, err := uuid.Parse(existingID)
	if err != nil {
		// Corrupt entry; proceed as a fresh request
		return nil, nil
	}
	transfer, err := s.transfers.FindByIDForTenant(ctx, in.TenantID, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transfer for idempotency key: %w", err)
	}
	return transfer, nil
}

// idempotencyKey namespaces client keys per tenant
func idempotencyKey(tenantID uuid.UUID, key string) string {
	return tenantID.String() + ":" + key
}

// Approve transitions a pending transfer to processing, settles it at the
// gateway, and records the terminal outcome. The processing row is persisted
// before the gateway call so the audit trail always shows the step, and the
// optimistic save serializes concurrent approve/reject attempts: the loser
// gets INVALID_STATE_TRANSITION.
func (s *TransferService) Approve(ctx context.Context, transferID, actorID uuid.UUID) (*settlement.Transfer, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "transfer", "approve")
	defer span.End()

	telemetry.SetAttributes(span, "transfer_id", transferID.String(), "actor_id", actorID.String())

	transfer, err := s.transfers.FindByID(ctx, transferID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}
	if transfer == nil {
		err := shared.NewDomainError("NOT_FOUND", "Transfer not found")
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := transfer.BeginProcessing(actorID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.transfers.SaveWithLock(ctx, transfer); err != nil {
		telemetry.RecordError(span, err)
		return nil, s.mapLockError(err)
	}

	// The transfer must reach a terminal state even if the caller goes away
	// mid-payout: run the gateway call and the terminal save on a context
	// detached from request cancellation, so a client disconnect cannot
	// strand the row in PROCESSING. The gateway timeout still bounds the call.
	detachedCtx := context.WithoutCancel(ctx)

	result := s.processAtGateway(detachedCtx, transfer)

	if result.Success {
		if err := transfer.Complete(result.ReferenceID); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	} else {
		if err := transfer.Fail(result.ErrorMessage); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	// Only this worker holds the PROCESSING version, so the terminal save is
	// not expected to conflict; a conflict here means operator interference.
	if err := s.transfers.SaveWithLock(detachedCtx, transfer); err != nil {
		telemetry.RecordError(span, err)
		return nil, s.mapLockError(err)
	}

	s.logger.Info("transfer processed",
		zap.String("transfer_id", transfer.ID.String()),
		zap.String("status", transfer.Status.String()),
		zap.String("reference_id", transfer.ReferenceID),
		zap.Bool("gateway_demo", s.gateway.IsDemo()),
	)

	telemetry.AddEvent(span, "transfer_processed",
		"status", transfer.Status.String(),
		"reference_id", transfer.ReferenceID,
	)

	return transfer, nil
}

// processAtGateway invokes the gateway with a bounded timeout and normalizes
// every failure mode into a PayoutResult.
func (s *TransferService) processAtGateway(ctx context.Context, transfer *settlement.Transfer) *settlement.PayoutResult {
	gwCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	result, err := s.gateway.ProcessPayout(gwCtx, &settlement.PayoutRequest{
		TenantID:       transfer.TenantID,
		TransferID:     transfer.ID,
		TransferNumber: transfer.TransferNumber,
		Amount:         transfer.NetAmount,
		Currency:       string(valueobject.DefaultCurrency),
		BankIBAN:       transfer.BankIBAN,
		Description:    fmt.Sprintf("Commission settlement %s", transfer.TransferNumber),
	})
	if err != nil {
		msg := err.Error()
		if gwCtx.Err() == context.DeadlineExceeded {
			msg = shared.ErrGatewayTimeout.Message
		}
		s.logger.Warn("gateway payout failed",
			zap.String("transfer_id", transfer.ID.String()),
			zap.Error(err),
		)
		return &settlement.PayoutResult{Success: false, ErrorMessage: msg}
	}
	return result
}

// Reject cancels a pending transfer on behalf of an administrator.
func (s *TransferService) Reject(ctx context.Context, transferID, actorID uuid.UUID, reason string) (*settlement.Transfer, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "transfer", "reject")
	defer span.End()

	telemetry.SetAttributes(span, "transfer_id", transferID.String(), "actor_id", actorID.String())

	transfer, err := s.transfers.FindByID(ctx, transferID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}
	if transfer == nil {
		err := shared.NewDomainError("NOT_FOUND", "Transfer not found")
		telemetry.RecordError(span, err)
		return nil, err
	}

	if reason == "" {
		reason = "Rejected by administrator"
	}
	if err := transfer.Cancel(actorID, reason); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.transfers.SaveWithLock(ctx, transfer); err != nil {
		telemetry.RecordError(span, err)
		return nil, s.mapLockError(err)
	}

	s.logger.Info("transfer rejected",
		zap.String("transfer_id", transfer.ID.String()),
		zap.String("reason", reason),
	)

	return transfer, nil
}

// CancelByRequester cancels a pending transfer on behalf of its requester.
// Admins may cancel any pending transfer; a partner user only their own.
func (s *TransferService) CancelByRequester(ctx context.Context, transferID, requesterID uuid.UUID, isAdmin bool) (*settlement.Transfer, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "transfer", "cancel")
	defer span.End()

	telemetry.SetAttributes(span, "transfer_id", transferID.String(), "requester_id", requesterID.String())

	transfer, err := s.transfers.FindByID(ctx, transferID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}
	if transfer == nil {
		err := shared.NewDomainError("NOT_FOUND", "Transfer not found")
		telemetry.RecordError(span, err)
		return nil, err
	}

	if !isAdmin && !transfer.RequestedBy(requesterID) {
		err := shared.NewDomainError("UNAUTHORIZED", "Only the requester or an administrator can cancel this transfer")
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := transfer.Cancel(requesterID, "Cancelled by requester"); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.transfers.SaveWithLock(ctx, transfer); err != nil {
		telemetry.RecordError(span, err)
		return nil, s.mapLockError(err)
	}

	s.logger.Info("transfer cancelled by requester",
		zap.String("transfer_id", transfer.ID.String()),
		zap.String("requester_id", requesterID.String()),
	)

	return transfer, nil
}

// Get returns a single transfer scoped to a tenant
func (s *TransferService) Get(ctx context.Context, tenantID, transferID uuid.UUID) (*settlement.Transfer, error) {
	transfer, err := s.transfers.FindByIDForTenant(ctx, tenantID, transferID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}
	if transfer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Transfer not found")
	}
	return transfer, nil
}

// ListForTenant lists a tenant's transfers with filtering and pagination
func (s *TransferService) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter settlement.TransferFilter) ([]settlement.Transfer, int64, error) {
	transfers, err := s.transfers.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transfers: %w", err)
	}
	total, err := s.transfers.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count transfers: %w", err)
	}
	return transfers, total, nil
}

// ListAll lists transfers across all tenants (admin scope)
func (s *TransferService) ListAll(ctx context.Context, filter settlement.TransferFilter) ([]settlement.Transfer, int64, error) {
	transfers, err := s.transfers.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transfers: %w", err)
	}
	total, err := s.transfers.CountAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count transfers: %w", err)
	}
	return transfers, total, nil
}

// GatewayStatus reports the active gateway configuration
func (s *TransferService) GatewayStatus() settlement.GatewayStatus {
	return s.gateway.Status()
}

// commissionSummary assembles the tenant's commission aggregate from the
// entry and transfer sums.
func (s *TransferService) commissionSummary(ctx context.Context, tenantID uuid.UUID) (*settlement.CommissionSummary, error) {
	earned, err := s.commissions.SumForTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum commission entries: %w", err)
	}
	settled, err := s.transfers.SumByStatuses(ctx, tenantID, settlement.TransferStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to sum settled transfers: %w", err)
	}
	outstanding, err := s.transfers.SumByStatuses(ctx, tenantID,
		settlement.TransferStatusPending, settlement.TransferStatusProcessing)
	if err != nil {
		return nil, fmt.Errorf("failed to sum outstanding transfers: %w", err)
	}
	summary := settlement.NewCommissionSummary(tenantID, earned, settled, outstanding)
	return &summary, nil
}

// mapLockError converts a repository concurrency conflict into the
// INVALID_STATE_TRANSITION the caller expects for a lost race.
func (s *TransferService) mapLockError(err error) error {
	if err == shared.ErrConcurrencyConflict {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			"Transfer was modified by a concurrent operation")
	}
	return fmt.Errorf("failed to save transfer: %w", err)
}
