package settlement

import (
	"context"
	"fmt"

	"github.com/hotelsaas/backend/internal/domain/settlement"
	"github.com/hotelsaas/backend/internal/domain/shared"
	"github.com/hotelsaas/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// CommissionService serves the tenant-facing commission read models
type CommissionService struct {
	commissions settlement.CommissionEntryRepository
	transfers   settlement.TransferRepository
}

// NewCommissionService creates a new CommissionService
func NewCommissionService(
	commissions settlement.CommissionEntryRepository,
	transfers settlement.TransferRepository,
) *CommissionService {
	return &CommissionService{
		commissions: commissions,
		transfers:   transfers,
	}
}

// Summary returns a tenant's commission balance summary
func (s *CommissionService) Summary(ctx context.Context, tenantID uuid.UUID) (*settlement.CommissionSummary, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "commission", "summary")
	defer span.End()

	telemetry.SetAttributes(span, "tenant_id", tenantID.String())

	earned, err := s.commissions.SumForTenant(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to sum commission entries: %w", err)
	}
	settled, err := s.transfers.SumByStatuses(ctx, tenantID, settlement.TransferStatusCompleted)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to sum settled transfers: %w", err)
	}
	outstanding, err := s.transfers.SumByStatuses(ctx, tenantID,
		settlement.TransferStatusPending, settlement.TransferStatusProcessing)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to sum outstanding transfers: %w", err)
	}

	summary := settlement.NewCommissionSummary(tenantID, earned, settled, outstanding)
	return &summary, nil
}

// Entries lists a tenant's commission entries with pagination
func (s *CommissionService) Entries(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]settlement.CommissionEntry, int64, error) {
	entries, err := s.commissions.FindForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list commission entries: %w", err)
	}
	total, err := s.commissions.CountForTenant(ctx, tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count commission entries: %w", err)
	}
	return entries, total, nil
}
