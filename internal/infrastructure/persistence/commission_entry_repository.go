package persistence

import (
	"context"

	"github.com/hotelsaas/backend/internal/domain/settlement"
	"github.com/hotelsaas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCommissionEntryRepository implements CommissionEntryRepository using
// GORM. Entries are written by the reservation pipeline; this repository is
// read-only.
type GormCommissionEntryRepository struct {
	db *gorm.DB
}

// NewGormCommissionEntryRepository creates a new GormCommissionEntryRepository
func NewGormCommissionEntryRepository(db *gorm.DB) *GormCommissionEntryRepository {
	return &GormCommissionEntryRepository{db: db}
}

// SumForTenant sums all commission earned by a tenant
func (r *GormCommissionEntryRepository) SumForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&settlement.CommissionEntry{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("tenant_id = ?", tenantID).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// FindForTenant lists commission entries for a tenant, newest first
func (r *GormCommissionEntryRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]settlement.CommissionEntry, error) {
	var entries []settlement.CommissionEntry
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 0 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}

	order := orderClause(filter.OrderBy, filter.OrderDir, CommissionEntrySortFields, "earned_at")
	if err := query.Order(order).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CountForTenant counts commission entries for a tenant
func (r *GormCommissionEntryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&settlement.CommissionEntry{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormCommissionEntryRepository implements the interface
var _ settlement.CommissionEntryRepository = (*GormCommissionEntryRepository)(nil)
