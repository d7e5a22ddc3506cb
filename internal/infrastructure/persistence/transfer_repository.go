package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/hotelsaas/backend/internal/domain/settlement"
	"github.com/hotelsaas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTransferRepository implements TransferRepository using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// FindByID finds a transfer by ID
func (r *GormTransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*settlement.Transfer, error) {
	var transfer settlement.Transfer
	if err := r.db.WithContext(ctx).
		First(&transfer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transfer, nil
}

// FindByIDForTenant finds a transfer by ID for a specific tenant
func (r *GormTransferRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*settlement.Transfer, error) {
	var transfer settlement.Transfer
	if err := r.db.WithContext(ctx).
		First(&transfer, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transfer, nil
}

// FindByTransferNumber finds by transfer number for a tenant
func (r *GormTransferRepository) FindByTransferNumber(ctx context.Context, tenantID uuid.UUID, transferNumber string) (*settlement.Transfer, error) {
	var transfer settlement.Transfer
	if err := r.db.WithContext(ctx).
		First(&transfer, "transfer_number = ? AND tenant_id = ?", transferNumber, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transfer, nil
}

// FindAllForTenant finds all transfers for a tenant with filtering
func (r *GormTransferRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter settlement.TransferFilter) ([]settlement.Transfer, error) {
	var transfers []settlement.Transfer
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	query = applyTransferFilter(query, filter)
	query = applyTransferPagination(query, filter)

	order := orderClause(filter.OrderBy, filter.OrderDir, TransferSortFields, "created_at")
	if err := query.Order(order).Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// FindAll finds transfers across all tenants with filtering (admin scope)
func (r *GormTransferRepository) FindAll(ctx context.Context, filter settlement.TransferFilter) ([]settlement.Transfer, error) {
	var transfers []settlement.Transfer
	query := r.db.WithContext(ctx).Model(&settlement.Transfer{})
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	query = applyTransferFilter(query, filter)
	query = applyTransferPagination(query, filter)

	order := orderClause(filter.OrderBy, filter.OrderDir, TransferSortFields, "created_at")
	if err := query.Order(order).Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// Save creates or updates a transfer
func (r *GormTransferRepository) Save(ctx context.Context, transfer *settlement.Transfer) error {
	return r.db.WithContext(ctx).Save(transfer).Error
}

// SaveWithLock saves with optimistic locking (version check).
// Returns shared.ErrConcurrencyConflict if another writer updated the row.
func (r *GormTransferRepository) SaveWithLock(ctx context.Context, transfer *settlement.Transfer) error {
	result := r.db.WithContext(ctx).
		Model(transfer).
		Where("id = ? AND version = ?", transfer.ID, transfer.Version-1).
		Updates(transfer)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// CountForTenant counts transfers for a tenant with optional filters
func (r *GormTransferRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter settlement.TransferFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&settlement.Transfer{}).Where("tenant_id = ?", tenantID)
	query = applyTransferFilter(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountAll counts transfers across all tenants with optional filters
func (r *GormTransferRepository) CountAll(ctx context.Context, filter settlement.TransferFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&settlement.Transfer{})
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	query = applyTransferFilter(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByStatuses sums gross amounts of a tenant's transfers in the given statuses
func (r *GormTransferRepository) SumByStatuses(ctx context.Context, tenantID uuid.UUID, statuses ...settlement.TransferStatus) (decimal.Decimal, error) {
	if len(statuses) == 0 {
		return decimal.Zero, nil
	}

	var sum decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&settlement.Transfer{}).
		Select("COALESCE(SUM(gross_amount), 0)").
		Where("tenant_id = ? AND status IN ?", tenantID, statuses).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// GenerateTransferNumber generates a unique transfer number for a tenant.
// Format: TRF-XXXXXXXX-NNNN, where NNNN is a per-tenant sequence taken from
// the highest numeric suffix on record; the middle segment is random, so the
// max has to come from the suffix itself, not from string ordering.
func (r *GormTransferRepository) GenerateTransferNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	var maxSeq int
	if err := r.db.WithContext(ctx).
		Model(&settlement.Transfer{}).
		Select("COALESCE(MAX(CAST(RIGHT(transfer_number, 4) AS INTEGER)), 0)").
		Where("tenant_id = ?", tenantID).
		Scan(&maxSeq).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("TRF-%s-%04d", uuid.New().String()[:8], maxSeq+1), nil
}

// applyTransferFilter applies the common filter clauses to a query
func applyTransferFilter(query *gorm.DB, filter settlement.TransferFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.RequestedByID != nil {
		query = query.Where("requested_by_id = ?", *filter.RequestedByID)
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}
	if filter.MinAmount != nil {
		query = query.Where("gross_amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("gross_amount <= ?", *filter.MaxAmount)
	}
	return query
}

// applyTransferPagination applies limit/offset from the filter
func applyTransferPagination(query *gorm.DB, filter settlement.TransferFilter) *gorm.DB {
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 0 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}
	return query
}

// Ensure GormTransferRepository implements the interface
var _ settlement.TransferRepository = (*GormTransferRepository)(nil)
