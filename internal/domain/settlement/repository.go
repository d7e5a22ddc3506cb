package settlement

import (
	"context"
	"time"

	"github.com/hotelsaas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferFilter defines filtering options for transfer queries
type TransferFilter struct {
	shared.Filter
	TenantID      *uuid.UUID      // Filter by tenant (admin queries only)
	Status        *TransferStatus // Filter by status
	RequestedByID *uuid.UUID      // Filter by requesting user
	FromDate      *time.Time      // Filter by creation date range start
	ToDate        *time.Time      // Filter by creation date range end
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
}

// TransferRepository defines the interface for commission transfer persistence
type TransferRepository interface {
	// FindByID finds a transfer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Transfer, error)

	// FindByIDForTenant finds a transfer by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Transfer, error)

	// FindByTransferNumber finds by transfer number for a tenant
	FindByTransferNumber(ctx context.Context, tenantID uuid.UUID, transferNumber string) (*Transfer, error)

	// FindAllForTenant finds all transfers for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter TransferFilter) ([]Transfer, error)

	// FindAll finds transfers across all tenants with filtering (admin scope)
	FindAll(ctx context.Context, filter TransferFilter) ([]Transfer, error)

	// Save creates or updates a transfer
	Save(ctx context.Context, transfer *Transfer) error

	// SaveWithLock saves with optimistic locking (version check).
	// Returns shared.ErrConcurrencyConflict when another writer won.
	SaveWithLock(ctx context.Context, transfer *Transfer) error

	// CountForTenant counts transfers for a tenant with optional filters
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter TransferFilter) (int64, error)

	// CountAll counts transfers across all tenants with optional filters
	CountAll(ctx context.Context, filter TransferFilter) (int64, error)

	// SumByStatuses sums gross amounts of a tenant's transfers in the given statuses
	SumByStatuses(ctx context.Context, tenantID uuid.UUID, statuses ...TransferStatus) (decimal.Decimal, error)

	// GenerateTransferNumber generates a unique transfer number for a tenant
	GenerateTransferNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// CommissionEntryRepository provides read-only access to the commission
// entries the reservation system writes per settled booking. This service
// never creates or mutates entries.
type CommissionEntryRepository interface {
	// SumForTenant sums all commission earned by a tenant
	SumForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)

	// FindForTenant lists commission entries for a tenant
	FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CommissionEntry, error)

	// CountForTenant counts commission entries for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
