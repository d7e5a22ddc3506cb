package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionEntry is a read model row written by the reservation system for
// every settled booking. The settlement service only ever reads these.
type CommissionEntry struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	BookingReference string          `gorm:"type:varchar(50);not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	EarnedAt         time.Time       `gorm:"not null;index"`
	CreatedAt        time.Time
}

// TableName returns the table name for GORM
func (CommissionEntry) TableName() string {
	return "commission_entries"
}

// CommissionSummary is the read-only aggregate a tenant sees before
// requesting a transfer. Available commission is earned commission minus
// everything already requested or settled; it excludes only failed and
// cancelled transfers.
type CommissionSummary struct {
	TenantID            uuid.UUID       `json:"tenant_id"`
	TotalEarned         decimal.Decimal `json:"total_earned"`
	TotalSettled        decimal.Decimal `json:"total_settled"`
	PendingTotal        decimal.Decimal `json:"pending_total"`
	AvailableCommission decimal.Decimal `json:"available_commission"`
	Currency            string          `json:"currency"`
	AsOf                time.Time       `json:"as_of"`
}

// NewCommissionSummary derives a summary from the underlying sums.
// Available commission never goes negative even if outstanding requests
// momentarily exceed earnings (the accepted intake race).
func NewCommissionSummary(tenantID uuid.UUID, earned, settled, pending decimal.Decimal) CommissionSummary {
	available := earned.Sub(settled).Sub(pending)
	if available.IsNegative() {
		available = decimal.Zero
	}
	return CommissionSummary{
		TenantID:            tenantID,
		TotalEarned:         earned,
		TotalSettled:        settled,
		PendingTotal:        pending,
		AvailableCommission: available,
		Currency:            "TRY",
		AsOf:                time.Now(),
	}
}
