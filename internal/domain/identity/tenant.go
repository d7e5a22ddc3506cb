package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/hotelsaas/backend/internal/domain/shared"
)

// TenantStatus represents the status of a partner tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusInactive  TenantStatus = "inactive"
	TenantStatusSuspended TenantStatus = "suspended" // Suspended due to payment/violation issues
)

// IsValid returns true if the status is a known tenant status
func (s TenantStatus) IsValid() bool {
	switch s {
	case TenantStatusActive, TenantStatusInactive, TenantStatusSuspended:
		return true
	default:
		return false
	}
}

var tenantCodePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{1,49}$`)

// Tenant represents a partner hotel in the multi-tenant system.
// It is the aggregate root for tenant-related operations.
type Tenant struct {
	shared.BaseAggregateRoot
	Code           string       `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string       `gorm:"type:varchar(200);not null"`
	Status         TenantStatus `gorm:"type:varchar(20);not null;default:'active'"`
	ContactName    string       `gorm:"type:varchar(100)"`
	ContactEmail   string       `gorm:"type:varchar(200)"`
	ContactPhone   string       `gorm:"type:varchar(50)"`
	City           string       `gorm:"type:varchar(100)"`
	BankIBAN       string       `gorm:"type:varchar(34)"` // Default settlement account
	SuspendedAt    *time.Time
	SuspendReason  string `gorm:"type:varchar(500)"`
	Notes          string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant creates a new active tenant with required fields
func NewTenant(code, name string) (*Tenant, error) {
	if !tenantCodePattern.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_TENANT_CODE", "Tenant code must be 2-50 alphanumeric characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot exceed 200 characters")
	}

	tenant := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            TenantStatusActive,
	}

	tenant.AddDomainEvent(NewTenantCreatedEvent(tenant))

	return tenant, nil
}

// Activate re-activates an inactive or suspended tenant
func (t *Tenant) Activate() error {
	if t.Status == TenantStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Tenant is already active")
	}

	oldStatus := t.Status
	t.Status = TenantStatusActive
	t.SuspendedAt = nil
	t.SuspendReason = ""
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, TenantStatusActive))

	return nil
}

// Deactivate disables a tenant; new settlement activity is rejected
func (t *Tenant) Deactivate() error {
	if t.Status == TenantStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Tenant is already inactive")
	}

	oldStatus := t.Status
	t.Status = TenantStatusInactive
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, TenantStatusInactive))

	return nil
}

// Suspend suspends a tenant, recording the reason
func (t *Tenant) Suspend(reason string) error {
	if t.Status == TenantStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Tenant is already suspended")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Suspend reason is required")
	}

	now := time.Now()
	oldStatus := t.Status
	t.Status = TenantStatusSuspended
	t.SuspendedAt = &now
	t.SuspendReason = reason
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, oldStatus, TenantStatusSuspended))

	return nil
}

// SetBankIBAN sets the tenant's default settlement account
func (t *Tenant) SetBankIBAN(iban string) error {
	if len(iban) > 34 {
		return shared.NewDomainError("INVALID_IBAN", "IBAN cannot exceed 34 characters")
	}
	t.BankIBAN = iban
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// IsActive returns true if the tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}
