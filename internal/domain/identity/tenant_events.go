package identity

import (
	"github.com/hotelsaas/backend/internal/domain/shared"
)

// TenantCreatedEvent is raised when a new tenant is onboarded
type TenantCreatedEvent struct {
	shared.BaseDomainEvent
	TenantCode string `json:"tenant_code"`
	TenantName string `json:"tenant_name"`
}

// EventType returns the event type name
func (e *TenantCreatedEvent) EventType() string {
	return "TenantCreated"
}

// NewTenantCreatedEvent creates a new TenantCreatedEvent
func NewTenantCreatedEvent(t *Tenant) *TenantCreatedEvent {
	return &TenantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TenantCreated", "Tenant", t.ID, t.ID),
		TenantCode:      t.Code,
		TenantName:      t.Name,
	}
}

// TenantStatusChangedEvent is raised when a tenant's status changes
type TenantStatusChangedEvent struct {
	shared.BaseDomainEvent
	TenantCode string       `json:"tenant_code"`
	OldStatus  TenantStatus `json:"old_status"`
	NewStatus  TenantStatus `json:"new_status"`
}

// EventType returns the event type name
func (e *TenantStatusChangedEvent) EventType() string {
	return "TenantStatusChanged"
}

// NewTenantStatusChangedEvent creates a new TenantStatusChangedEvent
func NewTenantStatusChangedEvent(t *Tenant, oldStatus, newStatus TenantStatus) *TenantStatusChangedEvent {
	return &TenantStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TenantStatusChanged", "Tenant", t.ID, t.ID),
		TenantCode:      t.Code,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
