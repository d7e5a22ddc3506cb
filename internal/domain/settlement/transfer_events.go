package settlement

import (
	"time"

	"github.com/hotelsaas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferRequestedEvent is raised when a partner requests a commission transfer
type TransferRequestedEvent struct {
	shared.BaseDomainEvent
	TransferID     uuid.UUID       `json:"transfer_id"`
	TransferNumber string          `json:"transfer_number"`
	GrossAmount    decimal.Decimal `json:"gross_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	RequestedByID  uuid.UUID       `json:"requested_by_id"`
}

// EventType returns the event type name
func (e *TransferRequestedEvent) EventType() string {
	return "TransferRequested"
}

// NewTransferRequestedEvent creates a new TransferRequestedEvent
func NewTransferRequestedEvent(t *Transfer) *TransferRequestedEvent {
	return &TransferRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TransferRequested", "Transfer", t.ID, t.TenantID),
		TransferID:      t.ID,
		TransferNumber:  t.TransferNumber,
		GrossAmount:     t.GrossAmount,
		NetAmount:       t.NetAmount,
		RequestedByID:   t.RequestedByID,
	}
}

// TransferProcessingEvent is raised when an admin approves a transfer and the
// gateway call is about to start
type TransferProcessingEvent struct {
	shared.BaseDomainEvent
	TransferID     uuid.UUID       `json:"transfer_id"`
	TransferNumber string          `json:"transfer_number"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	ApprovedBy     uuid.UUID       `json:"approved_by"`
	ApprovedAt     time.Time       `json:"approved_at"`
}

// EventType returns the event type name
func (e *TransferProcessingEvent) EventType() string {
	return "TransferProcessing"
}

// NewTransferProcessingEvent creates a new TransferProcessingEvent
func NewTransferProcessingEvent(t *Transfer) *TransferProcessingEvent {
	var approvedBy uuid.UUID
	approvedAt := time.Now()
	if t.ApprovedBy != nil {
		approvedBy = *t.ApprovedBy
	}
	if t.ApprovedAt != nil {
		approvedAt = *t.ApprovedAt
	}
	return &TransferProcessingEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TransferProcessing", "Transfer", t.ID, t.TenantID),
		TransferID:      t.ID,
		TransferNumber:  t.TransferNumber,
		NetAmount:       t.NetAmount,
		ApprovedBy:      approvedBy,
		ApprovedAt:      approvedAt,
	}
}

// TransferCompletedEvent is raised when the gateway settles a transfer
type TransferCompletedEvent struct {
	shared.BaseDomainEvent
	TransferID     uuid.UUID       `json:"transfer_id"`
	TransferNumber string          `json:"transfer_number"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	ReferenceID    string          `json:"reference_id"`
	TransferDate   time.Time       `json:"transfer_date"`
}

// EventType returns the event type name
func (e *TransferCompletedEvent) EventType() string {
	return "TransferCompleted"
}

// NewTransferCompletedEvent creates a new TransferCompletedEvent
func NewTransferCompletedEvent(t *Transfer) *TransferCompletedEvent {
	transferDate := time.Now()
	if t.TransferDate != nil {
		transferDate = *t.TransferDate
	}
	return &TransferCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TransferCompleted", "Transfer", t.ID, t.TenantID),
		TransferID:      t.ID,
		TransferNumber:  t.TransferNumber,
		NetAmount:       t.NetAmount,
		ReferenceID:     t.ReferenceID,
		TransferDate:    transferDate,
	}
}

// TransferFailedEvent is raised when the gateway rejects a transfer or times out
type TransferFailedEvent struct {
	shared.BaseDomainEvent
	TransferID     uuid.UUID `json:"transfer_id"`
	TransferNumber string    `json:"transfer_number"`
	ErrorMessage   string    `json:"error_message"`
}

// EventType returns the event type name
func (e *TransferFailedEvent) EventType() string {
	return "TransferFailed"
}

// NewTransferFailedEvent creates a new TransferFailedEvent
func NewTransferFailedEvent(t *Transfer) *TransferFailedEvent {
	return &TransferFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TransferFailed", "Transfer", t.ID, t.TenantID),
		TransferID:      t.ID,
		TransferNumber:  t.TransferNumber,
		ErrorMessage:    t.ErrorMessage,
	}
}

// TransferCancelledEvent is raised when a pending transfer is rejected or withdrawn
type TransferCancelledEvent struct {
	shared.BaseDomainEvent
	TransferID     uuid.UUID `json:"transfer_id"`
	TransferNumber string    `json:"transfer_number"`
	CancelledBy    uuid.UUID `json:"cancelled_by"`
	Reason         string    `json:"reason"`
}

// EventType returns the event type name
func (e *TransferCancelledEvent) EventType() string {
	return "TransferCancelled"
}

// NewTransferCancelledEvent creates a new TransferCancelledEvent
func NewTransferCancelledEvent(t *Transfer) *TransferCancelledEvent {
	var cancelledBy uuid.UUID
	if t.CancelledBy != nil {
		cancelledBy = *t.CancelledBy
	}
	return &TransferCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TransferCancelled", "Transfer", t.ID, t.TenantID),
		TransferID:      t.ID,
		TransferNumber:  t.TransferNumber,
		CancelledBy:     cancelledBy,
		Reason:          t.ErrorMessage,
	}
}
