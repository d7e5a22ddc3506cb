package settlement

import (
	"fmt"
	"time"

	"github.com/hotelsaas/backend/internal/domain/shared"
	"github.com/hotelsaas/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferStatus represents the lifecycle status of a commission transfer
type TransferStatus string

const (
	// TransferStatusPending indicates the transfer was requested and awaits an admin decision
	TransferStatusPending TransferStatus = "PENDING"
	// TransferStatusProcessing indicates the transfer is being settled at the gateway
	TransferStatusProcessing TransferStatus = "PROCESSING"
	// TransferStatusCompleted indicates the gateway settled the transfer
	TransferStatusCompleted TransferStatus = "COMPLETED"
	// TransferStatusFailed indicates the gateway rejected the transfer or timed out
	TransferStatusFailed TransferStatus = "FAILED"
	// TransferStatusCancelled indicates the request was withdrawn or rejected before processing
	TransferStatusCancelled TransferStatus = "CANCELLED"
)

// IsValid returns true if the status is a known transfer status
func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferStatusPending, TransferStatusProcessing, TransferStatusCompleted,
		TransferStatusFailed, TransferStatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation of TransferStatus
func (s TransferStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further transitions are permitted
func (s TransferStatus) IsTerminal() bool {
	switch s {
	case TransferStatusCompleted, TransferStatusFailed, TransferStatusCancelled:
		return true
	default:
		return false
	}
}

// CanApprove returns true if the transfer may move to PROCESSING
func (s TransferStatus) CanApprove() bool {
	return s == TransferStatusPending
}

// CanCancel returns true if the transfer may move to CANCELLED
func (s TransferStatus) CanCancel() bool {
	return s == TransferStatusPending
}

// canTransition encodes the directed status graph:
// PENDING -> {PROCESSING, CANCELLED}, PROCESSING -> {COMPLETED, FAILED}
func (s TransferStatus) canTransition(to TransferStatus) bool {
	switch s {
	case TransferStatusPending:
		return to == TransferStatusProcessing || to == TransferStatusCancelled
	case TransferStatusProcessing:
		return to == TransferStatusCompleted || to == TransferStatusFailed
	default:
		return false
	}
}

// Transfer represents a commission transfer aggregate root.
// It records a partner hotel's request to withdraw accumulated commission
// balance and the administrative settlement of that request.
type Transfer struct {
	shared.TenantAggregateRoot
	TransferNumber   string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_transfer_tenant_number,priority:2"`
	GrossAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Requested amount
	CommissionAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Platform fee withheld
	NetAmount        decimal.Decimal `gorm:"type:decimal(18,4);not null"` // GrossAmount - CommissionAmount
	Status           TransferStatus  `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	BankIBAN         string          `gorm:"type:varchar(34)"`  // Destination account, optional until processing
	ReferenceID      string          `gorm:"type:varchar(100)"` // Gateway settlement reference
	Notes            string          `gorm:"type:text"`
	ErrorMessage     string          `gorm:"type:varchar(500)"` // Populated for FAILED and CANCELLED only
	RequestedByID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransferDate     *time.Time      // When the gateway settled, nil until processed
	ApprovedAt       *time.Time
	ApprovedBy       *uuid.UUID `gorm:"type:uuid"`
	CancelledAt      *time.Time
	CancelledBy      *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Transfer) TableName() string {
	return "commission_transfers"
}

// NewTransfer creates a new commission transfer in PENDING status.
// The commission amount is the platform fee withheld from the payout;
// net amount is derived and must never be negative.
func NewTransfer(
	tenantID uuid.UUID,
	transferNumber string,
	gross valueobject.Money,
	commission valueobject.Money,
	requestedBy uuid.UUID,
	bankIBAN string,
	notes string,
) (*Transfer, error) {
	if transferNumber == "" {
		return nil, shared.NewDomainError("INVALID_TRANSFER_NUMBER", "Transfer number cannot be empty")
	}
	if len(transferNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_TRANSFER_NUMBER", "Transfer number cannot exceed 50 characters")
	}
	if requestedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Requesting user ID is required")
	}
	if gross.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Gross amount must be positive")
	}
	if commission.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Commission amount cannot be negative")
	}
	net := gross.Amount().Sub(commission.Amount())
	if net.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Commission amount cannot exceed gross amount")
	}
	if len(bankIBAN) > 34 {
		return nil, shared.NewDomainError("INVALID_IBAN", "IBAN cannot exceed 34 characters")
	}

	tr := &Transfer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TransferNumber:      transferNumber,
		GrossAmount:         gross.Amount(),
		CommissionAmount:    commission.Amount(),
		NetAmount:           net,
		Status:              TransferStatusPending,
		BankIBAN:            bankIBAN,
		Notes:               notes,
		RequestedByID:       requestedBy,
	}

	tr.AddDomainEvent(NewTransferRequestedEvent(tr))

	return tr, nil
}

// BeginProcessing transitions PENDING -> PROCESSING ahead of the gateway call.
// The transition is persisted before the gateway is invoked so the audit trail
// always records the processing step.
func (t *Transfer) BeginProcessing(approvedBy uuid.UUID) error {
	if !t.Status.canTransition(TransferStatusProcessing) {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			fmt.Sprintf("Cannot process transfer in %s status", t.Status))
	}
	if approvedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Approving user ID is required")
	}

	now := time.Now()
	t.Status = TransferStatusProcessing
	t.ApprovedAt = &now
	t.ApprovedBy = &approvedBy
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTransferProcessingEvent(t))

	return nil
}

// Complete transitions PROCESSING -> COMPLETED with the gateway reference
func (t *Transfer) Complete(referenceID string) error {
	if !t.Status.canTransition(TransferStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			fmt.Sprintf("Cannot complete transfer in %s status", t.Status))
	}
	if referenceID == "" {
		return shared.NewDomainError("INVALID_REFERENCE", "Gateway reference ID is required")
	}

	now := time.Now()
	t.Status = TransferStatusCompleted
	t.ReferenceID = referenceID
	t.TransferDate = &now
	t.ErrorMessage = ""
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTransferCompletedEvent(t))

	return nil
}

// Fail transitions PROCESSING -> FAILED recording the gateway error
func (t *Transfer) Fail(errorMessage string) error {
	if !t.Status.canTransition(TransferStatusFailed) {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			fmt.Sprintf("Cannot fail transfer in %s status", t.Status))
	}
	if errorMessage == "" {
		errorMessage = "Gateway rejected the transfer"
	}

	now := time.Now()
	t.Status = TransferStatusFailed
	t.ErrorMessage = errorMessage
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTransferFailedEvent(t))

	return nil
}

// Cancel transitions PENDING -> CANCELLED. Used both for admin rejection and
// for withdrawal by the original requester; the reason lands in ErrorMessage.
func (t *Transfer) Cancel(cancelledBy uuid.UUID, reason string) error {
	if !t.Status.canTransition(TransferStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			fmt.Sprintf("Cannot cancel transfer in %s status", t.Status))
	}
	if cancelledBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Cancelling user ID is required")
	}

	now := time.Now()
	t.Status = TransferStatusCancelled
	t.CancelledAt = &now
	t.CancelledBy = &cancelledBy
	t.ErrorMessage = reason
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTransferCancelledEvent(t))

	return nil
}

// SetBankIBAN sets the destination account while the transfer is still mutable
func (t *Transfer) SetBankIBAN(iban string) error {
	if t.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE_TRANSITION", "Cannot modify transfer in terminal state")
	}
	if len(iban) > 34 {
		return shared.NewDomainError("INVALID_IBAN", "IBAN cannot exceed 34 characters")
	}

	t.BankIBAN = iban
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Helper methods

// GetGrossAmountMoney returns the gross amount as Money
func (t *Transfer) GetGrossAmountMoney() valueobject.Money {
	return valueobject.NewMoneyTRY(t.GrossAmount)
}

// GetCommissionAmountMoney returns the commission amount as Money
func (t *Transfer) GetCommissionAmountMoney() valueobject.Money {
	return valueobject.NewMoneyTRY(t.CommissionAmount)
}

// GetNetAmountMoney returns the net payout amount as Money
func (t *Transfer) GetNetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyTRY(t.NetAmount)
}

// IsPending returns true if the transfer awaits an admin decision
func (t *Transfer) IsPending() bool {
	return t.Status == TransferStatusPending
}

// IsProcessing returns true if the transfer is at the gateway
func (t *Transfer) IsProcessing() bool {
	return t.Status == TransferStatusProcessing
}

// IsCompleted returns true if the gateway settled the transfer
func (t *Transfer) IsCompleted() bool {
	return t.Status == TransferStatusCompleted
}

// IsTerminal returns true if the transfer reached a terminal status
func (t *Transfer) IsTerminal() bool {
	return t.Status.IsTerminal()
}

// RequestedBy returns true if the given user created the request
func (t *Transfer) RequestedBy(userID uuid.UUID) bool {
	return t.RequestedByID == userID
}
