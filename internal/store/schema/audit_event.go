package schema

import (
	"time"

	"gorm.io/datatypes"
)

// AuditEventType classifies observability records emitted by ledger hooks and
// registry provisioning
type AuditEventType string

const (
	// AuditEventTokensBurned is recorded when shares are burned from an account
	AuditEventTokensBurned AuditEventType = "tokens_burned"
	// AuditEventAccountClosed is recorded when a ledger account is closed
	AuditEventAccountClosed AuditEventType = "account_closed"
	// AuditEventFundingGranted is recorded when the registry funds a new vault account
	AuditEventFundingGranted AuditEventType = "funding_granted"
	// AuditEventTransferUnconfirmed is recorded when an optimistic transfer resolves failed
	AuditEventTransferUnconfirmed AuditEventType = "transfer_unconfirmed"
)

// AuditEvent represents the audit_events table - append-only observability
// records with no state effect
type AuditEvent struct {
	// ID is a UUID assigned at insert
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// EventType classifies the event
	EventType AuditEventType `gorm:"column:event_type;not null;type:text"`
	// VaultAddress is the vault the event concerns
	VaultAddress string `gorm:"column:vault_address;not null;type:text;index:idx_audit_events_vault"`
	// Account is the account the event concerns, if any
	Account *string `gorm:"column:account;type:text"`
	// Amount is the share quantity involved, if any
	Amount *string `gorm:"column:amount;type:numeric(78,0)"`
	// Meta contains additional context about the event as JSON
	Meta datatypes.JSON `gorm:"column:meta;type:jsonb"`
	// CreatedAt is the timestamp when the event was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the AuditEvent model
func (AuditEvent) TableName() string {
	return "audit_events"
}
