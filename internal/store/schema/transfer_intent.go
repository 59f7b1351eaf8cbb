package schema

import "time"

// TransferDirection indicates which way an asset transfer request moves custody
type TransferDirection string

const (
	// TransferDirectionIn moves an asset from a holder into vault custody
	TransferDirectionIn TransferDirection = "in"
	// TransferDirectionOut moves an asset from vault custody to a holder
	TransferDirectionOut TransferDirection = "out"
)

// IntentStatus is the lifecycle state of a saga intent row
type IntentStatus string

const (
	// IntentStatusPending means the remote step was issued and has not resolved
	IntentStatusPending IntentStatus = "pending"
	// IntentStatusResolved means the remote step resolved successfully
	IntentStatusResolved IntentStatus = "resolved"
	// IntentStatusFailed means the remote step resolved with a failure
	IntentStatusFailed IntentStatus = "failed"
)

// TransferIntent represents the transfer_intents table - one saga row per
// outbound asset-transfer request. The ledger mutates optimistically before the
// remote transfer confirms; intents are the reconciliation record for the
// funds-at-risk window, never a rollback mechanism.
type TransferIntent struct {
	// RequestID is the xcall request ULID
	RequestID string `gorm:"column:request_id;primaryKey;type:text"`
	// VaultAddress is the vault that issued the transfer
	VaultAddress string `gorm:"column:vault_address;not null;type:text;index:idx_transfer_intents_vault"`
	// Direction records which way custody moves
	Direction TransferDirection `gorm:"column:direction;not null;type:text"`
	// AssetID is the unique asset being moved
	AssetID string `gorm:"column:asset_id;not null;type:text"`
	// Counterparty is the non-vault side of the transfer
	Counterparty string `gorm:"column:counterparty;not null;type:text"`
	// Status is the intent lifecycle state
	Status IntentStatus `gorm:"column:status;not null;type:text"`
	// Reason carries the failure reason when status is failed
	Reason *string `gorm:"column:reason;type:text"`
	// CreatedAt is the timestamp when the request was issued
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// ResolvedAt is the timestamp when the callback resolved the intent
	ResolvedAt *time.Time `gorm:"column:resolved_at;type:timestamptz"`
}

// TableName specifies the table name for the TransferIntent model
func (TransferIntent) TableName() string {
	return "transfer_intents"
}
