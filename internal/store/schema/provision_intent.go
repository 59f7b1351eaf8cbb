package schema

import "time"

// ProvisionIntent represents the provision_intents table - one saga row per
// vault creation. The registry commits the VaultRecord only after the vault's
// init call resolves; until then the intent row is the only trace of the
// in-flight provisioning, and a failed init leaves it marked failed with no
// record pointing at a non-functional vault.
type ProvisionIntent struct {
	// RequestID is the xcall request ULID of the init call
	RequestID string `gorm:"column:request_id;primaryKey;type:text"`
	// Origin is the asset-origin class the vault is being created for
	Origin string `gorm:"column:origin;not null;type:text;index:idx_provision_intents_origin"`
	// VaultAddress is the derived address being provisioned
	VaultAddress string `gorm:"column:vault_address;not null;type:text"`
	// Symbol is the requested share symbol
	Symbol string `gorm:"column:symbol;not null;type:text"`
	// Status is the intent lifecycle state
	Status IntentStatus `gorm:"column:status;not null;type:text"`
	// Reason carries the failure reason when status is failed
	Reason *string `gorm:"column:reason;type:text"`
	// CreatedAt is the timestamp when provisioning started
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// ResolvedAt is the timestamp when the init callback resolved
	ResolvedAt *time.Time `gorm:"column:resolved_at;type:timestamptz"`
}

// TableName specifies the table name for the ProvisionIntent model
func (ProvisionIntent) TableName() string {
	return "provision_intents"
}
