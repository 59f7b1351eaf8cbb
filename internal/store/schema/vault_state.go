package schema

import "time"

// VaultState represents the vault_states table - the persisted state of one
// vault component. A row exists only after the vault's init call committed;
// existence of the row is the initialization marker.
type VaultState struct {
	// VaultAddress is the vault's own account address
	VaultAddress string `gorm:"column:vault_address;primaryKey;type:text"`
	// Origin is the asset-origin class locked to this vault, immutable after init
	Origin string `gorm:"column:origin;not null;type:text"`
	// RegistryAddress is the principal that constructed the vault; the only
	// principal authorized to update parameters
	RegistryAddress string `gorm:"column:registry_address;not null;type:text"`
	// UnitValue is the number of share units one deposited asset is worth
	// (stored as string to support 128-bit quantities)
	UnitValue string `gorm:"column:unit_value;not null;type:numeric(78,0)"`
	// TotalSupply is the share ledger's total supply in share units
	TotalSupply string `gorm:"column:total_supply;not null;type:numeric(78,0)"`
	// Name is the vault's display name
	Name string `gorm:"column:name;not null;type:text"`
	// Symbol is the vault's share symbol
	Symbol string `gorm:"column:symbol;not null;type:text"`
	// Media is a pass-through metadata URL, stored verbatim and never validated
	Media string `gorm:"column:media;type:text"`
	// CreatedAt is the timestamp when the vault was initialized
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the vault state was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the VaultState model
func (VaultState) TableName() string {
	return "vault_states"
}
