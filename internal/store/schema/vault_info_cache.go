package schema

import "time"

// VaultInfoCache represents the vault_info_cache table - the registry's local
// copy of per-vault public info. Entries are keyed by vault index so that the
// arbitrary arrival order of asynchronous info responses cannot corrupt reads;
// a refresh sweep clears the table in bulk before re-requesting.
type VaultInfoCache struct {
	// VaultIndex is the registry index of the vault this entry describes
	VaultIndex uint64 `gorm:"column:vault_index;primaryKey;autoIncrement:false"`
	// Name is the vault's reported display name
	Name string `gorm:"column:name;not null;type:text"`
	// Symbol is the vault's reported share symbol
	Symbol string `gorm:"column:symbol;not null;type:text"`
	// ReportedSupply is the vault-derived count of deposited assets, not authoritative
	ReportedSupply string `gorm:"column:reported_supply;not null;type:numeric(78,0)"`
	// Media is the vault's pass-through metadata URL
	Media string `gorm:"column:media;type:text"`
	// RefreshedAt is the timestamp when this entry's info response arrived
	RefreshedAt time.Time `gorm:"column:refreshed_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the VaultInfoCache model
func (VaultInfoCache) TableName() string {
	return "vault_info_cache"
}
