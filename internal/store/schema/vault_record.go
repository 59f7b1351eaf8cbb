package schema

import "time"

// VaultRecord represents the vault_records table - the registry's append-only
// index of provisioned vaults. Both lookup views (index -> origin and
// origin -> vault address) are served from this one table; the unique
// constraints keep them consistent by construction.
type VaultRecord struct {
	// VaultIndex is the registry-assigned index, monotonically increasing from 0
	VaultIndex uint64 `gorm:"column:vault_index;primaryKey;autoIncrement:false"`
	// Origin is the asset-origin class this vault accepts, unique per registry
	Origin string `gorm:"column:origin;not null;type:text;uniqueIndex:idx_vault_records_origin"`
	// VaultAddress is the derived address of the provisioned vault
	VaultAddress string `gorm:"column:vault_address;not null;type:text;uniqueIndex:idx_vault_records_address"`
	// CreatedAt is the timestamp when the record was committed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the VaultRecord model
func (VaultRecord) TableName() string {
	return "vault_records"
}
