package schema

import "time"

// ShareBalance represents the share_balances table - one row per registered
// account per vault ledger. The invariant sum(balance) == vault_states.total_supply
// holds at every transaction boundary; credit/debit always update both in one
// database transaction.
type ShareBalance struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// VaultAddress is the vault whose ledger this balance belongs to
	VaultAddress string `gorm:"column:vault_address;not null;type:text;uniqueIndex:idx_share_balances_vault_account,priority:1"`
	// Account is the holder's account address
	Account string `gorm:"column:account;not null;type:text;uniqueIndex:idx_share_balances_vault_account,priority:2"`
	// Balance is the held share units (stored as string to support 128-bit quantities)
	Balance string `gorm:"column:balance;not null;type:numeric(78,0)"`
	// CreatedAt is the timestamp when the account was registered
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the balance was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ShareBalance model
func (ShareBalance) TableName() string {
	return "share_balances"
}
