package store

import (
	"context"

	"github.com/yoshitoke/nft141d/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CountVaults returns the number of committed vault records
	CountVaults(ctx context.Context) (uint64, error)
	// GetVaultRecordByIndex retrieves a vault record by registry index (nil when missing)
	GetVaultRecordByIndex(ctx context.Context, index uint64) (*schema.VaultRecord, error)
	// GetVaultRecordByOrigin retrieves a vault record by asset origin (nil when missing)
	GetVaultRecordByOrigin(ctx context.Context, origin string) (*schema.VaultRecord, error)
	// ListVaultRecords retrieves all vault records ordered by index
	ListVaultRecords(ctx context.Context) ([]schema.VaultRecord, error)
	// AppendVaultRecord commits a new vault record with the next index.
	// Returns domain.ErrOriginAlreadyRegistered if the origin already has a record.
	AppendVaultRecord(ctx context.Context, origin, vaultAddress string) (*schema.VaultRecord, error)

	// CreateProvisionIntent persists a vault provisioning saga row
	CreateProvisionIntent(ctx context.Context, intent *schema.ProvisionIntent) error
	// ResolveProvisionIntent marks a provisioning saga row resolved or failed
	ResolveProvisionIntent(ctx context.Context, requestID string, status schema.IntentStatus, reason *string) error
	// GetProvisionIntent retrieves a provisioning saga row by request ID (nil when missing)
	GetProvisionIntent(ctx context.Context, requestID string) (*schema.ProvisionIntent, error)

	// ClearVaultInfoCache removes all cached vault info entries
	ClearVaultInfoCache(ctx context.Context) error
	// UpsertVaultInfo inserts or replaces a cached info entry keyed by vault index
	UpsertVaultInfo(ctx context.Context, entry *schema.VaultInfoCache) error
	// ListVaultInfo retrieves all cached info entries ordered by vault index
	ListVaultInfo(ctx context.Context) ([]schema.VaultInfoCache, error)

	// CreateVaultState persists a vault's initial state.
	// Returns domain.ErrAlreadyInitialized if the vault already has state.
	CreateVaultState(ctx context.Context, state *schema.VaultState) error
	// GetVaultState retrieves a vault's state by address (nil when missing)
	GetVaultState(ctx context.Context, vaultAddress string) (*schema.VaultState, error)
	// UpdateVaultParams overwrites a vault's metadata and unit value
	UpdateVaultParams(ctx context.Context, vaultAddress, name, symbol, unitValue, media string) error

	// GetShareBalance retrieves one ledger balance row (nil when the account is unregistered)
	GetShareBalance(ctx context.Context, vaultAddress, account string) (*schema.ShareBalance, error)
	// RegisterShareAccount creates a zero-balance ledger row if one does not exist
	RegisterShareAccount(ctx context.Context, vaultAddress, account string) error
	// CreditShares adds amount to an account's balance and to the vault's total
	// supply in a single transaction
	CreditShares(ctx context.Context, vaultAddress, account, amount string) error
	// DebitShares subtracts amount from an account's balance and from the
	// vault's total supply in a single transaction.
	// Returns domain.ErrInsufficientShares if the balance is smaller than amount.
	DebitShares(ctx context.Context, vaultAddress, account, amount string) error
	// GetTotalSupply retrieves a vault's total share supply
	GetTotalSupply(ctx context.Context, vaultAddress string) (string, error)

	// CreateTransferIntent persists an asset-transfer saga row
	CreateTransferIntent(ctx context.Context, intent *schema.TransferIntent) error
	// ResolveTransferIntent marks a transfer saga row resolved or failed
	ResolveTransferIntent(ctx context.Context, requestID string, status schema.IntentStatus, reason *string) error
	// ListUnresolvedTransferIntents retrieves pending and failed transfer intents for a vault
	ListUnresolvedTransferIntents(ctx context.Context, vaultAddress string) ([]schema.TransferIntent, error)

	// CreateAuditEvent appends an observability record
	CreateAuditEvent(ctx context.Context, event *schema.AuditEvent) error
	// GetValue retrieves a scalar from the key-value table ("" when missing)
	GetValue(ctx context.Context, key string) (string, error)
	// SetValue stores a scalar in the key-value table
	SetValue(ctx context.Context, key, value string) error
}
