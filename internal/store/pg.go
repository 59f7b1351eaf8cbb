package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yoshitoke/nft141d/internal/domain"
	"github.com/yoshitoke/nft141d/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate applies the schema to the connected database
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.VaultRecord{},
		&schema.VaultState{},
		&schema.ShareBalance{},
		&schema.VaultInfoCache{},
		&schema.TransferIntent{},
		&schema.ProvisionIntent{},
		&schema.AuditEvent{},
		&schema.KeyValueStore{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// CountVaults returns the number of committed vault records
func (s *pgStore) CountVaults(ctx context.Context) (uint64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&schema.VaultRecord{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count vaults: %w", err)
	}
	return uint64(count), nil //nolint:gosec,G115
}

// GetVaultRecordByIndex retrieves a vault record by registry index
func (s *pgStore) GetVaultRecordByIndex(ctx context.Context, index uint64) (*schema.VaultRecord, error) {
	var record schema.VaultRecord
	err := s.db.WithContext(ctx).Where("vault_index = ?", index).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vault record: %w", err)
	}
	return &record, nil
}

// GetVaultRecordByOrigin retrieves a vault record by asset origin
func (s *pgStore) GetVaultRecordByOrigin(ctx context.Context, origin string) (*schema.VaultRecord, error) {
	var record schema.VaultRecord
	err := s.db.WithContext(ctx).Where("origin = ?", origin).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vault record: %w", err)
	}
	return &record, nil
}

// ListVaultRecords retrieves all vault records ordered by index
func (s *pgStore) ListVaultRecords(ctx context.Context) ([]schema.VaultRecord, error) {
	var records []schema.VaultRecord
	err := s.db.WithContext(ctx).Order("vault_index ASC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vault records: %w", err)
	}
	return records, nil
}

// AppendVaultRecord commits a new vault record with the next index
func (s *pgStore) AppendVaultRecord(ctx context.Context, origin, vaultAddress string) (*schema.VaultRecord, error) {
	var record schema.VaultRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing schema.VaultRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("origin = ?", origin).
			First(&existing).Error
		if err == nil {
			return domain.ErrOriginAlreadyRegistered
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing origin: %w", err)
		}

		var count int64
		if err := tx.Model(&schema.VaultRecord{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count vault records: %w", err)
		}

		record = schema.VaultRecord{
			VaultIndex:   uint64(count), //nolint:gosec,G115
			Origin:       origin,
			VaultAddress: vaultAddress,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create vault record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateProvisionIntent persists a vault provisioning saga row
func (s *pgStore) CreateProvisionIntent(ctx context.Context, intent *schema.ProvisionIntent) error {
	if err := s.db.WithContext(ctx).Create(intent).Error; err != nil {
		return fmt.Errorf("failed to create provision intent: %w", err)
	}
	return nil
}

// ResolveProvisionIntent marks a provisioning saga row resolved or failed
func (s *pgStore) ResolveProvisionIntent(ctx context.Context, requestID string, status schema.IntentStatus, reason *string) error {
	now := time.Now().UTC()
	err := s.db.WithContext(ctx).Model(&schema.ProvisionIntent{}).
		Where("request_id = ?", requestID).
		Updates(map[string]interface{}{
			"status":      status,
			"reason":      reason,
			"resolved_at": &now,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to resolve provision intent: %w", err)
	}
	return nil
}

// GetProvisionIntent retrieves a provisioning saga row by request ID
func (s *pgStore) GetProvisionIntent(ctx context.Context, requestID string) (*schema.ProvisionIntent, error) {
	var intent schema.ProvisionIntent
	err := s.db.WithContext(ctx).Where("request_id = ?", requestID).First(&intent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get provision intent: %w", err)
	}
	return &intent, nil
}

// ClearVaultInfoCache removes all cached vault info entries
func (s *pgStore) ClearVaultInfoCache(ctx context.Context) error {
	err := s.db.WithContext(ctx).Where("1 = 1").Delete(&schema.VaultInfoCache{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear vault info cache: %w", err)
	}
	return nil
}

// UpsertVaultInfo inserts or replaces a cached info entry keyed by vault index
func (s *pgStore) UpsertVaultInfo(ctx context.Context, entry *schema.VaultInfoCache) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vault_index"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "symbol", "reported_supply", "media", "refreshed_at"}),
	}).Create(entry).Error
	if err != nil {
		return fmt.Errorf("failed to upsert vault info: %w", err)
	}
	return nil
}

// ListVaultInfo retrieves all cached info entries ordered by vault index
func (s *pgStore) ListVaultInfo(ctx context.Context) ([]schema.VaultInfoCache, error) {
	var entries []schema.VaultInfoCache
	err := s.db.WithContext(ctx).Order("vault_index ASC").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vault info: %w", err)
	}
	return entries, nil
}

// CreateVaultState persists a vault's initial state
func (s *pgStore) CreateVaultState(ctx context.Context, state *schema.VaultState) error {
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vault_address"}},
		DoNothing: true,
	}).Create(state)
	if result.Error != nil {
		return fmt.Errorf("failed to create vault state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAlreadyInitialized
	}
	return nil
}

// GetVaultState retrieves a vault's state by address
func (s *pgStore) GetVaultState(ctx context.Context, vaultAddress string) (*schema.VaultState, error) {
	var state schema.VaultState
	err := s.db.WithContext(ctx).Where("vault_address = ?", vaultAddress).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vault state: %w", err)
	}
	return &state, nil
}

// UpdateVaultParams overwrites a vault's metadata and unit value
func (s *pgStore) UpdateVaultParams(ctx context.Context, vaultAddress, name, symbol, unitValue, media string) error {
	result := s.db.WithContext(ctx).Model(&schema.VaultState{}).
		Where("vault_address = ?", vaultAddress).
		Updates(map[string]interface{}{
			"name":       name,
			"symbol":     symbol,
			"unit_value": unitValue,
			"media":      media,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update vault params: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrVaultNotFound
	}
	return nil
}

// GetShareBalance retrieves one ledger balance row
func (s *pgStore) GetShareBalance(ctx context.Context, vaultAddress, account string) (*schema.ShareBalance, error) {
	var balance schema.ShareBalance
	err := s.db.WithContext(ctx).
		Where("vault_address = ? AND account = ?", vaultAddress, account).
		First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get share balance: %w", err)
	}
	return &balance, nil
}

// RegisterShareAccount creates a zero-balance ledger row if one does not exist
func (s *pgStore) RegisterShareAccount(ctx context.Context, vaultAddress, account string) error {
	balance := schema.ShareBalance{
		VaultAddress: vaultAddress,
		Account:      account,
		Balance:      "0",
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vault_address"}, {Name: "account"}},
		DoNothing: true,
	}).Create(&balance).Error
	if err != nil {
		return fmt.Errorf("failed to register share account: %w", err)
	}
	return nil
}

// CreditShares adds amount to an account's balance and to the vault's total supply
func (s *pgStore) CreditShares(ctx context.Context, vaultAddress, account, amount string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var balance schema.ShareBalance
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("vault_address = ? AND account = ?", vaultAddress, account).
			First(&balance).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				balance = schema.ShareBalance{
					VaultAddress: vaultAddress,
					Account:      account,
					Balance:      amount,
				}
				if err := tx.Create(&balance).Error; err != nil {
					return fmt.Errorf("failed to create share balance: %w", err)
				}
			} else {
				return fmt.Errorf("failed to lock share balance: %w", err)
			}
		} else {
			err = tx.Model(&balance).
				Update("balance", gorm.Expr("balance + ?", amount)).Error
			if err != nil {
				return fmt.Errorf("failed to credit share balance: %w", err)
			}
		}

		result := tx.Model(&schema.VaultState{}).
			Where("vault_address = ?", vaultAddress).
			Update("total_supply", gorm.Expr("total_supply + ?", amount))
		if result.Error != nil {
			return fmt.Errorf("failed to increase total supply: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrVaultNotFound
		}
		return nil
	})
}

// DebitShares subtracts amount from an account's balance and from the vault's total supply
func (s *pgStore) DebitShares(ctx context.Context, vaultAddress, account, amount string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Guard in SQL so the numeric comparison happens under the row lock
		result := tx.Model(&schema.ShareBalance{}).
			Where("vault_address = ? AND account = ? AND balance >= ?::numeric", vaultAddress, account, amount).
			Update("balance", gorm.Expr("balance - ?", amount))
		if result.Error != nil {
			return fmt.Errorf("failed to debit share balance: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrInsufficientShares
		}

		result = tx.Model(&schema.VaultState{}).
			Where("vault_address = ? AND total_supply >= ?::numeric", vaultAddress, amount).
			Update("total_supply", gorm.Expr("total_supply - ?", amount))
		if result.Error != nil {
			return fmt.Errorf("failed to decrease total supply: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrSupplyUnderflow
		}
		return nil
	})
}

// GetTotalSupply retrieves a vault's total share supply
func (s *pgStore) GetTotalSupply(ctx context.Context, vaultAddress string) (string, error) {
	state, err := s.GetVaultState(ctx, vaultAddress)
	if err != nil {
		return "", err
	}
	if state == nil {
		return "", domain.ErrVaultNotFound
	}
	return state.TotalSupply, nil
}

// CreateTransferIntent persists an asset-transfer saga row
func (s *pgStore) CreateTransferIntent(ctx context.Context, intent *schema.TransferIntent) error {
	if err := s.db.WithContext(ctx).Create(intent).Error; err != nil {
		return fmt.Errorf("failed to create transfer intent: %w", err)
	}
	return nil
}

// ResolveTransferIntent marks a transfer saga row resolved or failed
func (s *pgStore) ResolveTransferIntent(ctx context.Context, requestID string, status schema.IntentStatus, reason *string) error {
	now := time.Now().UTC()
	err := s.db.WithContext(ctx).Model(&schema.TransferIntent{}).
		Where("request_id = ?", requestID).
		Updates(map[string]interface{}{
			"status":      status,
			"reason":      reason,
			"resolved_at": &now,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to resolve transfer intent: %w", err)
	}
	return nil
}

// ListUnresolvedTransferIntents retrieves pending and failed transfer intents for a vault
func (s *pgStore) ListUnresolvedTransferIntents(ctx context.Context, vaultAddress string) ([]schema.TransferIntent, error) {
	var intents []schema.TransferIntent
	err := s.db.WithContext(ctx).
		Where("vault_address = ? AND status IN ?", vaultAddress,
			[]schema.IntentStatus{schema.IntentStatusPending, schema.IntentStatusFailed}).
		Order("created_at ASC").
		Find(&intents).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unresolved transfer intents: %w", err)
	}
	return intents, nil
}

// CreateAuditEvent appends an observability record
func (s *pgStore) CreateAuditEvent(ctx context.Context, event *schema.AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create audit event: %w", err)
	}
	return nil
}

// GetValue retrieves a scalar from the key-value table
func (s *pgStore) GetValue(ctx context.Context, key string) (string, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get value: %w", err)
	}
	return kv.Value, nil
}

// SetValue stores a scalar in the key-value table
func (s *pgStore) SetValue(ctx context.Context, key, value string) error {
	kv := schema.KeyValueStore{Key: key, Value: value}
	if err := s.db.WithContext(ctx).Save(&kv).Error; err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}
	return nil
}
