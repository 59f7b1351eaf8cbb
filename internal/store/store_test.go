package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoshitoke/nft141d/internal/domain"
	"github.com/yoshitoke/nft141d/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// seedVaultState creates a bare initialized vault for ledger tests
func seedVaultState(t *testing.T, s Store, vaultAddress string) {
	t.Helper()
	err := s.CreateVaultState(context.Background(), &schema.VaultState{
		VaultAddress:    vaultAddress,
		Origin:          "nft." + vaultAddress,
		RegistryAddress: "registry",
		UnitValue:       domain.DefaultUnitValue().String(),
		TotalSupply:     "0",
		Name:            "Test Vault",
		Symbol:          "TST",
	})
	require.NoError(t, err)
}

func buildTransferIntent(requestID, vaultAddress string, direction schema.TransferDirection) *schema.TransferIntent {
	return &schema.TransferIntent{
		RequestID:    requestID,
		VaultAddress: vaultAddress,
		Direction:    direction,
		AssetID:      "asset-1",
		Counterparty: "alice",
		Status:       schema.IntentStatusPending,
	}
}

// =============================================================================
// Test: Vault records
// =============================================================================

func testVaultRecords(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("append assigns increasing indexes from zero", func(t *testing.T) {
		first, err := s.AppendVaultRecord(ctx, "nft.one", "one.registry")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), first.VaultIndex)

		second, err := s.AppendVaultRecord(ctx, "nft.two", "two.registry")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), second.VaultIndex)

		count, err := s.CountVaults(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), count)
	})

	t.Run("duplicate origin is rejected", func(t *testing.T) {
		_, err := s.AppendVaultRecord(ctx, "nft.dup", "dup.registry")
		require.NoError(t, err)

		_, err = s.AppendVaultRecord(ctx, "nft.dup", "dup2.registry")
		assert.ErrorIs(t, err, domain.ErrOriginAlreadyRegistered)
	})

	t.Run("lookup by index and origin", func(t *testing.T) {
		created, err := s.AppendVaultRecord(ctx, "nft.lookup", "lookup.registry")
		require.NoError(t, err)

		byIndex, err := s.GetVaultRecordByIndex(ctx, created.VaultIndex)
		require.NoError(t, err)
		require.NotNil(t, byIndex)
		assert.Equal(t, "nft.lookup", byIndex.Origin)

		byOrigin, err := s.GetVaultRecordByOrigin(ctx, "nft.lookup")
		require.NoError(t, err)
		require.NotNil(t, byOrigin)
		assert.Equal(t, "lookup.registry", byOrigin.VaultAddress)
	})

	t.Run("missing record returns nil without error", func(t *testing.T) {
		record, err := s.GetVaultRecordByIndex(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, record)

		record, err = s.GetVaultRecordByOrigin(ctx, "nft.missing")
		require.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("list returns records ordered by index", func(t *testing.T) {
		records, err := s.ListVaultRecords(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, records)
		for i := 1; i < len(records); i++ {
			assert.Greater(t, records[i].VaultIndex, records[i-1].VaultIndex)
		}
	})
}

// =============================================================================
// Test: Provision intents
// =============================================================================

func testProvisionIntents(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("create and resolve", func(t *testing.T) {
		intent := &schema.ProvisionIntent{
			RequestID:    "01PROVISION",
			Origin:       "nft.assets",
			VaultAddress: "art.registry",
			Symbol:       "ART",
			Status:       schema.IntentStatusPending,
		}
		require.NoError(t, s.CreateProvisionIntent(ctx, intent))

		got, err := s.GetProvisionIntent(ctx, "01PROVISION")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, schema.IntentStatusPending, got.Status)

		reason := "init call failed"
		require.NoError(t, s.ResolveProvisionIntent(ctx, "01PROVISION", schema.IntentStatusFailed, &reason))

		got, err = s.GetProvisionIntent(ctx, "01PROVISION")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, schema.IntentStatusFailed, got.Status)
		require.NotNil(t, got.Reason)
		assert.Equal(t, reason, *got.Reason)
		assert.NotNil(t, got.ResolvedAt)
	})

	t.Run("missing intent returns nil without error", func(t *testing.T) {
		got, err := s.GetProvisionIntent(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

// =============================================================================
// Test: Vault info cache
// =============================================================================

func testVaultInfoCache(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("upsert replaces the entry for an index", func(t *testing.T) {
		require.NoError(t, s.UpsertVaultInfo(ctx, &schema.VaultInfoCache{
			VaultIndex:     0,
			Name:           "First",
			Symbol:         "ONE",
			ReportedSupply: "3",
		}))
		require.NoError(t, s.UpsertVaultInfo(ctx, &schema.VaultInfoCache{
			VaultIndex:     0,
			Name:           "First Updated",
			Symbol:         "ONE",
			ReportedSupply: "4",
		}))
		require.NoError(t, s.UpsertVaultInfo(ctx, &schema.VaultInfoCache{
			VaultIndex:     1,
			Name:           "Second",
			Symbol:         "TWO",
			ReportedSupply: "0",
		}))

		entries, err := s.ListVaultInfo(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, uint64(0), entries[0].VaultIndex)
		assert.Equal(t, "First Updated", entries[0].Name)
		assert.Equal(t, "4", entries[0].ReportedSupply)
		assert.Equal(t, "Second", entries[1].Name)
	})

	t.Run("clear removes all entries", func(t *testing.T) {
		require.NoError(t, s.ClearVaultInfoCache(ctx))

		entries, err := s.ListVaultInfo(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

// =============================================================================
// Test: Vault state
// =============================================================================

func testVaultState(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("create and read back", func(t *testing.T) {
		seedVaultState(t, s, "art.registry")

		state, err := s.GetVaultState(ctx, "art.registry")
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, "registry", state.RegistryAddress)
		assert.Equal(t, domain.DefaultUnitValue().String(), state.UnitValue)
		assert.Equal(t, "0", state.TotalSupply)
	})

	t.Run("second create is rejected", func(t *testing.T) {
		err := s.CreateVaultState(ctx, &schema.VaultState{
			VaultAddress:    "art.registry",
			Origin:          "nft.other",
			RegistryAddress: "registry",
			UnitValue:       "1",
			TotalSupply:     "0",
			Name:            "Other",
			Symbol:          "OTH",
		})
		assert.ErrorIs(t, err, domain.ErrAlreadyInitialized)
	})

	t.Run("missing state returns nil without error", func(t *testing.T) {
		state, err := s.GetVaultState(ctx, "ghost.registry")
		require.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("update params overwrites metadata", func(t *testing.T) {
		err := s.UpdateVaultParams(ctx, "art.registry", "New Name", "NEW", "42", "ipfs://media")
		require.NoError(t, err)

		state, err := s.GetVaultState(ctx, "art.registry")
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, "New Name", state.Name)
		assert.Equal(t, "NEW", state.Symbol)
		assert.Equal(t, "42", state.UnitValue)
		assert.Equal(t, "ipfs://media", state.Media)
	})
}

// =============================================================================
// Test: Share ledger
// =============================================================================

func testShareLedger(t *testing.T, s Store) {
	ctx := context.Background()
	seedVaultState(t, s, "shares.registry")

	t.Run("register is idempotent", func(t *testing.T) {
		require.NoError(t, s.RegisterShareAccount(ctx, "shares.registry", "alice"))
		require.NoError(t, s.RegisterShareAccount(ctx, "shares.registry", "alice"))

		balance, err := s.GetShareBalance(ctx, "shares.registry", "alice")
		require.NoError(t, err)
		require.NotNil(t, balance)
		assert.Equal(t, "0", balance.Balance)
	})

	t.Run("unregistered account reads as nil", func(t *testing.T) {
		balance, err := s.GetShareBalance(ctx, "shares.registry", "nobody")
		require.NoError(t, err)
		assert.Nil(t, balance)
	})

	t.Run("credit grows balance and supply together", func(t *testing.T) {
		require.NoError(t, s.CreditShares(ctx, "shares.registry", "alice", "100"))
		require.NoError(t, s.CreditShares(ctx, "shares.registry", "alice", "50"))

		balance, err := s.GetShareBalance(ctx, "shares.registry", "alice")
		require.NoError(t, err)
		require.NotNil(t, balance)
		assert.Equal(t, "150", balance.Balance)

		supply, err := s.GetTotalSupply(ctx, "shares.registry")
		require.NoError(t, err)
		assert.Equal(t, "150", supply)
	})

	t.Run("debit shrinks balance and supply together", func(t *testing.T) {
		require.NoError(t, s.DebitShares(ctx, "shares.registry", "alice", "30"))

		balance, err := s.GetShareBalance(ctx, "shares.registry", "alice")
		require.NoError(t, err)
		require.NotNil(t, balance)
		assert.Equal(t, "120", balance.Balance)

		supply, err := s.GetTotalSupply(ctx, "shares.registry")
		require.NoError(t, err)
		assert.Equal(t, "120", supply)
	})

	t.Run("debit beyond balance is rejected without mutation", func(t *testing.T) {
		err := s.DebitShares(ctx, "shares.registry", "alice", "10000")
		assert.ErrorIs(t, err, domain.ErrInsufficientShares)

		balance, err := s.GetShareBalance(ctx, "shares.registry", "alice")
		require.NoError(t, err)
		require.NotNil(t, balance)
		assert.Equal(t, "120", balance.Balance)

		supply, err := s.GetTotalSupply(ctx, "shares.registry")
		require.NoError(t, err)
		assert.Equal(t, "120", supply)
	})

	t.Run("debit from unregistered account is rejected", func(t *testing.T) {
		err := s.DebitShares(ctx, "shares.registry", "nobody", "1")
		assert.ErrorIs(t, err, domain.ErrInsufficientShares)
	})
}

// =============================================================================
// Test: Transfer intents
// =============================================================================

func testTransferIntents(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("unresolved listing excludes resolved intents", func(t *testing.T) {
		require.NoError(t, s.CreateTransferIntent(ctx, buildTransferIntent("01IN", "swap.registry", schema.TransferDirectionIn)))
		require.NoError(t, s.CreateTransferIntent(ctx, buildTransferIntent("01OUT", "swap.registry", schema.TransferDirectionOut)))
		require.NoError(t, s.CreateTransferIntent(ctx, buildTransferIntent("01OTHER", "other.registry", schema.TransferDirectionIn)))

		require.NoError(t, s.ResolveTransferIntent(ctx, "01IN", schema.IntentStatusResolved, nil))
		reason := "receiver unknown"
		require.NoError(t, s.ResolveTransferIntent(ctx, "01OUT", schema.IntentStatusFailed, &reason))

		unresolved, err := s.ListUnresolvedTransferIntents(ctx, "swap.registry")
		require.NoError(t, err)
		require.Len(t, unresolved, 1)
		assert.Equal(t, "01OUT", unresolved[0].RequestID)
		assert.Equal(t, schema.IntentStatusFailed, unresolved[0].Status)
		require.NotNil(t, unresolved[0].Reason)
		assert.Equal(t, reason, *unresolved[0].Reason)
	})

	t.Run("pending intents stay listed", func(t *testing.T) {
		require.NoError(t, s.CreateTransferIntent(ctx, buildTransferIntent("01PENDING", "pending.registry", schema.TransferDirectionOut)))

		unresolved, err := s.ListUnresolvedTransferIntents(ctx, "pending.registry")
		require.NoError(t, err)
		require.Len(t, unresolved, 1)
		assert.Equal(t, schema.IntentStatusPending, unresolved[0].Status)
	})
}

// =============================================================================
// Test: Audit events and key-value scalars
// =============================================================================

func testAuditEvents(t *testing.T, s Store) {
	ctx := context.Background()

	account := "alice"
	amount := "100"
	err := s.CreateAuditEvent(ctx, &schema.AuditEvent{
		EventType:    schema.AuditEventTokensBurned,
		VaultAddress: "art.registry",
		Account:      &account,
		Amount:       &amount,
	})
	require.NoError(t, err)
}

func testKeyValue(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("missing key reads as empty", func(t *testing.T) {
		value, err := s.GetValue(ctx, "registry_fee_rate")
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.SetValue(ctx, "registry_fee_rate", "250"))

		value, err := s.GetValue(ctx, "registry_fee_rate")
		require.NoError(t, err)
		assert.Equal(t, "250", value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, s.SetValue(ctx, "registry_fee_rate", "300"))

		value, err := s.GetValue(ctx, "registry_fee_rate")
		require.NoError(t, err)
		assert.Equal(t, "300", value)
	})
}

// RunStoreTests runs the shared store suite against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"VaultRecords", testVaultRecords},
		{"ProvisionIntents", testProvisionIntents},
		{"VaultInfoCache", testVaultInfoCache},
		{"VaultState", testVaultState},
		{"ShareLedger", testShareLedger},
		{"TransferIntents", testTransferIntents},
		{"AuditEvents", testAuditEvents},
		{"KeyValue", testKeyValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
