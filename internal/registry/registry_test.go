package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoshitoke/nft141d/internal/adapter"
	"github.com/yoshitoke/nft141d/internal/assetregistry"
	"github.com/yoshitoke/nft141d/internal/domain"
	"github.com/yoshitoke/nft141d/internal/ledger"
	"github.com/yoshitoke/nft141d/internal/logger"
	"github.com/yoshitoke/nft141d/internal/mocks"
	"github.com/yoshitoke/nft141d/internal/store"
	"github.com/yoshitoke/nft141d/internal/vault"
	"github.com/yoshitoke/nft141d/internal/xcall"
)

const (
	registryAddress = domain.Address("registry")
	adminAddress    = domain.Address("admin")
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testEnv struct {
	store    store.Store
	bus      *xcall.Bus
	registry *Registry
	vaults   *vault.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s := store.NewMemoryStore()
	l := ledger.New(s)
	bus := xcall.NewBus(adapter.NewClock())
	t.Cleanup(bus.Close)

	client := assetregistry.NewClient(bus)
	vaults := vault.NewManager(s, l, client, bus)
	r := New(Config{
		Address:      registryAddress,
		Admin:        adminAddress,
		FundingGrant: "3000000000000000000000000",
		CallBudget:   2 * time.Second,
	}, s, bus, vaults)

	return &testEnv{store: s, bus: bus, registry: r, vaults: vaults}
}

// registerOrigin serves a permissive nft_transfer endpoint for one origin
func (env *testEnv) registerOrigin(origin domain.AssetOriginID) {
	env.bus.Register(string(origin), func(_ context.Context, req xcall.Request) (json.RawMessage, error) {
		if req.Method != "nft_transfer" {
			return nil, fmt.Errorf("unknown method %q", req.Method)
		}
		return nil, nil
	})
}

func TestCreateVaultCommitsRecordAfterInit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	record, err := env.registry.CreateVault(ctx, "Art Collection", "nft.assets", "ART", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), record.Index)
	assert.Equal(t, domain.Address("art.registry"), record.VaultAddress)

	// The vault is live by the time the record exists
	v := env.vaults.Get(record.VaultAddress)
	info, err := v.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ART", info.Symbol)
	assert.Equal(t, "0", info.ReportedSupply)

	count, err := env.registry.VaultCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestCreateVaultAddressDerivation(t *testing.T) {
	env := newTestEnv(t)

	record, err := env.registry.CreateVault(context.Background(), "Mixed", "mixed.assets", "My.Coin", "")
	require.NoError(t, err)
	assert.Equal(t, domain.Address("my-coin.registry"), record.VaultAddress)
}

func TestCreateVaultDuplicateOrigin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.registry.CreateVault(ctx, "First", "nft.assets", "ONE", "")
	require.NoError(t, err)

	_, err = env.registry.CreateVault(ctx, "Second", "nft.assets", "TWO", "")
	assert.ErrorIs(t, err, domain.ErrOriginAlreadyRegistered)

	count, err := env.registry.VaultCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestVaultIndexesStrictlyIncrease(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		record, err := env.registry.CreateVault(ctx, "V", domain.AssetOriginID(fmt.Sprintf("o%d.assets", i)), fmt.Sprintf("V%d", i), "")
		require.NoError(t, err)
		assert.Equal(t, uint64(i), record.Index) //nolint:gosec,G115
	}
}

func TestVaultAddressByIndex(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	record, err := env.registry.CreateVault(ctx, "Art", "nft.assets", "ART", "")
	require.NoError(t, err)

	address, err := env.registry.VaultAddressByIndex(ctx, record.Index)
	require.NoError(t, err)
	assert.Equal(t, record.VaultAddress, address)

	_, err = env.registry.VaultAddressByIndex(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrVaultNotFound)
}

func TestVaultInfoByIndexRefreshesCache(t *testing.T) {
	env := newTestEnv(t)
	env.registerOrigin("nft.assets")
	ctx := context.Background()

	record, err := env.registry.CreateVault(ctx, "Art", "nft.assets", "ART", "")
	require.NoError(t, err)

	v := env.vaults.Get(record.VaultAddress)
	_, err = v.Deposit(ctx, "alice", "token-1")
	require.NoError(t, err)

	info, err := env.registry.VaultInfoByIndex(ctx, record.Index)
	require.NoError(t, err)
	assert.Equal(t, "1", info.ReportedSupply)

	cached, err := env.registry.CachedInfos(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, record.Index, cached[0].Index)
	assert.Equal(t, "1", cached[0].Info.ReportedSupply)
}

func TestVaultInfoByIndexMissing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.registry.VaultInfoByIndex(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrVaultNotFound)
}

func TestRefreshAllRebuildsCacheKeyedByIndex(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	symbols := []string{"AAA", "BBB", "CCC"}
	for i, symbol := range symbols {
		_, err := env.registry.CreateVault(ctx, symbol, domain.AssetOriginID(fmt.Sprintf("o%d.assets", i)), symbol, "")
		require.NoError(t, err)
	}

	issued, err := env.registry.RefreshAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, issued)

	// Responses arrive in arbitrary order; the index keying keeps each
	// entry attributable regardless.
	require.Eventually(t, func() bool {
		cached, err := env.registry.CachedInfos(ctx)
		return err == nil && len(cached) == 3
	}, 2*time.Second, 10*time.Millisecond)

	cached, err := env.registry.CachedInfos(ctx)
	require.NoError(t, err)
	byIndex := make(map[uint64]string, len(cached))
	for _, entry := range cached {
		byIndex[entry.Index] = entry.Info.Symbol
	}
	for i, symbol := range symbols {
		assert.Equal(t, symbol, byIndex[uint64(i)]) //nolint:gosec,G115
	}
}

func TestVaultsReachableAfterProcessRestart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	record, err := env.registry.CreateVault(ctx, "Art", "nft.assets", "ART", "")
	require.NoError(t, err)

	// A restarted process wires a fresh bus and manager over the same store;
	// no per-vault route has materialized the handle yet.
	bus := xcall.NewBus(adapter.NewClock())
	t.Cleanup(bus.Close)
	client := assetregistry.NewClient(bus)
	vaults := vault.NewManager(env.store, ledger.New(env.store), client, bus)
	restarted := New(Config{
		Address:    registryAddress,
		Admin:      adminAddress,
		CallBudget: 2 * time.Second,
	}, env.store, bus, vaults)

	info, err := restarted.VaultInfoByIndex(ctx, record.Index)
	require.NoError(t, err)
	assert.Equal(t, "ART", info.Symbol)

	issued, err := restarted.RefreshAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, issued)
	require.Eventually(t, func() bool {
		cached, err := restarted.CachedInfos(ctx)
		return err == nil && len(cached) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRefreshAllOutlivesInitiatingContext(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.registry.CreateVault(ctx, "Art", "nft.assets", "ART", "")
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dispatcher := mocks.NewMockDispatcher(ctrl)
	r := New(Config{
		Address:    registryAddress,
		Admin:      adminAddress,
		CallBudget: 2 * time.Second,
	}, env.store, dispatcher, env.vaults)

	var dispatched context.Context
	dispatcher.EXPECT().
		Call(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(callCtx context.Context, _ xcall.Request, _ xcall.Callback) error {
			dispatched = callCtx
			return nil
		})

	reqCtx, cancel := context.WithCancel(context.Background())
	issued, err := r.RefreshAll(reqCtx)
	require.NoError(t, err)
	assert.Equal(t, 1, issued)

	// The handler has responded and the request context is gone; the
	// outstanding call must not be torn down with it.
	cancel()
	require.NotNil(t, dispatched)
	assert.NoError(t, dispatched.Err())
}

func TestSetParamsRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	record, err := env.registry.CreateVault(ctx, "Art", "nft.assets", "ART", "")
	require.NoError(t, err)

	unit := domain.DefaultUnitValue()
	err = env.registry.SetParams(ctx, "mallory", record.VaultAddress, "Evil", "EVL", unit, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = env.registry.SetParams(ctx, adminAddress, record.VaultAddress, "Art v2", "ART2", unit, "")
	require.NoError(t, err)

	info, err := env.vaults.Get(record.VaultAddress).Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Art v2", info.Name)
}

func TestSetFeeAdminGated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.registry.SetFee(ctx, "mallory", "250")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, env.registry.SetFee(ctx, adminAddress, "250"))

	fee, err := env.registry.Fee(ctx)
	require.NoError(t, err)
	assert.Equal(t, "250", fee)
}

func TestSetFeeRejectsMalformedRate(t *testing.T) {
	env := newTestEnv(t)

	err := env.registry.SetFee(context.Background(), adminAddress, "not-a-number")
	assert.Error(t, err)
}
