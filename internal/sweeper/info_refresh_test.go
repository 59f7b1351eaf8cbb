package sweeper

import (
	"context"
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
	"github.com/yoshitoke/nft141d/internal/registry"
	"github.com/yoshitoke/nft141d/internal/store"
	"github.com/yoshitoke/nft141d/internal/vault"
	"github.com/yoshitoke/nft141d/internal/xcall"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestRegistry(t *testing.T) (*registry.Registry, *xcall.Bus) {
	t.Helper()
	s := store.NewMemoryStore()
	l := ledger.New(s)
	bus := xcall.NewBus(adapter.NewClock())
	t.Cleanup(bus.Close)

	client := assetregistry.NewClient(bus)
	vaults := vault.NewManager(s, l, client, bus)
	r := registry.New(registry.Config{
		Address:    "registry",
		Admin:      "admin",
		CallBudget: time.Second,
	}, s, bus, vaults)
	return r, bus
}

func TestSweeperRefreshesAllVaults(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for i := 0; i < 3; i++ {
		_, err := r.CreateVault(ctx, "V", domain.AssetOriginID(fmt.Sprintf("o%d.assets", i)), fmt.Sprintf("V%d", i), "")
		require.NoError(t, err)
	}

	s := NewInfoRefreshSweeper(&InfoRefreshSweeperConfig{
		Interval:       10 * time.Millisecond,
		WorkerPoolSize: 2,
		MaxRetries:     2,
		MaxElapsedTime: time.Second,
	}, r, adapter.NewClock())

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start(ctx) }()

	require.Eventually(t, func() bool {
		cached, err := r.CachedInfos(ctx)
		return err == nil && len(cached) == 3
	}, 5*time.Second, 20*time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	require.NoError(t, s.Stop(stopCtx))
	require.NoError(t, <-errCh)
}

func TestSweeperRunsOneCycleUntilIntervalElapses(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := r.CreateVault(ctx, "V", "o0.assets", "V0", "")
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The interval never elapses, so exactly one refresh cycle runs
	var never <-chan time.Time = make(chan time.Time)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0)).AnyTimes()
	clock.EXPECT().After(time.Hour).Return(never).AnyTimes()

	s := NewInfoRefreshSweeper(&InfoRefreshSweeperConfig{
		Interval:       time.Hour,
		WorkerPoolSize: 1,
		MaxRetries:     1,
		MaxElapsedTime: time.Second,
	}, r, clock)

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start(ctx) }()

	require.Eventually(t, func() bool {
		cached, err := r.CachedInfos(ctx)
		return err == nil && len(cached) == 1
	}, 5*time.Second, 20*time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	require.NoError(t, s.Stop(stopCtx))
	require.NoError(t, <-errCh)
}

func TestSweeperStartTwiceFails(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewInfoRefreshSweeper(&InfoRefreshSweeperConfig{
		Interval:       time.Hour,
		WorkerPoolSize: 1,
		MaxRetries:     1,
		MaxElapsedTime: time.Second,
	}, r, adapter.NewClock())

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start(ctx) }()

	sw := s.(*infoRefreshSweeper)
	require.Eventually(t, func() bool {
		return sw.running.Load()
	}, time.Second, 10*time.Millisecond)

	assert.Error(t, s.Start(ctx))

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	require.NoError(t, s.Stop(stopCtx))
	require.NoError(t, <-errCh)
}

func TestSweeperStopWhenNeverStarted(t *testing.T) {
	r, _ := newTestRegistry(t)

	s := NewInfoRefreshSweeper(&InfoRefreshSweeperConfig{
		Interval:       time.Hour,
		WorkerPoolSize: 1,
	}, r, adapter.NewClock())

	assert.NoError(t, s.Stop(context.Background()))
	assert.Equal(t, "info-refresh-sweeper", s.Name())
}
