package xcall

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoshitoke/nft141d/internal/adapter"
	"github.com/yoshitoke/nft141d/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func waitOutcome(t *testing.T, ch <-chan Outcome) Outcome {
	t.Helper()
	select {
	case out := <-ch:
		return out
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for outcome")
		return Outcome{}
	}
}

func TestBusResolvedCall(t *testing.T) {
	bus := NewBus(adapter.NewClock())
	defer bus.Close()

	bus.Register("vault-a.registry", func(_ context.Context, req Request) (json.RawMessage, error) {
		assert.Equal(t, "get_info", req.Method)
		return json.RawMessage(`{"name":"Art"}`), nil
	})

	req, err := NewRequest("registry", "vault-a.registry", "get_info", nil)
	require.NoError(t, err)

	outCh := make(chan Outcome, 1)
	err = bus.Call(context.Background(), req, func(_ context.Context, out Outcome) {
		outCh <- out
	})
	require.NoError(t, err)

	out := waitOutcome(t, outCh)
	assert.Equal(t, StatusResolved, out.Status)
	assert.JSONEq(t, `{"name":"Art"}`, string(out.Value))
}

func TestBusFailedCall(t *testing.T) {
	bus := NewBus(adapter.NewClock())
	defer bus.Close()

	bus.Register("vault-a.registry", func(_ context.Context, _ Request) (json.RawMessage, error) {
		return nil, fmt.Errorf("not initialized")
	})

	req, err := NewRequest("registry", "vault-a.registry", "get_info", nil)
	require.NoError(t, err)

	outCh := make(chan Outcome, 1)
	require.NoError(t, bus.Call(context.Background(), req, func(_ context.Context, out Outcome) {
		outCh <- out
	}))

	out := waitOutcome(t, outCh)
	assert.Equal(t, StatusFailed, out.Status)
	assert.Equal(t, "not initialized", out.Reason)
}

func TestBusUnknownTarget(t *testing.T) {
	bus := NewBus(adapter.NewClock())
	defer bus.Close()

	req, err := NewRequest("registry", "nowhere", "get_info", nil)
	require.NoError(t, err)

	outCh := make(chan Outcome, 1)
	require.NoError(t, bus.Call(context.Background(), req, func(_ context.Context, out Outcome) {
		outCh <- out
	}))

	out := waitOutcome(t, outCh)
	assert.Equal(t, StatusFailed, out.Status)
	assert.Contains(t, out.Reason, "unknown target")
}

func TestBusBudgetExhaustedResolvesPending(t *testing.T) {
	bus := NewBus(adapter.NewClock())
	defer bus.Close()

	release := make(chan struct{})
	bus.Register("slow", func(_ context.Context, _ Request) (json.RawMessage, error) {
		<-release
		return nil, nil
	})

	req, err := NewRequest("registry", "slow", "get_info", nil)
	require.NoError(t, err)
	req.Budget = 20 * time.Millisecond

	var calls atomic.Int32
	outCh := make(chan Outcome, 2)
	require.NoError(t, bus.Call(context.Background(), req, func(_ context.Context, out Outcome) {
		calls.Add(1)
		outCh <- out
	}))

	out := waitOutcome(t, outCh)
	assert.Equal(t, StatusPending, out.Status)

	// The late handler result must not fire the callback a second time
	close(release)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestBusSerializesCallsPerAddress(t *testing.T) {
	bus := NewBus(adapter.NewClock())
	defer bus.Close()

	var mu sync.Mutex
	var active, maxActive int
	bus.Register("vault-a.registry", func(_ context.Context, _ Request) (json.RawMessage, error) {
		mu.Lock()
		active++
		if active > maxActive {
			maxActive = active
		}
		mu.Unlock()
		time.Sleep(time.Millisecond)
		mu.Lock()
		active--
		mu.Unlock()
		return nil, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		req, err := NewRequest("registry", "vault-a.registry", "deposit", nil)
		require.NoError(t, err)
		require.NoError(t, bus.Call(context.Background(), req, func(_ context.Context, _ Outcome) {
			wg.Done()
		}))
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive)
}

func TestBusCallbackRunsOnCallerInbox(t *testing.T) {
	bus := NewBus(adapter.NewClock())
	defer bus.Close()

	bus.Register("vault-a.registry", func(_ context.Context, _ Request) (json.RawMessage, error) {
		return json.RawMessage(`"ok"`), nil
	})

	// The caller registers too; its callback must not interleave with its
	// own handler execution.
	callerBusy := make(chan struct{})
	bus.Register("registry", func(_ context.Context, _ Request) (json.RawMessage, error) {
		<-callerBusy
		return nil, nil
	})

	blockReq, err := NewRequest("outside", "registry", "tick", nil)
	require.NoError(t, err)
	require.NoError(t, bus.Call(context.Background(), blockReq, nil))

	req, err := NewRequest("registry", "vault-a.registry", "get_info", nil)
	require.NoError(t, err)

	outCh := make(chan Outcome, 1)
	require.NoError(t, bus.Call(context.Background(), req, func(_ context.Context, out Outcome) {
		outCh <- out
	}))

	// The callback waits behind the caller's in-flight handler
	select {
	case <-outCh:
		t.Fatal("callback ran while caller inbox was busy")
	case <-time.After(50 * time.Millisecond):
	}

	close(callerBusy)
	out := waitOutcome(t, outCh)
	assert.Equal(t, StatusResolved, out.Status)
}

func TestNewRequestIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewRequestID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
