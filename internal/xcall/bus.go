package xcall

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yoshitoke/nft141d/internal/adapter"
	"github.com/yoshitoke/nft141d/internal/logger"
)

const defaultBudget = 30 * time.Second

// Bus is an in-process dispatcher. Each registered address owns one inbox
// goroutine, so calls into an address and callbacks returning to it run
// strictly one at a time. That serialization is what lets handlers mutate
// component state without their own locking.
type Bus struct {
	mu      sync.Mutex
	inboxes map[string]*inbox
	clock   adapter.Clock
	wg      sync.WaitGroup
	quit    chan struct{}
	closed  bool
}

type inbox struct {
	tasks   chan func()
	handler Handler
}

// NewBus creates a bus with no registered addresses
func NewBus(clock adapter.Clock) *Bus {
	return &Bus{
		inboxes: make(map[string]*inbox),
		clock:   clock,
		quit:    make(chan struct{}),
	}
}

// Register binds a handler to an address. All calls to the address and all
// callbacks owed to it are executed on a single goroutine in arrival order.
// Registering an address twice replaces the handler queue.
func (b *Bus) Register(address string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	in := &inbox{tasks: make(chan func(), 256), handler: h}
	b.inboxes[address] = in
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			select {
			case task := <-in.tasks:
				task()
			case <-b.quit:
				return
			}
		}
	}()
}

// Call issues req to its target. The outcome callback is enqueued on the
// caller's inbox when the caller is a registered address, keeping callback
// execution serialized with the caller's own incoming calls. A call whose
// budget elapses before the target finishes resolves as pending; the
// handler's late result is discarded.
func (b *Bus) Call(ctx context.Context, req Request, cb Callback) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return fmt.Errorf("bus is closed")
	}
	target, ok := b.inboxes[req.Target]
	b.mu.Unlock()

	if !ok {
		b.deliver(ctx, req.Caller, cb, Failed(fmt.Sprintf("unknown target %q", req.Target)))
		return nil
	}

	budget := req.Budget
	if budget == 0 {
		budget = defaultBudget
	}

	var once sync.Once
	done := make(chan struct{})
	settle := func(out Outcome) {
		once.Do(func() {
			close(done)
			b.deliver(ctx, req.Caller, cb, out)
		})
	}

	go func() {
		select {
		case <-b.clock.After(budget):
			logger.WarnCtx(ctx, "call budget exhausted",
				zap.String("request_id", req.ID),
				zap.String("target", req.Target),
				zap.String("method", req.Method))
			settle(Pending())
		case <-done:
		}
	}()

	select {
	case target.tasks <- func() {
		value, err := target.handler(ctx, req)
		if err != nil {
			settle(Failed(err.Error()))
			return
		}
		settle(Outcome{Status: StatusResolved, Value: value})
	}:
		return nil
	default:
		settle(Failed(fmt.Sprintf("inbox full for %q", req.Target)))
		return nil
	}
}

// deliver runs cb on the caller's inbox goroutine when the caller is
// registered, otherwise inline.
func (b *Bus) deliver(ctx context.Context, caller string, cb Callback, out Outcome) {
	if cb == nil {
		return
	}
	b.mu.Lock()
	in, ok := b.inboxes[caller]
	if !ok || b.closed {
		b.mu.Unlock()
		cb(ctx, out)
		return
	}
	select {
	case in.tasks <- func() { cb(ctx, out) }:
		b.mu.Unlock()
	default:
		b.mu.Unlock()
		cb(ctx, out)
	}
}

// Close stops accepting calls and stops the inbox goroutines. Queued tasks
// that have not started are dropped.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.quit)
	b.mu.Unlock()
	b.wg.Wait()
}
