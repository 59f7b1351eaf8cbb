package xcall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/yoshitoke/nft141d/internal/adapter"
	"github.com/yoshitoke/nft141d/internal/logger"
)

// DefaultSubjectPrefix is the NATS subject root for cross-component calls
const DefaultSubjectPrefix = "nft141.call"

// NatsDispatcher delivers calls over NATS request/reply. Each target method
// is a subject under the configured prefix; the reply payload is a
// JSON-encoded Outcome. A request that times out resolves as pending, since
// the responder may still have executed it.
type NatsDispatcher struct {
	conn          adapter.NatsConn
	subjectPrefix string
	timeout       time.Duration
}

// NewNatsDispatcher creates a dispatcher over an established NATS connection.
// A zero timeout falls back to the bus default budget.
func NewNatsDispatcher(conn adapter.NatsConn, subjectPrefix string, timeout time.Duration) *NatsDispatcher {
	if subjectPrefix == "" {
		subjectPrefix = DefaultSubjectPrefix
	}
	if timeout == 0 {
		timeout = defaultBudget
	}
	return &NatsDispatcher{
		conn:          conn,
		subjectPrefix: subjectPrefix,
		timeout:       timeout,
	}
}

func (d *NatsDispatcher) subject(target, method string) string {
	return fmt.Sprintf("%s.%s.%s", d.subjectPrefix, target, method)
}

// Call issues req as a NATS request and invokes cb with the decoded reply.
// The callback runs on a dispatcher goroutine, exactly once.
func (d *NatsDispatcher) Call(ctx context.Context, req Request, cb Callback) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	budget := req.Budget
	if budget == 0 {
		budget = d.timeout
	}

	go func() {
		callCtx, cancel := context.WithTimeout(ctx, budget)
		defer cancel()

		msg, err := d.conn.RequestWithContext(callCtx, d.subject(req.Target, req.Method), data)
		if err != nil {
			if errors.Is(err, nats.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
				logger.WarnCtx(ctx, "remote call timed out",
					zap.String("request_id", req.ID),
					zap.String("target", req.Target),
					zap.String("method", req.Method))
				cb(ctx, Pending())
				return
			}
			cb(ctx, Failed(err.Error()))
			return
		}

		var out Outcome
		if err := json.Unmarshal(msg.Data, &out); err != nil {
			cb(ctx, Failed(fmt.Sprintf("malformed reply: %v", err)))
			return
		}
		cb(ctx, out)
	}()
	return nil
}

// Serve subscribes a handler for inbound calls addressed to address. Replies
// carry the handler result wrapped in an Outcome.
func (d *NatsDispatcher) Serve(address string, h Handler) (*nats.Subscription, error) {
	subject := fmt.Sprintf("%s.%s.*", d.subjectPrefix, address)
	sub, err := d.conn.Subscribe(subject, func(msg *nats.Msg) {
		var req Request
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			d.reply(msg, Failed(fmt.Sprintf("malformed request: %v", err)))
			return
		}

		value, err := h(context.Background(), req)
		if err != nil {
			d.reply(msg, Failed(err.Error()))
			return
		}
		d.reply(msg, Outcome{Status: StatusResolved, Value: value})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}
	return sub, nil
}

func (d *NatsDispatcher) reply(msg *nats.Msg, out Outcome) {
	if msg.Reply == "" {
		return
	}
	data, err := json.Marshal(out)
	if err != nil {
		logger.Error(fmt.Errorf("failed to encode outcome: %w", err))
		return
	}
	if err := d.conn.Publish(msg.Reply, data); err != nil {
		logger.Error(fmt.Errorf("failed to publish reply: %w", err))
	}
}
