package adapter

import (
	"context"

	"github.com/nats-io/nats.go"
)

// NatsConn defines an interface for NATS connection operations to enable mocking
//
//go:generate mockgen -source=nats.go -destination=../mocks/nats.go -package=mocks -mock_names=NatsConn=MockNatsConn
type NatsConn interface {
	RequestWithContext(ctx context.Context, subj string, data []byte) (*nats.Msg, error)
	Subscribe(subj string, handler nats.MsgHandler) (*nats.Subscription, error)
	Publish(subj string, data []byte) error
	Close()
	LastError() error
	ConnectedUrl() string
}

// NatsDialer defines an interface for establishing NATS connections
//
//go:generate mockgen -source=nats.go -destination=../mocks/nats.go -package=mocks -mock_names=NatsDialer=MockNatsDialer
type NatsDialer interface {
	Connect(url string, opts ...nats.Option) (NatsConn, error)
}

// RealNatsDialer implements NatsDialer using the nats.go client
type RealNatsDialer struct{}

// NewNatsDialer creates a new real NATS dialer
func NewNatsDialer() NatsDialer {
	return &RealNatsDialer{}
}

func (d *RealNatsDialer) Connect(url string, opts ...nats.Option) (NatsConn, error) {
	return nats.Connect(url, opts...)
}
