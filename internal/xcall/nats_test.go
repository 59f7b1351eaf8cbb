package xcall_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoshitoke/nft141d/internal/mocks"
	"github.com/yoshitoke/nft141d/internal/xcall"
)

func natsOutcome(t *testing.T, cb func(xcall.Callback) error) xcall.Outcome {
	t.Helper()
	outCh := make(chan xcall.Outcome, 1)
	require.NoError(t, cb(func(_ context.Context, out xcall.Outcome) {
		outCh <- out
	}))
	select {
	case out := <-outCh:
		return out
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for outcome")
		return xcall.Outcome{}
	}
}

func TestNatsCallDecodesReply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := mocks.NewMockNatsConn(ctrl)
	d := xcall.NewNatsDispatcher(conn, "", time.Second)

	req, err := xcall.NewRequest("registry", "art.registry", "get_info", nil)
	require.NoError(t, err)

	reply, err := json.Marshal(xcall.Resolved(json.RawMessage(`{"symbol":"ART"}`)))
	require.NoError(t, err)

	conn.EXPECT().
		RequestWithContext(gomock.Any(), "nft141.call.art.registry.get_info", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte) (*nats.Msg, error) {
			var sent xcall.Request
			require.NoError(t, json.Unmarshal(data, &sent))
			assert.Equal(t, req.ID, sent.ID)
			return &nats.Msg{Data: reply}, nil
		})

	out := natsOutcome(t, func(cb xcall.Callback) error {
		return d.Call(context.Background(), req, cb)
	})
	require.Equal(t, xcall.StatusResolved, out.Status)
	assert.JSONEq(t, `{"symbol":"ART"}`, string(out.Value))
}

func TestNatsCallTimeoutResolvesPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := mocks.NewMockNatsConn(ctrl)
	d := xcall.NewNatsDispatcher(conn, "", time.Second)

	req, err := xcall.NewRequest("registry", "art.registry", "get_info", nil)
	require.NoError(t, err)

	conn.EXPECT().
		RequestWithContext(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nats.ErrTimeout)

	out := natsOutcome(t, func(cb xcall.Callback) error {
		return d.Call(context.Background(), req, cb)
	})
	// The responder may still have executed the call, so a timeout is not a failure
	assert.Equal(t, xcall.StatusPending, out.Status)
}

func TestNatsCallTransportErrorFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := mocks.NewMockNatsConn(ctrl)
	d := xcall.NewNatsDispatcher(conn, "", time.Second)

	req, err := xcall.NewRequest("registry", "art.registry", "get_info", nil)
	require.NoError(t, err)

	conn.EXPECT().
		RequestWithContext(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	out := natsOutcome(t, func(cb xcall.Callback) error {
		return d.Call(context.Background(), req, cb)
	})
	require.Equal(t, xcall.StatusFailed, out.Status)
	assert.Contains(t, out.Reason, "connection refused")
}

func TestNatsCallMalformedReplyFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := mocks.NewMockNatsConn(ctrl)
	d := xcall.NewNatsDispatcher(conn, "", time.Second)

	req, err := xcall.NewRequest("registry", "art.registry", "get_info", nil)
	require.NoError(t, err)

	conn.EXPECT().
		RequestWithContext(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&nats.Msg{Data: []byte("not json")}, nil)

	out := natsOutcome(t, func(cb xcall.Callback) error {
		return d.Call(context.Background(), req, cb)
	})
	require.Equal(t, xcall.StatusFailed, out.Status)
	assert.Contains(t, out.Reason, "malformed reply")
}
