package assetregistry_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoshitoke/nft141d/internal/assetregistry"
	"github.com/yoshitoke/nft141d/internal/mocks"
	"github.com/yoshitoke/nft141d/internal/xcall"
)

func TestTransferBuildsRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dispatcher := mocks.NewMockDispatcher(ctrl)
	client := assetregistry.NewClient(dispatcher)

	var captured xcall.Request
	dispatcher.EXPECT().
		Call(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req xcall.Request, _ xcall.Callback) error {
			captured = req
			return nil
		})

	err := client.Transfer(context.Background(),
		"req-1", "art.registry", "nft.assets", "token-7", "alice", func(ctx context.Context, out xcall.Outcome) {})
	require.NoError(t, err)

	assert.Equal(t, "req-1", captured.ID)
	assert.Equal(t, "art.registry", captured.Caller)
	assert.Equal(t, "nft.assets", captured.Target)
	assert.Equal(t, "nft_transfer", captured.Method)

	var args assetregistry.TransferArgs
	require.NoError(t, json.Unmarshal(captured.Payload, &args))
	assert.Equal(t, "alice", args.ReceiverID)
	assert.Equal(t, "token-7", args.TokenID)
	assert.Nil(t, args.ApprovalID)
}

func TestTransferGeneratesRequestIDWhenEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dispatcher := mocks.NewMockDispatcher(ctrl)
	client := assetregistry.NewClient(dispatcher)

	var captured xcall.Request
	dispatcher.EXPECT().
		Call(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req xcall.Request, _ xcall.Callback) error {
			captured = req
			return nil
		})

	err := client.Transfer(context.Background(),
		"", "art.registry", "nft.assets", "token-7", "alice", func(ctx context.Context, out xcall.Outcome) {})
	require.NoError(t, err)
	assert.NotEmpty(t, captured.ID)
}

func TestTransferPropagatesDispatchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dispatcher := mocks.NewMockDispatcher(ctrl)
	client := assetregistry.NewClient(dispatcher)

	dispatchErr := errors.New("connection refused")
	dispatcher.EXPECT().
		Call(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(dispatchErr)

	err := client.Transfer(context.Background(),
		"req-2", "art.registry", "nft.assets", "token-7", "alice", func(ctx context.Context, out xcall.Outcome) {})
	assert.ErrorIs(t, err, dispatchErr)
}
