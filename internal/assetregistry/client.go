// Package assetregistry talks to the external contracts that own the unique
// assets vaults take custody of. Transfers are asynchronous: the client issues
// the call and the vault reacts to the outcome in its callback.
package assetregistry

import (
	"context"

	"github.com/yoshitoke/nft141d/internal/domain"
	"github.com/yoshitoke/nft141d/internal/xcall"
)

// TransferArgs is the payload of an asset transfer call
type TransferArgs struct {
	// ReceiverID is the account receiving custody of the asset
	ReceiverID string `json:"receiver_id"`
	// TokenID is the unique asset being moved
	TokenID string `json:"token_id"`
	// ApprovalID optionally pins the approval under which the transfer runs
	ApprovalID *uint64 `json:"approval_id,omitempty"`
	// Memo is a free-form annotation carried with the transfer
	Memo string `json:"memo,omitempty"`
}

// Transferor moves unique assets between accounts on their origin contract
//
//go:generate mockgen -source=client.go -destination=../mocks/transferor.go -package=mocks -mock_names=Transferor=MockTransferor
type Transferor interface {
	// Transfer asks the asset's origin contract to move assetID to receiver.
	// The caller supplies the request ID so it can journal the call before
	// dispatch. The outcome arrives on cb; a pending outcome means custody
	// is unknown.
	Transfer(ctx context.Context, requestID string, caller domain.Address, origin domain.AssetOriginID, assetID domain.AssetID, receiver domain.Address, cb xcall.Callback) error
}

// Client implements Transferor over an xcall dispatcher
type Client struct {
	dispatcher xcall.Dispatcher
}

// NewClient creates an asset registry client using the given dispatcher
func NewClient(d xcall.Dispatcher) *Client {
	return &Client{dispatcher: d}
}

// Transfer issues an nft_transfer call to the origin contract
func (c *Client) Transfer(ctx context.Context, requestID string, caller domain.Address, origin domain.AssetOriginID, assetID domain.AssetID, receiver domain.Address, cb xcall.Callback) error {
	req, err := xcall.NewRequest(caller.String(), origin.Address().String(), "nft_transfer", TransferArgs{
		ReceiverID: receiver.String(),
		TokenID:    string(assetID),
	})
	if err != nil {
		return err
	}
	if requestID != "" {
		req.ID = requestID
	}
	return c.dispatcher.Call(ctx, req, cb)
}
