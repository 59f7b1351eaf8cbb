package vault

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yoshitoke/nft141d/internal/domain"
	"github.com/yoshitoke/nft141d/internal/xcall"
)

// TransferArgs is the payload of an ft_transfer call
type TransferArgs struct {
	ReceiverID string `json:"receiver_id"`
	Amount     string `json:"amount"`
	Memo       string `json:"memo,omitempty"`
}

// SetParamsArgs is the payload of a set_params call
type SetParamsArgs struct {
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	UnitValue string `json:"unit_value"`
	Media     string `json:"media"`
}

// Handler exposes the vault's contract surface over the call protocol. The
// caller identity of each request is the authenticated principal the
// authorization checks run against.
func (v *Vault) Handler() xcall.Handler {
	return func(ctx context.Context, req xcall.Request) (json.RawMessage, error) {
		caller := domain.Address(req.Caller)
		switch req.Method {
		case "init":
			var params InitParams
			if err := json.Unmarshal(req.Payload, &params); err != nil {
				return nil, fmt.Errorf("malformed init payload: %w", err)
			}
			if err := v.Init(ctx, caller, params); err != nil {
				return nil, err
			}
			return nil, nil

		case "get_info":
			info, err := v.Info(ctx)
			if err != nil {
				return nil, err
			}
			return json.Marshal(info)

		case "ft_transfer":
			var args TransferArgs
			if err := json.Unmarshal(req.Payload, &args); err != nil {
				return nil, fmt.Errorf("malformed ft_transfer payload: %w", err)
			}
			amount, err := domain.ParseAmount(args.Amount)
			if err != nil {
				return nil, fmt.Errorf("malformed amount: %w", err)
			}
			if err := v.Transfer(ctx, caller, domain.Address(args.ReceiverID), amount); err != nil {
				return nil, err
			}
			return nil, nil

		case "set_params":
			var args SetParamsArgs
			if err := json.Unmarshal(req.Payload, &args); err != nil {
				return nil, fmt.Errorf("malformed set_params payload: %w", err)
			}
			unitValue, err := domain.ParseAmount(args.UnitValue)
			if err != nil {
				return nil, fmt.Errorf("malformed unit value: %w", err)
			}
			if err := v.SetParams(ctx, caller, args.Name, args.Symbol, unitValue, args.Media); err != nil {
				return nil, err
			}
			return nil, nil

		default:
			return nil, fmt.Errorf("unknown method %q", req.Method)
		}
	}
}
