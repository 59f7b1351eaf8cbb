package rest

import (
	"fmt"

	"github.com/yoshitoke/nft141d/internal/api/apierrors"
	"github.com/yoshitoke/nft141d/internal/domain"
)

// MaxAssetsPerRequest bounds deposit and withdrawal batches
const MaxAssetsPerRequest = 100

// CreateVaultRequest represents the request body for creating a vault
type CreateVaultRequest struct {
	Name   string `json:"name"`
	Origin string `json:"origin"`
	Symbol string `json:"symbol"`
	Media  string `json:"media"`
}

// Validate validates the request body
func (r *CreateVaultRequest) Validate() error {
	if r.Name == "" {
		return apierrors.NewValidationError("name is required")
	}
	if r.Symbol == "" {
		return apierrors.NewValidationError("symbol is required")
	}
	if !domain.AssetOriginID(r.Origin).Valid() {
		return apierrors.NewValidationError(fmt.Sprintf("invalid origin: %s", r.Origin))
	}
	return nil
}

// SetVaultParamsRequest represents the request body for updating vault parameters
type SetVaultParamsRequest struct {
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	UnitValue string `json:"unit_value"`
	Media     string `json:"media"`
}

// Validate validates the request body
func (r *SetVaultParamsRequest) Validate() error {
	if r.Name == "" {
		return apierrors.NewValidationError("name is required")
	}
	if r.Symbol == "" {
		return apierrors.NewValidationError("symbol is required")
	}
	if _, err := domain.ParseAmount(r.UnitValue); err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid unit_value: %s", r.UnitValue))
	}
	return nil
}

// SetFeeRequest represents the request body for updating the registry fee rate
type SetFeeRequest struct {
	Fee string `json:"fee"`
}

// Validate validates the request body
func (r *SetFeeRequest) Validate() error {
	if r.Fee == "" {
		return apierrors.NewValidationError("fee is required")
	}
	return nil
}

// AssetTransferRequest represents the request body for deposits and withdrawals
type AssetTransferRequest struct {
	AssetIDs []string `json:"asset_ids"`
}

// Validate validates the request body
func (r *AssetTransferRequest) Validate() error {
	if len(r.AssetIDs) == 0 {
		return apierrors.NewValidationError("asset_ids is required")
	}
	if len(r.AssetIDs) > MaxAssetsPerRequest {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d asset IDs allowed", MaxAssetsPerRequest))
	}
	for _, id := range r.AssetIDs {
		if !domain.AssetID(id).Valid() {
			return apierrors.NewValidationError(fmt.Sprintf("invalid asset ID: %s", id))
		}
	}
	return nil
}

// AssetIDList converts the raw IDs to their domain type
func (r *AssetTransferRequest) AssetIDList() []domain.AssetID {
	ids := make([]domain.AssetID, 0, len(r.AssetIDs))
	for _, id := range r.AssetIDs {
		ids = append(ids, domain.AssetID(id))
	}
	return ids
}

// ShareTransferRequest represents the request body for transferring shares
type ShareTransferRequest struct {
	Receiver string `json:"receiver"`
	Amount   string `json:"amount"`
}

// Validate validates the request body
func (r *ShareTransferRequest) Validate() error {
	if !domain.Address(r.Receiver).Valid() {
		return apierrors.NewValidationError(fmt.Sprintf("invalid receiver: %s", r.Receiver))
	}
	if _, err := domain.ParseAmount(r.Amount); err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid amount: %s", r.Amount))
	}
	return nil
}

// SwapRequest represents the request body for swapping one locked asset for another
type SwapRequest struct {
	AssetIn  string `json:"asset_in"`
	AssetOut string `json:"asset_out"`
}

// Validate validates the request body
func (r *SwapRequest) Validate() error {
	if !domain.AssetID(r.AssetIn).Valid() {
		return apierrors.NewValidationError(fmt.Sprintf("invalid asset_in: %s", r.AssetIn))
	}
	if !domain.AssetID(r.AssetOut).Valid() {
		return apierrors.NewValidationError(fmt.Sprintf("invalid asset_out: %s", r.AssetOut))
	}
	return nil
}
