package rest

import (
	"github.com/yoshitoke/nft141d/internal/domain"
)

// CreateVaultResponse represents the response for creating a vault
type CreateVaultResponse struct {
	Index        uint64 `json:"index"`
	VaultAddress string `json:"vault_address"`
	Origin       string `json:"origin"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
}

// VaultAddressResponse represents the response for resolving a vault address
type VaultAddressResponse struct {
	Index   uint64 `json:"index"`
	Address string `json:"address"`
}

// VaultCountResponse represents the number of vaults the registry has created
type VaultCountResponse struct {
	Count uint64 `json:"count"`
}

// RefreshResponse reports how many vault info refresh calls were issued
type RefreshResponse struct {
	Issued int `json:"issued"`
}

// SupplyResponse represents a vault's total share supply
type SupplyResponse struct {
	TotalSupply domain.Amount `json:"total_supply"`
}

// BalanceResponse represents one account's share balance in a vault
type BalanceResponse struct {
	Account string        `json:"account"`
	Balance domain.Amount `json:"balance"`
}

// TransferIssuedResponse lists the custody transfer requests issued for a
// deposit or withdrawal batch
type TransferIssuedResponse struct {
	RequestIDs []string `json:"request_ids"`
}

// SwapIssuedResponse lists the two custody transfer requests issued for a swap
type SwapIssuedResponse struct {
	InRequestID  string `json:"in_request_id"`
	OutRequestID string `json:"out_request_id"`
}

// FeeResponse represents the registry fee rate
type FeeResponse struct {
	Fee string `json:"fee"`
}
