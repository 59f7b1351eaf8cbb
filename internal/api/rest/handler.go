package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yoshitoke/nft141d/internal/api/apierrors"
	"github.com/yoshitoke/nft141d/internal/api/middleware"
	"github.com/yoshitoke/nft141d/internal/domain"
	"github.com/yoshitoke/nft141d/internal/registry"
	"github.com/yoshitoke/nft141d/internal/vault"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// CreateVault creates a vault for an asset origin (admin only)
	// POST /api/v1/vaults
	CreateVault(c *gin.Context)

	// ListVaults returns the cached info snapshot for all vaults
	// GET /api/v1/vaults
	ListVaults(c *gin.Context)

	// RefreshVaults issues an info refresh call to every registered vault
	// POST /api/v1/registry/refresh
	RefreshVaults(c *gin.Context)

	// GetVaultCount returns the number of vaults created so far
	// GET /api/v1/registry/count
	GetVaultCount(c *gin.Context)

	// GetVaultInfoByIndex fetches live info from the vault at a registry index
	// GET /api/v1/vaults/:vault (numeric index)
	GetVaultInfoByIndex(c *gin.Context)

	// GetVaultAddressByIndex resolves a registry index to a vault address
	// GET /api/v1/vaults/:vault/address (numeric index)
	GetVaultAddressByIndex(c *gin.Context)

	// SetVaultParams updates a vault's display parameters (admin only)
	// PUT /api/v1/vaults/:vault/params (vault address)
	SetVaultParams(c *gin.Context)

	// SetFee updates the registry fee rate (admin only)
	// PUT /api/v1/registry/fee
	SetFee(c *gin.Context)

	// GetFee returns the registry fee rate
	// GET /api/v1/registry/fee
	GetFee(c *gin.Context)

	// GetVaultInfo returns a vault's current public info
	// GET /api/v1/vaults/:vault/info (vault address)
	GetVaultInfo(c *gin.Context)

	// GetTotalSupply returns a vault's total share supply
	// GET /api/v1/vaults/:vault/supply (vault address)
	GetTotalSupply(c *gin.Context)

	// GetBalance returns one account's share balance in a vault
	// GET /api/v1/vaults/:vault/balances/:account (vault address)
	GetBalance(c *gin.Context)

	// CreateTransfer moves shares from the caller to another account
	// POST /api/v1/vaults/:vault/transfers (vault address)
	CreateTransfer(c *gin.Context)

	// CloseAccount removes the caller's share account from a vault
	// DELETE /api/v1/vaults/:vault/balances/:account (vault address)
	CloseAccount(c *gin.Context)

	// CreateDeposit locks assets and mints shares to the caller
	// POST /api/v1/vaults/:vault/deposits (vault address)
	CreateDeposit(c *gin.Context)

	// CreateWithdrawal burns the caller's shares and releases assets
	// POST /api/v1/vaults/:vault/withdrawals (vault address)
	CreateWithdrawal(c *gin.Context)

	// CreateSwap exchanges one locked asset for one owned by the caller
	// POST /api/v1/vaults/:vault/swaps (vault address)
	CreateSwap(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	registry *registry.Registry
	vaults   *vault.Manager
}

// NewHandler creates a new REST API handler over the registry and vault manager
func NewHandler(reg *registry.Registry, vaults *vault.Manager) Handler {
	return &handler{
		registry: reg,
		vaults:   vaults,
	}
}

// caller extracts the authenticated caller account from the request context.
// Returns false after writing an error response when no valid account is present.
func (h *handler) caller(c *gin.Context) (domain.Address, bool) {
	subject := middleware.AuthSubject(c)
	if subject == "" {
		c.JSON(http.StatusUnauthorized, apierrors.NewUnauthorizedError("Caller account not established"))
		return "", false
	}
	account := domain.Address(subject)
	if !account.Valid() {
		respondBadRequest(c, "Invalid caller account", subject)
		return "", false
	}
	return account, true
}

// vaultAddress extracts and validates the :vault path parameter as an address
func (h *handler) vaultAddress(c *gin.Context) (domain.Address, bool) {
	address := domain.Address(c.Param("vault"))
	if !address.Valid() {
		respondBadRequest(c, "Invalid vault address", string(address))
		return "", false
	}
	return address, true
}

// vaultIndex extracts the :vault path parameter as a registry index
func (h *handler) vaultIndex(c *gin.Context) (uint64, bool) {
	index, err := strconv.ParseUint(c.Param("vault"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid vault index", c.Param("vault"))
		return 0, false
	}
	return index, true
}

// CreateVault creates a vault for an asset origin
func (h *handler) CreateVault(c *gin.Context) {
	account, ok := h.caller(c)
	if !ok {
		return
	}
	if account != h.registry.Admin() {
		respondForbidden(c, "Only the registry admin may create vaults")
		return
	}

	var req CreateVaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	record, err := h.registry.CreateVault(
		c.Request.Context(),
		req.Name,
		domain.AssetOriginID(req.Origin),
		req.Symbol,
		req.Media,
	)
	if err != nil {
		respondDomainError(c, err, "Failed to create vault")
		return
	}

	c.JSON(http.StatusCreated, CreateVaultResponse{
		Index:        record.Index,
		VaultAddress: record.VaultAddress.String(),
		Origin:       string(record.Origin),
		Name:         req.Name,
		Symbol:       req.Symbol,
	})
}

// ListVaults returns the cached info snapshot for all vaults
func (h *handler) ListVaults(c *gin.Context) {
	infos, err := h.registry.CachedInfos(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to list vaults")
		return
	}
	c.JSON(http.StatusOK, infos)
}

// RefreshVaults issues an info refresh call to every registered vault
func (h *handler) RefreshVaults(c *gin.Context) {
	issued, err := h.registry.RefreshAll(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to refresh vault info")
		return
	}
	c.JSON(http.StatusAccepted, RefreshResponse{Issued: issued})
}

// GetVaultCount returns the number of vaults created so far
func (h *handler) GetVaultCount(c *gin.Context) {
	count, err := h.registry.VaultCount(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to count vaults")
		return
	}
	c.JSON(http.StatusOK, VaultCountResponse{Count: count})
}

// GetVaultInfoByIndex fetches live info from the vault at a registry index
func (h *handler) GetVaultInfoByIndex(c *gin.Context) {
	index, ok := h.vaultIndex(c)
	if !ok {
		return
	}

	info, err := h.registry.VaultInfoByIndex(c.Request.Context(), index)
	if err != nil {
		respondDomainError(c, err, "Failed to get vault info")
		return
	}
	c.JSON(http.StatusOK, info)
}

// GetVaultAddressByIndex resolves a registry index to a vault address
func (h *handler) GetVaultAddressByIndex(c *gin.Context) {
	index, ok := h.vaultIndex(c)
	if !ok {
		return
	}

	address, err := h.registry.VaultAddressByIndex(c.Request.Context(), index)
	if err != nil {
		respondDomainError(c, err, "Failed to resolve vault address")
		return
	}
	c.JSON(http.StatusOK, VaultAddressResponse{Index: index, Address: address.String()})
}

// SetVaultParams updates a vault's display parameters
func (h *handler) SetVaultParams(c *gin.Context) {
	account, ok := h.caller(c)
	if !ok {
		return
	}
	address, ok := h.vaultAddress(c)
	if !ok {
		return
	}

	var req SetVaultParamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	unitValue, err := domain.ParseAmount(req.UnitValue)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	err = h.registry.SetParams(c.Request.Context(), account, address, req.Name, req.Symbol, unitValue, req.Media)
	if err != nil {
		respondDomainError(c, err, "Failed to update vault params")
		return
	}
	c.Status(http.StatusNoContent)
}

// SetFee updates the registry fee rate
func (h *handler) SetFee(c *gin.Context) {
	account, ok := h.caller(c)
	if !ok {
		return
	}

	var req SetFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.registry.SetFee(c.Request.Context(), account, req.Fee); err != nil {
		respondDomainError(c, err, "Failed to update fee")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetFee returns the registry fee rate
func (h *handler) GetFee(c *gin.Context) {
	fee, err := h.registry.Fee(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to get fee")
		return
	}
	c.JSON(http.StatusOK, FeeResponse{Fee: fee})
}

// GetVaultInfo returns a vault's current public info
func (h *handler) GetVaultInfo(c *gin.Context) {
	address, ok := h.vaultAddress(c)
	if !ok {
		return
	}

	info, err := h.vaults.Get(address).Info(c.Request.Context())
	if err != nil {
		respondDomainError(c, err, "Failed to get vault info")
		return
	}
	c.JSON(http.StatusOK, info)
}

// GetTotalSupply returns a vault's total share supply
func (h *handler) GetTotalSupply(c *gin.Context) {
	address, ok := h.vaultAddress(c)
	if !ok {
		return
	}

	supply, err := h.vaults.Get(address).TotalSupply(c.Request.Context())
	if err != nil {
		respondDomainError(c, err, "Failed to get total supply")
		return
	}
	c.JSON(http.StatusOK, SupplyResponse{TotalSupply: supply})
}

// GetBalance returns one account's share balance in a vault
func (h *handler) GetBalance(c *gin.Context) {
	address, ok := h.vaultAddress(c)
	if !ok {
		return
	}
	account := domain.Address(c.Param("account"))
	if !account.Valid() {
		respondBadRequest(c, "Invalid account", string(account))
		return
	}

	balance, err := h.vaults.Get(address).BalanceOf(c.Request.Context(), account)
	if err != nil {
		respondDomainError(c, err, "Failed to get balance")
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{Account: account.String(), Balance: balance})
}

// CreateTransfer moves shares from the caller to another account
func (h *handler) CreateTransfer(c *gin.Context) {
	account, ok := h.caller(c)
	if !ok {
		return
	}
	address, ok := h.vaultAddress(c)
	if !ok {
		return
	}

	var req ShareTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	err = h.vaults.Get(address).Transfer(c.Request.Context(), account, domain.Address(req.Receiver), amount)
	if err != nil {
		respondDomainError(c, err, "Failed to transfer shares")
		return
	}
	c.Status(http.StatusNoContent)
}

// CloseAccount removes the caller's share account from a vault
func (h *handler) CloseAccount(c *gin.Context) {
	account, ok := h.caller(c)
	if !ok {
		return
	}
	address, ok := h.vaultAddress(c)
	if !ok {
		return
	}
	target := domain.Address(c.Param("account"))
	if !target.Valid() {
		respondBadRequest(c, "Invalid account", string(target))
		return
	}
	if target != account {
		respondForbidden(c, "Only the account owner may close it")
		return
	}

	if err := h.vaults.Get(address).CloseAccount(c.Request.Context(), account); err != nil {
		respondDomainError(c, err, "Failed to close account")
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateDeposit locks assets and mints shares to the caller
func (h *handler) CreateDeposit(c *gin.Context) {
	account, ok := h.caller(c)
	if !ok {
		return
	}
	address, ok := h.vaultAddress(c)
	if !ok {
		return
	}

	var req AssetTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	requestIDs, err := h.vaults.Get(address).BatchDeposit(c.Request.Context(), account, req.AssetIDList())
	if err != nil {
		respondDomainError(c, err, "Failed to deposit")
		return
	}
	c.JSON(http.StatusAccepted, TransferIssuedResponse{RequestIDs: requestIDs})
}

// CreateWithdrawal burns the caller's shares and releases assets
func (h *handler) CreateWithdrawal(c *gin.Context) {
	account, ok := h.caller(c)
	if !ok {
		return
	}
	address, ok := h.vaultAddress(c)
	if !ok {
		return
	}

	var req AssetTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	requestIDs, err := h.vaults.Get(address).BatchWithdraw(c.Request.Context(), account, req.AssetIDList())
	if err != nil {
		respondDomainError(c, err, "Failed to withdraw")
		return
	}
	c.JSON(http.StatusAccepted, TransferIssuedResponse{RequestIDs: requestIDs})
}

// CreateSwap exchanges one locked asset for one owned by the caller
func (h *handler) CreateSwap(c *gin.Context) {
	account, ok := h.caller(c)
	if !ok {
		return
	}
	address, ok := h.vaultAddress(c)
	if !ok {
		return
	}

	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	inID, outID, err := h.vaults.Get(address).Swap(
		c.Request.Context(),
		account,
		domain.AssetID(req.AssetIn),
		domain.AssetID(req.AssetOut),
	)
	if err != nil {
		respondDomainError(c, err, "Failed to swap")
		return
	}
	c.JSON(http.StatusAccepted, SwapIssuedResponse{InRequestID: inID, OutRequestID: outID})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "nft141d-api",
	})
}
