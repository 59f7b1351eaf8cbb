// Package vault implements the custody component that locks unique assets of
// one origin class and mints fungible shares against them. Each deposited
// asset is worth a fixed unit value of shares; the value never changes for
// assets already locked. Vault state is store-backed so a restart resumes
// where the daemon left off.
package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/yoshitoke/nft141d/internal/assetregistry"
	"github.com/yoshitoke/nft141d/internal/domain"
	"github.com/yoshitoke/nft141d/internal/ledger"
	"github.com/yoshitoke/nft141d/internal/logger"
	"github.com/yoshitoke/nft141d/internal/store"
	"github.com/yoshitoke/nft141d/internal/store/schema"
	"github.com/yoshitoke/nft141d/internal/xcall"
)

// Vault is one custody component bound to a single address. The mutex
// serializes local steps; it is never held while a remote transfer is in
// flight, so callbacks reconcile against the store instead of vault memory.
type Vault struct {
	mu         sync.Mutex
	address    domain.Address
	store      store.Store
	ledger     *ledger.Ledger
	transferor assetregistry.Transferor
}

// New creates a vault handle for address. The handle is cheap; the vault's
// real state lives in the store and may not exist yet.
func New(address domain.Address, s store.Store, l *ledger.Ledger, t assetregistry.Transferor) *Vault {
	return &Vault{
		address:    address,
		store:      s,
		ledger:     l,
		transferor: t,
	}
}

// Address returns the vault's account address
func (v *Vault) Address() domain.Address {
	return v.address
}

// InitParams are the one-time initialization arguments
type InitParams struct {
	Origin domain.AssetOriginID `json:"origin"`
	Name   string               `json:"name"`
	Symbol string               `json:"symbol"`
	Media  string               `json:"media"`
}

// Init initializes the vault exactly once. The caller becomes the only
// principal allowed to update parameters later. The ledger is seeded with one
// unit credited to the vault's own account; that seed is never withdrawable,
// which is what makes the reported supply formula subtract one.
func (v *Vault) Init(ctx context.Context, caller domain.Address, params InitParams) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !params.Origin.Valid() {
		return fmt.Errorf("invalid origin %q", params.Origin)
	}

	unitValue := domain.DefaultUnitValue()
	state := &schema.VaultState{
		VaultAddress:    v.address.String(),
		Origin:          string(params.Origin),
		RegistryAddress: caller.String(),
		UnitValue:       unitValue.String(),
		TotalSupply:     "0",
		Name:            params.Name,
		Symbol:          params.Symbol,
		Media:           params.Media,
	}
	if err := v.store.CreateVaultState(ctx, state); err != nil {
		return err
	}

	if err := v.ledger.Register(ctx, v.address.String(), v.address.String()); err != nil {
		return err
	}
	if err := v.ledger.Mint(ctx, v.address.String(), v.address.String(), unitValue); err != nil {
		return fmt.Errorf("failed to seed ledger: %w", err)
	}

	logger.InfoCtx(ctx, "vault initialized",
		zap.String("vault", v.address.String()),
		zap.String("origin", string(params.Origin)),
		zap.String("registry", caller.String()))
	return nil
}

func (v *Vault) state(ctx context.Context) (*schema.VaultState, error) {
	state, err := v.store.GetVaultState(ctx, v.address.String())
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, domain.ErrNotInitialized
	}
	return state, nil
}

// Info returns the public projection of the vault. The reported supply is the
// count of deposited assets, derived as total_supply/unit_value minus the
// seed unit. A total supply below one unit value means the seed is missing,
// which is a corruption signal, so the derivation rejects instead of wrapping.
func (v *Vault) Info(ctx context.Context) (*domain.PublicVaultInfo, error) {
	state, err := v.state(ctx)
	if err != nil {
		return nil, err
	}

	unitValue, err := domain.ParseAmount(state.UnitValue)
	if err != nil {
		return nil, fmt.Errorf("failed to parse unit value: %w", err)
	}
	totalSupply, err := domain.ParseAmount(state.TotalSupply)
	if err != nil {
		return nil, fmt.Errorf("failed to parse total supply: %w", err)
	}
	if totalSupply.Cmp(unitValue) < 0 {
		return nil, domain.ErrSupplyUnderflow
	}

	reported, err := totalSupply.Div(unitValue).Sub(domain.NewAmount(1))
	if err != nil {
		return nil, domain.ErrSupplyUnderflow
	}

	return &domain.PublicVaultInfo{
		Name:           state.Name,
		Symbol:         state.Symbol,
		ReportedSupply: reported.String(),
		Media:          state.Media,
	}, nil
}

// Deposit locks assetID in custody and mints one unit value of shares to the
// caller. The mint happens before the custody transfer confirms; the transfer
// intent row is the reconciliation record for that window. Returns the
// transfer request ID.
func (v *Vault) Deposit(ctx context.Context, caller domain.Address, assetID domain.AssetID) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.depositLocked(ctx, caller, assetID)
}

// BatchDeposit deposits several assets in one local step. Shares are credited
// per asset; each asset gets its own custody transfer and intent.
func (v *Vault) BatchDeposit(ctx context.Context, caller domain.Address, assetIDs []domain.AssetID) ([]string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	requestIDs := make([]string, 0, len(assetIDs))
	for _, assetID := range assetIDs {
		id, err := v.depositLocked(ctx, caller, assetID)
		if err != nil {
			return requestIDs, err
		}
		requestIDs = append(requestIDs, id)
	}
	return requestIDs, nil
}

func (v *Vault) depositLocked(ctx context.Context, caller domain.Address, assetID domain.AssetID) (string, error) {
	state, err := v.state(ctx)
	if err != nil {
		return "", err
	}
	if !assetID.Valid() {
		return "", fmt.Errorf("invalid asset id")
	}

	unitValue, err := domain.ParseAmount(state.UnitValue)
	if err != nil {
		return "", fmt.Errorf("failed to parse unit value: %w", err)
	}

	requestID, err := v.newIntent(ctx, schema.TransferDirectionIn, assetID, caller)
	if err != nil {
		return "", err
	}
	if err := v.ledger.Mint(ctx, v.address.String(), caller.String(), unitValue); err != nil {
		v.failIntent(ctx, requestID, err.Error())
		return "", err
	}
	if err := v.dispatchTransfer(ctx, state, requestID, assetID, caller, v.address); err != nil {
		// The transfer never left the process, so the mint is reverted
		if burnErr := v.ledger.Burn(ctx, v.address.String(), caller.String(), unitValue); burnErr != nil {
			logger.ErrorCtx(ctx, errors.New("failed to revert mint after dispatch failure"),
				zap.String("request_id", requestID), zap.Error(burnErr))
		}
		v.failIntent(ctx, requestID, err.Error())
		return "", err
	}
	return requestID, nil
}

// Withdraw burns one unit value of the caller's shares and releases assetID
// from custody. The balance precondition is checked before any mutation; the
// burn commits before the outbound transfer is issued.
func (v *Vault) Withdraw(ctx context.Context, caller domain.Address, assetID domain.AssetID) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.withdrawLocked(ctx, caller, assetID)
}

// BatchWithdraw withdraws several assets in one local step. The whole batch
// is rejected up front when the caller's balance cannot cover it.
func (v *Vault) BatchWithdraw(ctx context.Context, caller domain.Address, assetIDs []domain.AssetID) ([]string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	state, err := v.state(ctx)
	if err != nil {
		return nil, err
	}
	unitValue, err := domain.ParseAmount(state.UnitValue)
	if err != nil {
		return nil, fmt.Errorf("failed to parse unit value: %w", err)
	}
	needed := unitValue.MulUint64(uint64(len(assetIDs)))
	balance, err := v.ledger.BalanceOf(ctx, v.address.String(), caller.String())
	if err != nil {
		return nil, err
	}
	if balance.Cmp(needed) < 0 {
		return nil, domain.ErrInsufficientShares
	}

	requestIDs := make([]string, 0, len(assetIDs))
	for _, assetID := range assetIDs {
		id, err := v.withdrawLocked(ctx, caller, assetID)
		if err != nil {
			return requestIDs, err
		}
		requestIDs = append(requestIDs, id)
	}
	return requestIDs, nil
}

func (v *Vault) withdrawLocked(ctx context.Context, caller domain.Address, assetID domain.AssetID) (string, error) {
	state, err := v.state(ctx)
	if err != nil {
		return "", err
	}
	if !assetID.Valid() {
		return "", fmt.Errorf("invalid asset id")
	}

	unitValue, err := domain.ParseAmount(state.UnitValue)
	if err != nil {
		return "", fmt.Errorf("failed to parse unit value: %w", err)
	}

	requestID, err := v.newIntent(ctx, schema.TransferDirectionOut, assetID, caller)
	if err != nil {
		return "", err
	}
	if err := v.ledger.Burn(ctx, v.address.String(), caller.String(), unitValue); err != nil {
		v.failIntent(ctx, requestID, err.Error())
		return "", err
	}
	if err := v.dispatchTransfer(ctx, state, requestID, assetID, caller, caller); err != nil {
		// The asset never left custody, so the burned shares are restored
		if mintErr := v.ledger.Mint(ctx, v.address.String(), caller.String(), unitValue); mintErr != nil {
			logger.ErrorCtx(ctx, errors.New("failed to restore shares after dispatch failure"),
				zap.String("request_id", requestID), zap.Error(mintErr))
		}
		v.failIntent(ctx, requestID, err.Error())
		return "", err
	}
	return requestID, nil
}

// Swap exchanges custody of one locked asset for another without touching the
// ledger: the caller's asset moves into custody and the requested asset moves
// out, as two independent transfers. Ownership of the outgoing asset is not
// verified against the caller.
func (v *Vault) Swap(ctx context.Context, caller domain.Address, assetIn, assetOut domain.AssetID) (inRequestID, outRequestID string, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	state, err := v.state(ctx)
	if err != nil {
		return "", "", err
	}
	if !assetIn.Valid() || !assetOut.Valid() {
		return "", "", fmt.Errorf("invalid asset id")
	}

	inRequestID, err = v.newIntent(ctx, schema.TransferDirectionIn, assetIn, caller)
	if err != nil {
		return "", "", err
	}
	if err = v.dispatchTransfer(ctx, state, inRequestID, assetIn, caller, v.address); err != nil {
		v.failIntent(ctx, inRequestID, err.Error())
		return "", "", err
	}
	outRequestID, err = v.newIntent(ctx, schema.TransferDirectionOut, assetOut, caller)
	if err != nil {
		return inRequestID, "", err
	}
	if err = v.dispatchTransfer(ctx, state, outRequestID, assetOut, caller, caller); err != nil {
		v.failIntent(ctx, outRequestID, err.Error())
		return inRequestID, "", err
	}
	return inRequestID, outRequestID, nil
}

// newIntent journals a custody transfer before any ledger mutation or
// dispatch, so even a locally failed operation stays visible on the
// reconciliation surface.
func (v *Vault) newIntent(ctx context.Context, direction schema.TransferDirection, assetID domain.AssetID, counterparty domain.Address) (string, error) {
	requestID := xcall.NewRequestID()
	intent := &schema.TransferIntent{
		RequestID:    requestID,
		VaultAddress: v.address.String(),
		Direction:    direction,
		AssetID:      string(assetID),
		Counterparty: counterparty.String(),
		Status:       schema.IntentStatusPending,
	}
	if err := v.store.CreateTransferIntent(ctx, intent); err != nil {
		return "", fmt.Errorf("failed to persist transfer intent: %w", err)
	}
	return requestID, nil
}

// dispatchTransfer asks the origin contract to move the asset. The dispatch
// context is detached from the caller's so the outcome resolves even after
// the initiating request is gone; the callback reconciles the intent and the
// ledger is never rolled back once the transfer has left the process.
func (v *Vault) dispatchTransfer(ctx context.Context, state *schema.VaultState, requestID string, assetID domain.AssetID, counterparty, receiver domain.Address) error {
	dispatchCtx := context.WithoutCancel(ctx)
	err := v.transferor.Transfer(dispatchCtx, requestID, v.address, domain.AssetOriginID(state.Origin), assetID, receiver,
		func(cbCtx context.Context, out xcall.Outcome) {
			v.reconcileTransfer(cbCtx, requestID, assetID, counterparty, out)
		})
	if err != nil {
		return fmt.Errorf("failed to issue transfer: %w", err)
	}
	return nil
}

// failIntent settles an intent whose transfer never left the process
func (v *Vault) failIntent(ctx context.Context, requestID, reason string) {
	if err := v.store.ResolveTransferIntent(ctx, requestID, schema.IntentStatusFailed, &reason); err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to mark transfer intent failed"),
			zap.String("request_id", requestID), zap.Error(err))
	}
}

// reconcileTransfer settles the saga intent for one custody transfer. A
// failed outcome is recorded and audited but never reverses the ledger; a
// pending outcome leaves the intent open for operators.
func (v *Vault) reconcileTransfer(ctx context.Context, requestID string, assetID domain.AssetID, counterparty domain.Address, out xcall.Outcome) {
	switch out.Status {
	case xcall.StatusResolved:
		if err := v.store.ResolveTransferIntent(ctx, requestID, schema.IntentStatusResolved, nil); err != nil {
			logger.ErrorCtx(ctx, errors.New("failed to resolve transfer intent"),
				zap.String("request_id", requestID), zap.Error(err))
		}
	case xcall.StatusFailed:
		reason := out.Reason
		if err := v.store.ResolveTransferIntent(ctx, requestID, schema.IntentStatusFailed, &reason); err != nil {
			logger.ErrorCtx(ctx, errors.New("failed to resolve transfer intent"),
				zap.String("request_id", requestID), zap.Error(err))
		}
		account := counterparty.String()
		event := &schema.AuditEvent{
			EventType:    schema.AuditEventTransferUnconfirmed,
			VaultAddress: v.address.String(),
			Account:      &account,
			Meta:         transferMeta(requestID, assetID, out.Reason),
		}
		if err := v.store.CreateAuditEvent(ctx, event); err != nil {
			logger.ErrorCtx(ctx, errors.New("failed to record transfer audit event"), zap.Error(err))
		}
		logger.WarnCtx(ctx, "asset transfer failed after ledger mutation",
			zap.String("vault", v.address.String()),
			zap.String("request_id", requestID),
			zap.String("asset_id", string(assetID)),
			zap.String("reason", out.Reason))
	case xcall.StatusPending:
		logger.WarnCtx(ctx, "asset transfer unresolved within budget",
			zap.String("vault", v.address.String()),
			zap.String("request_id", requestID),
			zap.String("asset_id", string(assetID)))
	}
}

// SetParams replaces the vault's metadata and unit value. Only the principal
// that initialized the vault may call this. Changing the unit value never
// rescales shares minted under the old value.
func (v *Vault) SetParams(ctx context.Context, caller domain.Address, name, symbol string, unitValue domain.Amount, media string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	state, err := v.state(ctx)
	if err != nil {
		return err
	}
	if caller.String() != state.RegistryAddress {
		return domain.ErrUnauthorized
	}

	if err := v.store.UpdateVaultParams(ctx, v.address.String(), name, symbol, unitValue.String(), media); err != nil {
		return err
	}
	logger.InfoCtx(ctx, "vault params updated",
		zap.String("vault", v.address.String()),
		zap.String("symbol", symbol))
	return nil
}

// Transfer moves shares between accounts. Shares are freely transferable and
// carry no asset-specific identity, so this never touches custody.
func (v *Vault) Transfer(ctx context.Context, caller, receiver domain.Address, amount domain.Amount) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, err := v.state(ctx); err != nil {
		return err
	}
	if !receiver.Valid() {
		return fmt.Errorf("invalid receiver address")
	}
	return v.ledger.Transfer(ctx, v.address.String(), caller.String(), receiver.String(), amount)
}

// CloseAccount removes the caller's share account, burning whatever balance
// remains. The vault's own seed account cannot be closed.
func (v *Vault) CloseAccount(ctx context.Context, caller domain.Address) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, err := v.state(ctx); err != nil {
		return err
	}
	if caller == v.address {
		return domain.ErrUnauthorized
	}
	return v.ledger.CloseAccount(ctx, v.address.String(), caller.String())
}

// TotalSupply returns the vault's total share supply
func (v *Vault) TotalSupply(ctx context.Context) (domain.Amount, error) {
	if _, err := v.state(ctx); err != nil {
		return domain.ZeroAmount(), err
	}
	return v.ledger.TotalSupply(ctx, v.address.String())
}

// BalanceOf returns account's share balance, zero when unregistered
func (v *Vault) BalanceOf(ctx context.Context, account domain.Address) (domain.Amount, error) {
	if _, err := v.state(ctx); err != nil {
		return domain.ZeroAmount(), err
	}
	return v.ledger.BalanceOf(ctx, v.address.String(), account.String())
}

// UnresolvedTransfers lists transfer intents still pending or failed,
// the reconciliation surface for the optimistic window.
func (v *Vault) UnresolvedTransfers(ctx context.Context) ([]schema.TransferIntent, error) {
	return v.store.ListUnresolvedTransferIntents(ctx, v.address.String())
}

func transferMeta(requestID string, assetID domain.AssetID, reason string) datatypes.JSON {
	meta, _ := json.Marshal(map[string]string{
		"request_id": requestID,
		"asset_id":   string(assetID),
		"reason":     reason,
	})
	return datatypes.JSON(meta)
}
