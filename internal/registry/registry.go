// Package registry implements the factory component that constructs one vault
// per asset-origin class and aggregates their public info. The registry is the
// only writer of the append-only vault record table; record commit is deferred
// until a new vault confirms its initialization, so a record never points at a
// vault that failed to come up.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yoshitoke/nft141d/internal/domain"
	"github.com/yoshitoke/nft141d/internal/logger"
	"github.com/yoshitoke/nft141d/internal/store"
	"github.com/yoshitoke/nft141d/internal/store/schema"
	"github.com/yoshitoke/nft141d/internal/vault"
	"github.com/yoshitoke/nft141d/internal/xcall"
)

// FeeRateKey is the key-value entry holding the stored fee rate
const FeeRateKey = "registry_fee_rate"

// Config carries the registry's identity and policy settings
type Config struct {
	// Address is the registry's own account address
	Address domain.Address
	// Admin is the only principal allowed to change vault params or the fee
	Admin domain.Address
	// FundingGrant is the balance granted to a new vault account, recorded
	// as an audit row at provisioning time
	FundingGrant string
	// CallBudget bounds every outbound call the registry issues
	CallBudget time.Duration
}

// Registry is the vault factory and info aggregator
type Registry struct {
	mu         sync.Mutex
	cfg        Config
	store      store.Store
	dispatcher xcall.Dispatcher
	vaults     *vault.Manager
}

// New creates a registry over the given store, dispatcher and vault manager
func New(cfg Config, s store.Store, d xcall.Dispatcher, vaults *vault.Manager) *Registry {
	return &Registry{
		cfg:        cfg,
		store:      s,
		dispatcher: d,
		vaults:     vaults,
	}
}

// Address returns the registry's own account address
func (r *Registry) Address() domain.Address {
	return r.cfg.Address
}

// Admin returns the administrator principal
func (r *Registry) Admin() domain.Address {
	return r.cfg.Admin
}

// call issues req and blocks until its single outcome arrives. A failed
// outcome maps to ErrCallFailed, a pending one to ErrCallPending.
func (r *Registry) call(ctx context.Context, req xcall.Request) (json.RawMessage, error) {
	req.Budget = r.cfg.CallBudget
	outCh := make(chan xcall.Outcome, 1)
	err := r.dispatcher.Call(ctx, req, func(_ context.Context, out xcall.Outcome) {
		outCh <- out
	})
	if err != nil {
		return nil, fmt.Errorf("failed to issue call: %w", err)
	}

	select {
	case out := <-outCh:
		switch out.Status {
		case xcall.StatusResolved:
			return out.Value, nil
		case xcall.StatusFailed:
			return nil, fmt.Errorf("%w: %s", domain.ErrCallFailed, out.Reason)
		default:
			return nil, domain.ErrCallPending
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// CreateVault provisions a new vault for origin and returns its committed
// record. The vault address derives deterministically from the symbol under
// the registry's own address. The record is appended only after the vault's
// init call resolves; until then a provision intent row tracks the attempt.
func (r *Registry) CreateVault(ctx context.Context, name string, origin domain.AssetOriginID, symbol, media string) (*domain.VaultRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !origin.Valid() {
		return nil, fmt.Errorf("invalid origin %q", origin)
	}
	if symbol == "" {
		return nil, fmt.Errorf("symbol must not be empty")
	}

	existing, err := r.store.GetVaultRecordByOrigin(ctx, string(origin))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrOriginAlreadyRegistered
	}

	vaultAddress := domain.DeriveVaultAddress(symbol, r.cfg.Address)
	if !vaultAddress.Valid() {
		return nil, fmt.Errorf("derived vault address %q is not a valid account", vaultAddress)
	}
	r.vaults.Get(vaultAddress)

	req, err := xcall.NewRequest(r.cfg.Address.String(), vaultAddress.String(), "init", vault.InitParams{
		Origin: origin,
		Name:   name,
		Symbol: symbol,
		Media:  media,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build init request: %w", err)
	}

	intent := &schema.ProvisionIntent{
		RequestID:    req.ID,
		Origin:       string(origin),
		VaultAddress: vaultAddress.String(),
		Symbol:       symbol,
		Status:       schema.IntentStatusPending,
	}
	if err := r.store.CreateProvisionIntent(ctx, intent); err != nil {
		return nil, err
	}
	r.recordFundingGrant(ctx, vaultAddress)

	if _, err := r.call(ctx, req); err != nil {
		reason := err.Error()
		if resolveErr := r.store.ResolveProvisionIntent(ctx, req.ID, schema.IntentStatusFailed, &reason); resolveErr != nil {
			logger.ErrorCtx(ctx, errors.New("failed to mark provision intent failed"),
				zap.String("request_id", req.ID), zap.Error(resolveErr))
		}
		return nil, fmt.Errorf("vault init did not complete: %w", err)
	}

	if err := r.store.ResolveProvisionIntent(ctx, req.ID, schema.IntentStatusResolved, nil); err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to mark provision intent resolved"),
			zap.String("request_id", req.ID), zap.Error(err))
	}

	record, err := r.store.AppendVaultRecord(ctx, string(origin), vaultAddress.String())
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "vault created",
		zap.Uint64("index", record.VaultIndex),
		zap.String("origin", string(origin)),
		zap.String("vault", vaultAddress.String()))

	return &domain.VaultRecord{
		Index:        record.VaultIndex,
		Origin:       origin,
		VaultAddress: vaultAddress,
	}, nil
}

func (r *Registry) recordFundingGrant(ctx context.Context, vaultAddress domain.Address) {
	if r.cfg.FundingGrant == "" {
		return
	}
	grant := r.cfg.FundingGrant
	event := &schema.AuditEvent{
		EventType:    schema.AuditEventFundingGranted,
		VaultAddress: vaultAddress.String(),
		Amount:       &grant,
	}
	if err := r.store.CreateAuditEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to record funding grant"), zap.Error(err))
	}
}

// VaultCount returns the number of committed vaults
func (r *Registry) VaultCount(ctx context.Context) (uint64, error) {
	return r.store.CountVaults(ctx)
}

// VaultAddressByIndex resolves a registry index to a vault address
func (r *Registry) VaultAddressByIndex(ctx context.Context, index uint64) (domain.Address, error) {
	record, err := r.store.GetVaultRecordByIndex(ctx, index)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", domain.ErrVaultNotFound
	}
	return domain.Address(record.VaultAddress), nil
}

// VaultInfoByIndex fetches a vault's current public info and refreshes the
// cache entry for that index. Failed or unresolved calls surface as typed
// errors and leave the cache untouched.
func (r *Registry) VaultInfoByIndex(ctx context.Context, index uint64) (*domain.PublicVaultInfo, error) {
	address, err := r.VaultAddressByIndex(ctx, index)
	if err != nil {
		return nil, err
	}

	// Materialize the vault handle so a vault created by an earlier process
	// is reachable on the bus before the call goes out
	r.vaults.Get(address)

	req, err := xcall.NewRequest(r.cfg.Address.String(), address.String(), "get_info", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build info request: %w", err)
	}

	value, err := r.call(ctx, req)
	if err != nil {
		logger.WarnCtx(ctx, "vault info call did not resolve",
			zap.Uint64("index", index),
			zap.String("vault", address.String()),
			zap.Error(err))
		return nil, err
	}

	var info domain.PublicVaultInfo
	if err := json.Unmarshal(value, &info); err != nil {
		return nil, fmt.Errorf("failed to decode vault info: %w", err)
	}

	r.cacheInfo(ctx, index, &info)
	return &info, nil
}

func (r *Registry) cacheInfo(ctx context.Context, index uint64, info *domain.PublicVaultInfo) {
	entry := &schema.VaultInfoCache{
		VaultIndex:     index,
		Name:           info.Name,
		Symbol:         info.Symbol,
		ReportedSupply: info.ReportedSupply,
		Media:          info.Media,
		RefreshedAt:    time.Now().UTC(),
	}
	if err := r.store.UpsertVaultInfo(ctx, entry); err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to cache vault info"),
			zap.Uint64("index", index), zap.Error(err))
	}
}

// RefreshAll clears the info cache and issues one info call per vault. The
// calls are initiated in index order but resolve independently; entries are
// keyed by index so arrival order cannot corrupt the cache. Returns the
// number of calls issued.
func (r *Registry) RefreshAll(ctx context.Context) (int, error) {
	records, err := r.store.ListVaultRecords(ctx)
	if err != nil {
		return 0, err
	}
	if err := r.store.ClearVaultInfoCache(ctx); err != nil {
		return 0, err
	}

	// Refresh outcomes arrive after the initiating request is gone, so the
	// dispatch context must outlive it
	dispatchCtx := context.WithoutCancel(ctx)

	issued := 0
	for _, record := range records {
		index := record.VaultIndex
		r.vaults.Get(domain.Address(record.VaultAddress))
		req, err := xcall.NewRequest(r.cfg.Address.String(), record.VaultAddress, "get_info", nil)
		if err != nil {
			return issued, fmt.Errorf("failed to build info request: %w", err)
		}
		req.Budget = r.cfg.CallBudget

		err = r.dispatcher.Call(dispatchCtx, req, func(cbCtx context.Context, out xcall.Outcome) {
			if out.Status != xcall.StatusResolved {
				logger.WarnCtx(cbCtx, "vault info refresh did not resolve",
					zap.Uint64("index", index),
					zap.String("status", string(out.Status)),
					zap.String("reason", out.Reason))
				return
			}
			var info domain.PublicVaultInfo
			if err := json.Unmarshal(out.Value, &info); err != nil {
				logger.ErrorCtx(cbCtx, errors.New("malformed vault info reply"),
					zap.Uint64("index", index), zap.Error(err))
				return
			}
			r.cacheInfo(cbCtx, index, &info)
		})
		if err != nil {
			return issued, fmt.Errorf("failed to issue info call: %w", err)
		}
		issued++
	}
	return issued, nil
}

// CachedInfo is one info cache entry with its vault index
type CachedInfo struct {
	Index uint64                 `json:"index"`
	Info  domain.PublicVaultInfo `json:"info"`
}

// CachedInfos returns the current cache snapshot ordered by index. Entries
// whose refresh has not resolved yet are absent; none of this is a freshness
// guarantee.
func (r *Registry) CachedInfos(ctx context.Context) ([]CachedInfo, error) {
	entries, err := r.store.ListVaultInfo(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CachedInfo, 0, len(entries))
	for _, entry := range entries {
		out = append(out, CachedInfo{
			Index: entry.VaultIndex,
			Info: domain.PublicVaultInfo{
				Name:           entry.Name,
				Symbol:         entry.Symbol,
				ReportedSupply: entry.ReportedSupply,
				Media:          entry.Media,
			},
		})
	}
	return out, nil
}

// SetParams forwards a parameter update to a vault. Only the configured
// administrator may call this; the vault additionally verifies the request
// comes from its registry.
func (r *Registry) SetParams(ctx context.Context, caller, vaultAddress domain.Address, name, symbol string, unitValue domain.Amount, media string) error {
	if caller != r.cfg.Admin {
		return domain.ErrUnauthorized
	}

	req, err := xcall.NewRequest(r.cfg.Address.String(), vaultAddress.String(), "set_params", vault.SetParamsArgs{
		Name:      name,
		Symbol:    symbol,
		UnitValue: unitValue.String(),
		Media:     media,
	})
	if err != nil {
		return fmt.Errorf("failed to build set_params request: %w", err)
	}
	if _, err := r.call(ctx, req); err != nil {
		return err
	}
	return nil
}

// SetFee stores the registry fee rate. Admin-gated; nothing in the core
// consumes the rate yet.
func (r *Registry) SetFee(ctx context.Context, caller domain.Address, fee string) error {
	if caller != r.cfg.Admin {
		return domain.ErrUnauthorized
	}
	if _, err := domain.ParseAmount(fee); err != nil {
		return fmt.Errorf("malformed fee rate: %w", err)
	}
	return r.store.SetValue(ctx, FeeRateKey, fee)
}

// Fee returns the stored fee rate, empty when never set
func (r *Registry) Fee(ctx context.Context) (string, error) {
	return r.store.GetValue(ctx, FeeRateKey)
}
