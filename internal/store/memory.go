package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yoshitoke/nft141d/internal/domain"
	"github.com/yoshitoke/nft141d/internal/store/schema"
)

// memStore is an in-memory Store used by unit tests and the dev server mode.
// It mirrors the transactional semantics of the PostgreSQL store under a
// single mutex.
type memStore struct {
	mu sync.Mutex

	records          []schema.VaultRecord
	recordsByOrigin  map[string]int
	provisionIntents map[string]*schema.ProvisionIntent
	infoCache        map[uint64]*schema.VaultInfoCache
	vaultStates      map[string]*schema.VaultState
	balances         map[string]map[string]string
	transferIntents  map[string]*schema.TransferIntent
	auditEvents      []schema.AuditEvent
	keyValues        map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() Store {
	return &memStore{
		recordsByOrigin:  make(map[string]int),
		provisionIntents: make(map[string]*schema.ProvisionIntent),
		infoCache:        make(map[uint64]*schema.VaultInfoCache),
		vaultStates:      make(map[string]*schema.VaultState),
		balances:         make(map[string]map[string]string),
		transferIntents:  make(map[string]*schema.TransferIntent),
		keyValues:        make(map[string]string),
	}
}

func (s *memStore) CountVaults(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint64(len(s.records)), nil
}

func (s *memStore) GetVaultRecordByIndex(_ context.Context, index uint64) (*schema.VaultRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index >= uint64(len(s.records)) {
		return nil, nil
	}
	record := s.records[index]
	return &record, nil
}

func (s *memStore) GetVaultRecordByOrigin(_ context.Context, origin string) (*schema.VaultRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.recordsByOrigin[origin]
	if !ok {
		return nil, nil
	}
	record := s.records[i]
	return &record, nil
}

func (s *memStore) ListVaultRecords(_ context.Context) ([]schema.VaultRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]schema.VaultRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *memStore) AppendVaultRecord(_ context.Context, origin, vaultAddress string) (*schema.VaultRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recordsByOrigin[origin]; ok {
		return nil, domain.ErrOriginAlreadyRegistered
	}
	record := schema.VaultRecord{
		VaultIndex:   uint64(len(s.records)),
		Origin:       origin,
		VaultAddress: vaultAddress,
		CreatedAt:    time.Now().UTC(),
	}
	s.records = append(s.records, record)
	s.recordsByOrigin[origin] = len(s.records) - 1
	return &record, nil
}

func (s *memStore) CreateProvisionIntent(_ context.Context, intent *schema.ProvisionIntent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *intent
	s.provisionIntents[intent.RequestID] = &cp
	return nil
}

func (s *memStore) ResolveProvisionIntent(_ context.Context, requestID string, status schema.IntentStatus, reason *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	intent, ok := s.provisionIntents[requestID]
	if !ok {
		return nil
	}
	now := time.Now().UTC()
	intent.Status = status
	intent.Reason = reason
	intent.ResolvedAt = &now
	return nil
}

func (s *memStore) GetProvisionIntent(_ context.Context, requestID string) (*schema.ProvisionIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	intent, ok := s.provisionIntents[requestID]
	if !ok {
		return nil, nil
	}
	cp := *intent
	return &cp, nil
}

func (s *memStore) ClearVaultInfoCache(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infoCache = make(map[uint64]*schema.VaultInfoCache)
	return nil
}

func (s *memStore) UpsertVaultInfo(_ context.Context, entry *schema.VaultInfoCache) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *entry
	s.infoCache[entry.VaultIndex] = &cp
	return nil
}

func (s *memStore) ListVaultInfo(_ context.Context) ([]schema.VaultInfoCache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	indexes := make([]uint64, 0, len(s.infoCache))
	for index := range s.infoCache {
		indexes = append(indexes, index)
	}
	sort.Slice(indexes, func(i, j int) bool { return indexes[i] < indexes[j] })
	out := make([]schema.VaultInfoCache, 0, len(s.infoCache))
	for _, index := range indexes {
		out = append(out, *s.infoCache[index])
	}
	return out, nil
}

func (s *memStore) CreateVaultState(_ context.Context, state *schema.VaultState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vaultStates[state.VaultAddress]; ok {
		return domain.ErrAlreadyInitialized
	}
	cp := *state
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.vaultStates[state.VaultAddress] = &cp
	return nil
}

func (s *memStore) GetVaultState(_ context.Context, vaultAddress string) (*schema.VaultState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.vaultStates[vaultAddress]
	if !ok {
		return nil, nil
	}
	cp := *state
	return &cp, nil
}

func (s *memStore) UpdateVaultParams(_ context.Context, vaultAddress, name, symbol, unitValue, media string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.vaultStates[vaultAddress]
	if !ok {
		return domain.ErrVaultNotFound
	}
	state.Name = name
	state.Symbol = symbol
	state.UnitValue = unitValue
	state.Media = media
	state.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *memStore) GetShareBalance(_ context.Context, vaultAddress, account string) (*schema.ShareBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts, ok := s.balances[vaultAddress]
	if !ok {
		return nil, nil
	}
	balance, ok := accounts[account]
	if !ok {
		return nil, nil
	}
	return &schema.ShareBalance{
		VaultAddress: vaultAddress,
		Account:      account,
		Balance:      balance,
	}, nil
}

func (s *memStore) RegisterShareAccount(_ context.Context, vaultAddress, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts, ok := s.balances[vaultAddress]
	if !ok {
		accounts = make(map[string]string)
		s.balances[vaultAddress] = accounts
	}
	if _, ok := accounts[account]; !ok {
		accounts[account] = "0"
	}
	return nil
}

func (s *memStore) CreditShares(_ context.Context, vaultAddress, account, amount string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.vaultStates[vaultAddress]
	if !ok {
		return domain.ErrVaultNotFound
	}
	delta, err := domain.ParseAmount(amount)
	if err != nil {
		return err
	}
	accounts, ok := s.balances[vaultAddress]
	if !ok {
		accounts = make(map[string]string)
		s.balances[vaultAddress] = accounts
	}
	current, err := domain.ParseAmount(orZero(accounts[account]))
	if err != nil {
		return err
	}
	supply, err := domain.ParseAmount(orZero(state.TotalSupply))
	if err != nil {
		return err
	}
	accounts[account] = current.Add(delta).String()
	state.TotalSupply = supply.Add(delta).String()
	return nil
}

func (s *memStore) DebitShares(_ context.Context, vaultAddress, account, amount string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.vaultStates[vaultAddress]
	if !ok {
		return domain.ErrVaultNotFound
	}
	delta, err := domain.ParseAmount(amount)
	if err != nil {
		return err
	}
	accounts := s.balances[vaultAddress]
	current, err := domain.ParseAmount(orZero(accounts[account]))
	if err != nil {
		return err
	}
	newBalance, err := current.Sub(delta)
	if err != nil {
		return domain.ErrInsufficientShares
	}
	supply, err := domain.ParseAmount(orZero(state.TotalSupply))
	if err != nil {
		return err
	}
	newSupply, err := supply.Sub(delta)
	if err != nil {
		return domain.ErrSupplyUnderflow
	}
	accounts[account] = newBalance.String()
	state.TotalSupply = newSupply.String()
	return nil
}

func (s *memStore) GetTotalSupply(_ context.Context, vaultAddress string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.vaultStates[vaultAddress]
	if !ok {
		return "", domain.ErrVaultNotFound
	}
	return state.TotalSupply, nil
}

func (s *memStore) CreateTransferIntent(_ context.Context, intent *schema.TransferIntent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *intent
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	s.transferIntents[intent.RequestID] = &cp
	return nil
}

func (s *memStore) ResolveTransferIntent(_ context.Context, requestID string, status schema.IntentStatus, reason *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	intent, ok := s.transferIntents[requestID]
	if !ok {
		return nil
	}
	now := time.Now().UTC()
	intent.Status = status
	intent.Reason = reason
	intent.ResolvedAt = &now
	return nil
}

func (s *memStore) ListUnresolvedTransferIntents(_ context.Context, vaultAddress string) ([]schema.TransferIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []schema.TransferIntent
	for _, intent := range s.transferIntents {
		if intent.VaultAddress != vaultAddress {
			continue
		}
		if intent.Status == schema.IntentStatusResolved {
			continue
		}
		out = append(out, *intent)
	}
	return out, nil
}

func (s *memStore) CreateAuditEvent(_ context.Context, event *schema.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *event
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	s.auditEvents = append(s.auditEvents, cp)
	return nil
}

func (s *memStore) GetValue(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keyValues[key], nil
}

func (s *memStore) SetValue(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyValues[key] = value
	return nil
}

func orZero(v string) string {
	if v == "" {
		return "0"
	}
	return v
}
