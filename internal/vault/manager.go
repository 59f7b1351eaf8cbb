package vault

import (
	"sync"

	"github.com/yoshitoke/nft141d/internal/assetregistry"
	"github.com/yoshitoke/nft141d/internal/domain"
	"github.com/yoshitoke/nft141d/internal/ledger"
	"github.com/yoshitoke/nft141d/internal/store"
	"github.com/yoshitoke/nft141d/internal/xcall"
)

// Manager hands out one vault handle per address so every caller shares the
// same mutex for a given vault. New handles register the vault's contract
// surface on the bus.
type Manager struct {
	mu         sync.Mutex
	vaults     map[domain.Address]*Vault
	store      store.Store
	ledger     *ledger.Ledger
	transferor assetregistry.Transferor
	bus        *xcall.Bus
}

// NewManager creates a vault manager. bus may be nil when no in-process call
// surface is needed.
func NewManager(s store.Store, l *ledger.Ledger, t assetregistry.Transferor, bus *xcall.Bus) *Manager {
	return &Manager{
		vaults:     make(map[domain.Address]*Vault),
		store:      s,
		ledger:     l,
		transferor: t,
		bus:        bus,
	}
}

// Get returns the vault handle for address, creating and registering it on
// first use.
func (m *Manager) Get(address domain.Address) *Vault {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.vaults[address]; ok {
		return v
	}
	v := New(address, m.store, m.ledger, m.transferor)
	m.vaults[address] = v
	if m.bus != nil {
		m.bus.Register(address.String(), v.Handler())
	}
	return v
}
