package domain

import (
	"regexp"
	"strings"
)

// Address is the account identity of an addressable component (registry, vault,
// asset registry or end-user account), in dotted account-ID form (e.g. "yti.registry").
type Address string

var accountIDPattern = regexp.MustCompile(`^(([a-z\d]+[-_])*[a-z\d]+\.)*([a-z\d]+[-_])*[a-z\d]+$`)

// Valid reports whether the address is a well-formed account ID
func (a Address) Valid() bool {
	if len(a) < 2 || len(a) > 64 {
		return false
	}
	return accountIDPattern.MatchString(string(a))
}

func (a Address) String() string {
	return string(a)
}

// AssetOriginID identifies the collection/class of unique assets a vault accepts.
// It doubles as the address of the external asset registry owning that collection.
type AssetOriginID string

// Valid reports whether the origin is a well-formed account ID
func (o AssetOriginID) Valid() bool {
	return Address(o).Valid()
}

// Address returns the origin as a callable address
func (o AssetOriginID) Address() Address {
	return Address(o)
}

// AssetID identifies one unique asset within an origin class
type AssetID string

// Valid reports whether the asset ID is non-empty
func (id AssetID) Valid() bool {
	return len(id) > 0
}

// VaultRecord maps a registry index to an asset origin and its vault address.
// Records are append-only; index assignment is monotonically increasing from 0.
type VaultRecord struct {
	Index        uint64        `json:"index"`
	Origin       AssetOriginID `json:"origin"`
	VaultAddress Address       `json:"vault_address"`
}

// PublicVaultInfo is the read-only projection of a vault's state aggregated by
// the registry. ReportedSupply counts deposited assets, not raw share units, and
// is derived at the vault (total_supply/unit_value - 1); it is not authoritative.
type PublicVaultInfo struct {
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	ReportedSupply string `json:"reported_supply"`
	// Media is a pass-through metadata URL, never validated
	Media string `json:"media"`
}

// DeriveVaultAddress derives the deterministic vault address for a symbol under
// a registry. The symbol namespaces the address below the registry's own
// account so two registries can never collide.
func DeriveVaultAddress(symbol string, registry Address) Address {
	prefix := strings.ReplaceAll(symbol, ".", "-")
	return Address(strings.ToLower(prefix + "." + string(registry)))
}
