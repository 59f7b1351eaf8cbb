package domain

import "math/big"

const (
	// UNIT_DECIMALS is the decimal scale of share units
	UNIT_DECIMALS = 24

	// UNIT_WHOLE_SHARES is the number of whole shares one deposited asset is worth
	UNIT_WHOLE_SHARES = 100
)

// DefaultUnitValue returns the design-constant unit value: 100 whole shares in
// the smallest denomination (100 * 10^24 share units per deposited asset).
func DefaultUnitValue() Amount {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(UNIT_DECIMALS), nil)
	return Amount{n: scale.Mul(scale, big.NewInt(UNIT_WHOLE_SHARES))}
}
