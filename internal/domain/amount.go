package domain

import (
	"fmt"
	"math/big"
)

// Amount is an unsigned share quantity. Share units are scaled by 10^24, so
// values exceed uint64 range and are carried as big integers; the store
// persists them as numeric(78,0) strings. Amounts never go negative: any
// subtraction that would underflow is rejected instead of wrapping.
type Amount struct {
	n *big.Int
}

// ZeroAmount returns the zero amount
func ZeroAmount() Amount {
	return Amount{n: new(big.Int)}
}

// NewAmount returns an amount from a uint64
func NewAmount(v uint64) Amount {
	return Amount{n: new(big.Int).SetUint64(v)}
}

// ParseAmount parses a base-10 amount string. Negative or malformed input is rejected.
func ParseAmount(s string) (Amount, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("failed to parse amount %q", s)
	}
	if n.Sign() < 0 {
		return Amount{}, fmt.Errorf("failed to parse amount %q: negative", s)
	}
	return Amount{n: n}, nil
}

func (a Amount) big() *big.Int {
	if a.n == nil {
		return new(big.Int)
	}
	return a.n
}

// Add returns a + b
func (a Amount) Add(b Amount) Amount {
	return Amount{n: new(big.Int).Add(a.big(), b.big())}
}

// Sub returns a - b, or ErrAmountUnderflow if b > a
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.Cmp(b) < 0 {
		return Amount{}, ErrAmountUnderflow
	}
	return Amount{n: new(big.Int).Sub(a.big(), b.big())}, nil
}

// MulUint64 returns a * v
func (a Amount) MulUint64(v uint64) Amount {
	return Amount{n: new(big.Int).Mul(a.big(), new(big.Int).SetUint64(v))}
}

// Div returns the integer quotient a / b; b must be non-zero
func (a Amount) Div(b Amount) Amount {
	return Amount{n: new(big.Int).Quo(a.big(), b.big())}
}

// Cmp compares a and b, returning -1, 0 or 1
func (a Amount) Cmp(b Amount) int {
	return a.big().Cmp(b.big())
}

// IsZero reports whether the amount is zero
func (a Amount) IsZero() bool {
	return a.big().Sign() == 0
}

// String renders the amount as a base-10 integer string
func (a Amount) String() string {
	return a.big().String()
}

// MarshalJSON encodes the amount as a JSON string, U128-style
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON decodes a JSON string amount
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
