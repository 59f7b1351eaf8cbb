package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoshitoke/nft141d/internal/domain"
)

func TestAddressValid(t *testing.T) {
	tests := []struct {
		name    string
		address domain.Address
		valid   bool
	}{
		{name: "simple account", address: "registry", valid: true},
		{name: "dotted account", address: "yti.registry.near", valid: true},
		{name: "hyphenated segment", address: "my-vault.registry", valid: true},
		{name: "uppercase rejected", address: "Registry", valid: false},
		{name: "empty rejected", address: "", valid: false},
		{name: "single char rejected", address: "a", valid: false},
		{name: "trailing dot rejected", address: "vault.", valid: false},
		{name: "leading separator rejected", address: "-vault", valid: false},
		{name: "space rejected", address: "my vault", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.address.Valid())
		})
	}
}

func TestDeriveVaultAddress(t *testing.T) {
	tests := []struct {
		name     string
		symbol   string
		registry domain.Address
		want     domain.Address
	}{
		{name: "plain symbol", symbol: "YTI", registry: "registry", want: "yti.registry"},
		{name: "dots become hyphens", symbol: "a.b", registry: "registry", want: "a-b.registry"},
		{name: "already lowercase", symbol: "punk", registry: "factory.near", want: "punk.factory.near"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DeriveVaultAddress(tt.symbol, tt.registry)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestAmountArithmetic(t *testing.T) {
	hundred := domain.NewAmount(100)
	forty := domain.NewAmount(40)

	sum := hundred.Add(forty)
	assert.Equal(t, "140", sum.String())

	diff, err := hundred.Sub(forty)
	require.NoError(t, err)
	assert.Equal(t, "60", diff.String())

	// Subtraction below zero must be rejected, never wrap
	_, err = forty.Sub(hundred)
	assert.ErrorIs(t, err, domain.ErrAmountUnderflow)

	assert.Equal(t, "300", hundred.MulUint64(3).String())
	assert.Equal(t, "2", hundred.Div(forty).String())
	assert.True(t, domain.ZeroAmount().IsZero())
}

func TestParseAmount(t *testing.T) {
	a, err := domain.ParseAmount("100000000000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "100000000000000000000000000", a.String())

	_, err = domain.ParseAmount("-5")
	assert.Error(t, err)

	_, err = domain.ParseAmount("abc")
	assert.Error(t, err)
}

func TestDefaultUnitValue(t *testing.T) {
	// 100 whole shares at 24 decimals
	assert.Equal(t, "100000000000000000000000000", domain.DefaultUnitValue().String())
}

func TestAmountJSON(t *testing.T) {
	a := domain.DefaultUnitValue()
	data, err := a.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"100000000000000000000000000"`, string(data))

	var back domain.Amount
	require.NoError(t, back.UnmarshalJSON(data))
	assert.Equal(t, 0, a.Cmp(back))
}
