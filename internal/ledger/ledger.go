// Package ledger implements the fungible share accounting used by every
// vault. Balances and total supply live in the store as decimal strings;
// all arithmetic goes through domain.Amount so 128-bit unit values never
// overflow.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/yoshitoke/nft141d/internal/domain"
	"github.com/yoshitoke/nft141d/internal/logger"
	"github.com/yoshitoke/nft141d/internal/store"
	"github.com/yoshitoke/nft141d/internal/store/schema"
)

// Ledger performs share accounting for one or more vaults backed by a store
type Ledger struct {
	store store.Store
}

// New creates a ledger over the given store
func New(s store.Store) *Ledger {
	return &Ledger{store: s}
}

// Register creates a zero-balance account row if none exists. Registration is
// idempotent; re-registering an existing account is a no-op.
func (l *Ledger) Register(ctx context.Context, vaultAddress, account string) error {
	if err := l.store.RegisterShareAccount(ctx, vaultAddress, account); err != nil {
		return fmt.Errorf("failed to register share account: %w", err)
	}
	return nil
}

// Mint credits amount to account and grows the total supply by the same
// amount. The account is registered implicitly if needed.
func (l *Ledger) Mint(ctx context.Context, vaultAddress, account string, amount domain.Amount) error {
	if amount.IsZero() {
		return nil
	}
	if err := l.store.CreditShares(ctx, vaultAddress, account, amount.String()); err != nil {
		return fmt.Errorf("failed to mint shares: %w", err)
	}
	logger.DebugCtx(ctx, "minted shares",
		zap.String("vault", vaultAddress),
		zap.String("account", account),
		zap.String("amount", amount.String()))
	return nil
}

// Burn debits amount from account and shrinks the total supply by the same
// amount. Returns domain.ErrInsufficientShares when the account balance cannot
// cover the amount. An audit event records every burn.
func (l *Ledger) Burn(ctx context.Context, vaultAddress, account string, amount domain.Amount) error {
	if amount.IsZero() {
		return nil
	}
	if err := l.store.DebitShares(ctx, vaultAddress, account, amount.String()); err != nil {
		return fmt.Errorf("failed to burn shares: %w", err)
	}

	burned := amount.String()
	event := &schema.AuditEvent{
		EventType:    schema.AuditEventTokensBurned,
		VaultAddress: vaultAddress,
		Account:      &account,
		Amount:       &burned,
	}
	if err := l.store.CreateAuditEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to record burn audit event"), zap.Error(err))
	}

	logger.InfoCtx(ctx, "burned shares",
		zap.String("vault", vaultAddress),
		zap.String("account", account),
		zap.String("amount", amount.String()))
	return nil
}

// CloseAccount burns whatever balance the account still holds and records an
// account-closed audit event. Closing an unregistered or empty account only
// writes the audit row.
func (l *Ledger) CloseAccount(ctx context.Context, vaultAddress, account string) error {
	balance, err := l.BalanceOf(ctx, vaultAddress, account)
	if err != nil {
		return err
	}
	if !balance.IsZero() {
		if err := l.store.DebitShares(ctx, vaultAddress, account, balance.String()); err != nil {
			return fmt.Errorf("failed to burn closed account balance: %w", err)
		}
	}

	burned := balance.String()
	event := &schema.AuditEvent{
		EventType:    schema.AuditEventAccountClosed,
		VaultAddress: vaultAddress,
		Account:      &account,
		Amount:       &burned,
	}
	if err := l.store.CreateAuditEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to record account closed audit event"), zap.Error(err))
	}

	logger.InfoCtx(ctx, "closed share account",
		zap.String("vault", vaultAddress),
		zap.String("account", account),
		zap.String("burned", balance.String()))
	return nil
}

// Transfer moves amount from one account to another without changing the
// total supply. Both legs run against the store sequentially; the debit is
// applied first so an insufficient balance never credits the receiver.
func (l *Ledger) Transfer(ctx context.Context, vaultAddress, from, to string, amount domain.Amount) error {
	if amount.IsZero() || from == to {
		return nil
	}
	if err := l.store.DebitShares(ctx, vaultAddress, from, amount.String()); err != nil {
		return fmt.Errorf("failed to debit sender: %w", err)
	}
	if err := l.store.CreditShares(ctx, vaultAddress, to, amount.String()); err != nil {
		return fmt.Errorf("failed to credit receiver: %w", err)
	}
	return nil
}

// BalanceOf returns the balance of account, zero when the account is not
// registered.
func (l *Ledger) BalanceOf(ctx context.Context, vaultAddress, account string) (domain.Amount, error) {
	balance, err := l.store.GetShareBalance(ctx, vaultAddress, account)
	if err != nil {
		return domain.ZeroAmount(), fmt.Errorf("failed to get share balance: %w", err)
	}
	if balance == nil {
		return domain.ZeroAmount(), nil
	}
	amount, err := domain.ParseAmount(balance.Balance)
	if err != nil {
		return domain.ZeroAmount(), fmt.Errorf("failed to parse stored balance: %w", err)
	}
	return amount, nil
}

// TotalSupply returns the vault's total share supply
func (l *Ledger) TotalSupply(ctx context.Context, vaultAddress string) (domain.Amount, error) {
	supply, err := l.store.GetTotalSupply(ctx, vaultAddress)
	if err != nil {
		return domain.ZeroAmount(), fmt.Errorf("failed to get total supply: %w", err)
	}
	amount, err := domain.ParseAmount(supply)
	if err != nil {
		return domain.ZeroAmount(), fmt.Errorf("failed to parse stored supply: %w", err)
	}
	return amount, nil
}
