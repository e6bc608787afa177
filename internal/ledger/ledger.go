package ledger

import (
	"context"
	"math/big"

	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/store"
)

// Ledger holds token balances in the same key space as the hub state, so a
// transfer commits or rolls back together with the bookkeeping that caused it.
type Ledger struct {
	kv store.KV
}

func New(kv store.KV) *Ledger {
	return &Ledger{kv: kv}
}

func balanceKey(a address.Address) string {
	return "balance:" + a.String()
}

func (l *Ledger) Balance(ctx context.Context, a address.Address) (*big.Int, error) {
	bal, err := store.GetBigInt(ctx, l.kv, balanceKey(a))
	if err != nil {
		return nil, apperrors.Internal("Error reading balance", err)
	}
	return bal, nil
}

func (l *Ledger) setBalance(ctx context.Context, a address.Address, bal *big.Int) error {
	if err := store.SetBigInt(ctx, l.kv, balanceKey(a), bal); err != nil {
		return apperrors.Internal("Error saving balance", err)
	}
	return nil
}

func (l *Ledger) Credit(ctx context.Context, a address.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return apperrors.Validation("Deposit amount must be greater than 0")
	}
	bal, err := l.Balance(ctx, a)
	if err != nil {
		return err
	}
	return l.setBalance(ctx, a, bal.Add(bal, amount))
}

// Transfer moves amount from one account to another. A zero amount is a no-op.
func (l *Ledger) Transfer(ctx context.Context, from, to address.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return apperrors.Validation("Transfer amount must not be negative")
	}
	if amount.Sign() == 0 || from == to {
		return nil
	}

	fromBal, err := l.Balance(ctx, from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return apperrors.State("Insufficient funds")
	}
	toBal, err := l.Balance(ctx, to)
	if err != nil {
		return err
	}

	if err := l.setBalance(ctx, from, fromBal.Sub(fromBal, amount)); err != nil {
		return err
	}
	return l.setBalance(ctx, to, toBal.Add(toBal, amount))
}
