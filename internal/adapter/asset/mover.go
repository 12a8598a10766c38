package asset

import (
	"context"

	assetDomain "p2p-loan-escrow/internal/domain/asset"
	tokenDomain "p2p-loan-escrow/internal/domain/token"
)

// Mover dispatches the two asset kinds: native legs go straight to the
// balance store, token legs through the token contract's transfer entry
// point. It is only ever used by the loan ledger, which acts as the
// authorized delegate for the legs it orchestrates.
type Mover struct {
	balances assetDomain.BalanceRepository
	token    tokenDomain.Contract
}

var _ assetDomain.Mover = (*Mover)(nil)

func NewMover(balances assetDomain.BalanceRepository, contract tokenDomain.Contract) *Mover {
	return &Mover{balances: balances, token: contract}
}

func (m *Mover) Move(ctx context.Context, kind assetDomain.Kind, amount uint64, from, to string) error {
	if amount == 0 {
		return assetDomain.ErrInvalidAmount
	}
	switch kind {
	case assetDomain.KindNative:
		if err := m.balances.Debit(ctx, from, assetDomain.KindNative, amount); err != nil {
			return err
		}
		return m.balances.Credit(ctx, to, assetDomain.KindNative, amount)
	case assetDomain.KindToken:
		return m.token.Transfer(ctx, amount, from, to)
	default:
		return assetDomain.ErrUnknownKind
	}
}
