package token

import (
	"context"

	"p2p-loan-escrow/internal/domain/asset"
	tokenDomain "p2p-loan-escrow/internal/domain/token"
)

// Contract implements the fungible token over the shared balance store.
// Running it against a tx-bound BalanceRepository gives token legs the same
// all-or-nothing semantics as native legs.
type Contract struct {
	balances asset.BalanceRepository
	owner    string
}

var _ tokenDomain.Contract = (*Contract)(nil)

func NewContract(balances asset.BalanceRepository, owner string) *Contract {
	return &Contract{balances: balances, owner: owner}
}

func (c *Contract) Transfer(ctx context.Context, amount uint64, sender, recipient string) error {
	if amount == 0 {
		return asset.ErrInvalidAmount
	}
	if err := c.balances.Debit(ctx, sender, asset.KindToken, amount); err != nil {
		return err
	}
	return c.balances.Credit(ctx, recipient, asset.KindToken, amount)
}

func (c *Contract) BalanceOf(ctx context.Context, who string) (uint64, error) {
	return c.balances.Get(ctx, who, asset.KindToken)
}

func (c *Contract) Mint(ctx context.Context, amount uint64, recipient, caller string) error {
	if caller != c.owner {
		return tokenDomain.ErrNotOwner
	}
	if amount == 0 {
		return asset.ErrInvalidAmount
	}
	return c.balances.Credit(ctx, recipient, asset.KindToken, amount)
}
