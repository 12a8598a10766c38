package token

import (
	"context"
	"errors"
)

var (
	// ErrNotOwner rejects mint attempts by anyone but the configured owner.
	ErrNotOwner = errors.New("token: caller is not the contract owner")
)

// Contract is the SIP-010-style fungible token the collateral or principal
// leg can reference. Mint is a bootstrap fixture, restricted to a designated
// owner identity; it is not part of the lending core.
type Contract interface {
	Transfer(ctx context.Context, amount uint64, sender, recipient string) error
	BalanceOf(ctx context.Context, who string) (uint64, error)
	Mint(ctx context.Context, amount uint64, recipient, caller string) error
}
