package token

import (
	"context"

	"p2p-loan-escrow/internal/domain/asset"
	"p2p-loan-escrow/internal/domain/uow"
)

// Usecase exposes the token fixture operations. Mint/Transfer run inside the
// unit-of-work; the contract itself enforces the owner restriction.
type Usecase struct {
	balances asset.BalanceRepository
	uow      uow.UnitOfWork
}

func NewUsecase(balances asset.BalanceRepository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{balances: balances, uow: tx}
}

type TransferInput struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

type MintInput struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

// Transfer moves tokens from the authenticated caller. The sender is always
// the caller; it is never taken from the request body.
func (u *Usecase) Transfer(ctx context.Context, caller string, in TransferInput) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Token.Transfer(ctx, in.Amount, caller, in.Recipient)
	})
}

// Mint credits new tokens; the contract rejects callers other than the
// configured owner. Bootstrap fixture, not part of the lending core.
func (u *Usecase) Mint(ctx context.Context, caller string, in MintInput) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Token.Mint(ctx, in.Amount, in.Recipient, caller)
	})
}

func (u *Usecase) BalanceOf(ctx context.Context, who string) (uint64, error) {
	return u.balances.Get(ctx, who, asset.KindToken)
}
