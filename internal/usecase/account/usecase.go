package account

import (
	"context"

	"p2p-loan-escrow/internal/domain/asset"
	"p2p-loan-escrow/internal/domain/token"
	"p2p-loan-escrow/internal/domain/uow"
)

// Usecase serves account balance reads and the native deposit fixture.
type Usecase struct {
	balances asset.BalanceRepository
	uow      uow.UnitOfWork
	owner    string // identity allowed to seed native balances
}

func NewUsecase(balances asset.BalanceRepository, tx uow.UnitOfWork, owner string) *Usecase {
	return &Usecase{balances: balances, uow: tx, owner: owner}
}

type BalancesDTO struct {
	Account string `json:"account"`
	Native  uint64 `json:"native"`
	Token   uint64 `json:"token"`
}

func (u *Usecase) Balances(ctx context.Context, accountID string) (*BalancesDTO, error) {
	native, err := u.balances.Get(ctx, accountID, asset.KindNative)
	if err != nil {
		return nil, err
	}
	tok, err := u.balances.Get(ctx, accountID, asset.KindToken)
	if err != nil {
		return nil, err
	}
	return &BalancesDTO{Account: accountID, Native: native, Token: tok}, nil
}

type DepositInput struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

// DepositNative seeds a native balance. Owner-gated, mirroring token mint.
func (u *Usecase) DepositNative(ctx context.Context, caller string, in DepositInput) error {
	if caller != u.owner {
		return token.ErrNotOwner
	}
	if in.Amount == 0 {
		return asset.ErrInvalidAmount
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Balances.Credit(ctx, in.Recipient, asset.KindNative, in.Amount)
	})
}
