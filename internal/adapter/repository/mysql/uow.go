package mysql

import (
	"context"
	"errors"

	assetAdapter "p2p-loan-escrow/internal/adapter/asset"
	tokenAdapter "p2p-loan-escrow/internal/adapter/token"
	"p2p-loan-escrow/internal/domain/loan"
	"p2p-loan-escrow/internal/domain/uow"

	"gorm.io/gorm"
)

// GormUoW builds tx-bound repos plus the asset mover on top of them, so
// every leg of an operation commits or rolls back as one unit.
type GormUoW struct {
	db         *gorm.DB
	tokenOwner string
}

func NewGormUoW(db *gorm.DB, tokenOwner string) *GormUoW {
	return &GormUoW{db: db, tokenOwner: tokenOwner}
}

func (u *GormUoW) repos(tx *gorm.DB) uow.Repos {
	balances := NewBalanceRepository(tx)
	contract := tokenAdapter.NewContract(balances, u.tokenOwner)
	return uow.Repos{
		Loans:    NewLoanRepository(tx),
		Balances: balances,
		Token:    contract,
		Assets:   assetAdapter.NewMover(balances, contract),
		Steps:    NewStepRepository(tx),
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(u.repos(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := u.repos(tx)
		// lock the loan row up-front to prevent races
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loan.ErrLoanNotFound
			}
			return err
		}
		return fn(r, l)
	})
}
