package uow

import (
	"context"

	"p2p-loan-escrow/internal/domain/asset"
	"p2p-loan-escrow/internal/domain/loan"
	"p2p-loan-escrow/internal/domain/step"
	"p2p-loan-escrow/internal/domain/token"
)

// Repos bundles the transaction-bound collaborators a write operation needs.
// Assets is built over the same tx as Balances/Token, so a leg that fails
// mid-operation rolls back every leg issued before it.
type Repos struct {
	Loans    loan.Repository
	Balances asset.BalanceRepository
	Token    token.Contract
	Assets   asset.Mover
	Steps    step.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn inside one database transaction.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then passes it in. Missing loan
	// surfaces as loan.ErrLoanNotFound.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
