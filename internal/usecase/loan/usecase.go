package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "p2p-loan-escrow/internal/domain/loan"
	"p2p-loan-escrow/internal/domain/uow"

	"gorm.io/gorm"
)

// Usecase owns the loan state machine. Every write operation runs inside one
// unit-of-work: precondition checks first, then the asset legs, then the
// status commit. Any failure rolls the whole operation back, including legs
// already issued in the same call.
type Usecase struct {
	repo   domain.Repository // read path only
	uow    uow.UnitOfWork
	escrow string // ledger-owned account holding collateral
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork, escrowAccount string) *Usecase {
	return &Usecase{repo: r, uow: tx, escrow: escrowAccount}
}

func transferErr(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrTransferFailed, err)
}

// Create opens a loan: the caller becomes the borrower and their collateral
// moves into escrow. The loan id is caller-chosen; collisions are rejected,
// never overwritten.
func (u *Usecase) Create(ctx context.Context, caller string, in CreateLoanInput) (*LoanDTO, error) {
	if !in.PrincipalAsset.Valid() || !in.CollateralAsset.Valid() {
		return nil, domain.ErrInvalidAmount
	}
	if in.PrincipalAsset == in.CollateralAsset {
		return nil, domain.ErrInvalidAmount
	}
	if in.PrincipalAmount == 0 || in.CollateralAmount == 0 || in.DurationSteps == 0 {
		return nil, domain.ErrInvalidAmount
	}
	if in.RepayAmount < in.PrincipalAmount {
		return nil, domain.ErrInvalidAmount
	}

	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// Presence check before insert; the unique index is the backstop.
		_, err := r.Loans.GetByLoanID(ctx, in.LoanID)
		switch {
		case err == nil:
			return domain.ErrLoanAlreadyExists
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err := r.Assets.Move(ctx, in.CollateralAsset, in.CollateralAmount, caller, u.escrow); err != nil {
			return transferErr(err)
		}

		l := &domain.Loan{
			LoanID:           in.LoanID,
			Borrower:         caller,
			PrincipalAsset:   in.PrincipalAsset,
			CollateralAsset:  in.CollateralAsset,
			PrincipalAmount:  in.PrincipalAmount,
			CollateralAmount: in.CollateralAmount,
			RepayAmount:      in.RepayAmount,
			DurationSteps:    in.DurationSteps,
			Status:           domain.StatusOpen,
			StatusUpdated:    time.Now().UTC(),
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Cancel returns escrowed collateral to the borrower before funding.
func (u *Usecase) Cancel(ctx context.Context, caller, loanID string) (*LoanDTO, error) {
	return u.transition(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status != domain.StatusOpen {
			return domain.ErrNotOpen
		}
		if caller != l.Borrower {
			return domain.ErrNotBorrower
		}
		if err := r.Assets.Move(ctx, l.CollateralAsset, l.CollateralAmount, u.escrow, l.Borrower); err != nil {
			return transferErr(err)
		}
		l.Status = domain.StatusCancelled
		return nil
	})
}

// Fund records the caller as lender and forwards their principal straight to
// the borrower. The collateral already in escrow is the lender's sole
// security, so no principal is held back.
func (u *Usecase) Fund(ctx context.Context, caller, loanID string) (*LoanDTO, error) {
	return u.transition(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status != domain.StatusOpen {
			return domain.ErrNotOpen
		}
		if err := r.Assets.Move(ctx, l.PrincipalAsset, l.PrincipalAmount, caller, u.escrow); err != nil {
			return transferErr(err)
		}
		if err := r.Assets.Move(ctx, l.PrincipalAsset, l.PrincipalAmount, u.escrow, l.Borrower); err != nil {
			return transferErr(err)
		}
		cur, err := r.Steps.Current(ctx)
		if err != nil {
			return err
		}
		lender := caller
		l.Lender = &lender
		l.StartStep = cur
		l.EndStep = cur + l.DurationSteps
		l.Status = domain.StatusFunded
		return nil
	})
}

// Repay settles the loan: repay_amount moves borrower→lender and the
// collateral comes back. Legal through the deadline step inclusive.
func (u *Usecase) Repay(ctx context.Context, caller, loanID string) (*LoanDTO, error) {
	return u.transition(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status != domain.StatusFunded {
			return domain.ErrNotFunded
		}
		if caller != l.Borrower {
			return domain.ErrNotBorrower
		}
		if l.Lender == nil {
			return domain.ErrNoLenderAssigned
		}
		cur, err := r.Steps.Current(ctx)
		if err != nil {
			return err
		}
		if cur > l.EndStep {
			return domain.ErrPastDue
		}
		if err := r.Assets.Move(ctx, l.PrincipalAsset, l.RepayAmount, l.Borrower, *l.Lender); err != nil {
			return transferErr(err)
		}
		if err := r.Assets.Move(ctx, l.CollateralAsset, l.CollateralAmount, u.escrow, l.Borrower); err != nil {
			return transferErr(err)
		}
		l.Status = domain.StatusRepaid
		return nil
	})
}

// ClaimDefault hands the escrowed collateral to the lender once the deadline
// step has passed. Strictly after end_step: the boundary step still belongs
// to the borrower.
func (u *Usecase) ClaimDefault(ctx context.Context, caller, loanID string) (*LoanDTO, error) {
	return u.transition(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status != domain.StatusFunded {
			return domain.ErrNotFunded
		}
		if l.Lender == nil {
			return domain.ErrNoLenderAssigned
		}
		if caller != *l.Lender {
			return domain.ErrNotLender
		}
		cur, err := r.Steps.Current(ctx)
		if err != nil {
			return err
		}
		if cur <= l.EndStep {
			return domain.ErrNotPastDue
		}
		if err := r.Assets.Move(ctx, l.CollateralAsset, l.CollateralAmount, u.escrow, *l.Lender); err != nil {
			return transferErr(err)
		}
		l.Status = domain.StatusDefaulted
		return nil
	})
}

// Get is the read boundary: full record or not-found, no side effects.
func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return toDTO(l), nil
}

// transition runs one guarded state change under the row lock and persists
// the result only when fn succeeds.
func (u *Usecase) transition(ctx context.Context, loanID string, fn func(r uow.Repos, l *domain.Loan) error) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if err := fn(r, l); err != nil {
			return err
		}
		l.StatusUpdated = time.Now().UTC()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:           l.LoanID,
		Borrower:         l.Borrower,
		Lender:           l.Lender,
		PrincipalAsset:   l.PrincipalAsset,
		CollateralAsset:  l.CollateralAsset,
		PrincipalAmount:  l.PrincipalAmount,
		CollateralAmount: l.CollateralAmount,
		RepayAmount:      l.RepayAmount,
		DurationSteps:    l.DurationSteps,
		StartStep:        l.StartStep,
		EndStep:          l.EndStep,
		Status:           string(l.Status),
		CreatedAt:        l.CreatedAt,
	}
}
