package step

import (
	"context"

	"p2p-loan-escrow/internal/domain/step"
	"p2p-loan-escrow/internal/domain/uow"
)

// Usecase wraps the ledger step counter. Advancing the counter stands in for
// the host platform sealing a block.
type Usecase struct {
	repo step.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(r step.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, uow: tx}
}

type StepDTO struct {
	Step uint64 `json:"step"`
}

func (u *Usecase) Current(ctx context.Context) (*StepDTO, error) {
	cur, err := u.repo.Current(ctx)
	if err != nil {
		return nil, err
	}
	return &StepDTO{Step: cur}, nil
}

func (u *Usecase) Advance(ctx context.Context) (*StepDTO, error) {
	var dto *StepDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		next, err := r.Steps.Advance(ctx)
		if err != nil {
			return err
		}
		dto = &StepDTO{Step: next}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
