package assetmock

import (
	"context"
	"errors"

	"p2p-loan-escrow/internal/domain/asset"
	"p2p-loan-escrow/internal/domain/step"
)

var errUnimplemented = errors.New("assetmock: method not implemented")

// Mover is a function-backed mock for asset.Mover. Recorded moves make leg
// assertions cheap.
type Mover struct {
	MoveFn func(ctx context.Context, kind asset.Kind, amount uint64, from, to string) error
	Moves  []Move
}

type Move struct {
	Kind     asset.Kind
	Amount   uint64
	From, To string
}

var _ asset.Mover = (*Mover)(nil)

func (m *Mover) Move(ctx context.Context, kind asset.Kind, amount uint64, from, to string) error {
	if m.MoveFn != nil {
		if err := m.MoveFn(ctx, kind, amount, from, to); err != nil {
			return err
		}
	}
	m.Moves = append(m.Moves, Move{Kind: kind, Amount: amount, From: from, To: to})
	return nil
}

// Balances satisfies asset.BalanceRepository.
type Balances struct {
	GetFn    func(ctx context.Context, account string, kind asset.Kind) (uint64, error)
	CreditFn func(ctx context.Context, account string, kind asset.Kind, amount uint64) error
	DebitFn  func(ctx context.Context, account string, kind asset.Kind, amount uint64) error
}

var _ asset.BalanceRepository = (*Balances)(nil)

func (m *Balances) Get(ctx context.Context, account string, kind asset.Kind) (uint64, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, account, kind)
	}
	return 0, nil
}

func (m *Balances) Credit(ctx context.Context, account string, kind asset.Kind, amount uint64) error {
	if m.CreditFn != nil {
		return m.CreditFn(ctx, account, kind, amount)
	}
	return nil
}

func (m *Balances) Debit(ctx context.Context, account string, kind asset.Kind, amount uint64) error {
	if m.DebitFn != nil {
		return m.DebitFn(ctx, account, kind, amount)
	}
	return nil
}

// Steps satisfies step.Repository with a settable counter.
type Steps struct {
	Step      uint64
	CurrentFn func(ctx context.Context) (uint64, error)
	AdvanceFn func(ctx context.Context) (uint64, error)
}

var _ step.Repository = (*Steps)(nil)

func (m *Steps) Current(ctx context.Context) (uint64, error) {
	if m.CurrentFn != nil {
		return m.CurrentFn(ctx)
	}
	return m.Step, nil
}

func (m *Steps) Advance(ctx context.Context) (uint64, error) {
	if m.AdvanceFn != nil {
		return m.AdvanceFn(ctx)
	}
	m.Step++
	return m.Step, nil
}

// Contract satisfies token.Contract.
type Contract struct {
	TransferFn  func(ctx context.Context, amount uint64, sender, recipient string) error
	BalanceOfFn func(ctx context.Context, who string) (uint64, error)
	MintFn      func(ctx context.Context, amount uint64, recipient, caller string) error
}

func (m *Contract) Transfer(ctx context.Context, amount uint64, sender, recipient string) error {
	if m.TransferFn != nil {
		return m.TransferFn(ctx, amount, sender, recipient)
	}
	return nil
}

func (m *Contract) BalanceOf(ctx context.Context, who string) (uint64, error) {
	if m.BalanceOfFn != nil {
		return m.BalanceOfFn(ctx, who)
	}
	return 0, errUnimplemented
}

func (m *Contract) Mint(ctx context.Context, amount uint64, recipient, caller string) error {
	if m.MintFn != nil {
		return m.MintFn(ctx, amount, recipient, caller)
	}
	return nil
}
