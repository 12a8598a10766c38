package mysql

import (
	"context"
	"errors"
	"math"
	"testing"

	"p2p-loan-escrow/internal/domain/asset"
)

func TestBalanceRepo_GetUnknownAccountIsZero(t *testing.T) {
	db := openTestDB(t)
	repo := NewBalanceRepository(db)

	got, err := repo.Get(context.Background(), "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", asset.KindNative)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestBalanceRepo_CreditThenDebit(t *testing.T) {
	db := openTestDB(t)
	repo := NewBalanceRepository(db)
	ctx := context.Background()
	const acct = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

	if err := repo.Credit(ctx, acct, asset.KindToken, 1000); err != nil {
		t.Fatalf("Credit err: %v", err)
	}
	if err := repo.Credit(ctx, acct, asset.KindToken, 500); err != nil {
		t.Fatalf("second Credit err: %v", err)
	}
	if err := repo.Debit(ctx, acct, asset.KindToken, 300); err != nil {
		t.Fatalf("Debit err: %v", err)
	}

	got, err := repo.Get(ctx, acct, asset.KindToken)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got != 1200 {
		t.Fatalf("balance = %d, want 1200", got)
	}

	// the native kind is independent
	native, err := repo.Get(ctx, acct, asset.KindNative)
	if err != nil || native != 0 {
		t.Fatalf("native = %d, %v; want 0", native, err)
	}
}

func TestBalanceRepo_DebitInsufficient(t *testing.T) {
	db := openTestDB(t)
	repo := NewBalanceRepository(db)
	ctx := context.Background()
	const acct = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

	if err := repo.Credit(ctx, acct, asset.KindNative, 100); err != nil {
		t.Fatalf("Credit err: %v", err)
	}
	err := repo.Debit(ctx, acct, asset.KindNative, 101)
	if !errors.Is(err, asset.ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}
	// no row at all behaves the same
	err = repo.Debit(ctx, "cccccccccccccccccccccccccccccccc", asset.KindNative, 1)
	if !errors.Is(err, asset.ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}

	got, _ := repo.Get(ctx, acct, asset.KindNative)
	if got != 100 {
		t.Fatalf("failed debit changed balance: %d", got)
	}
}

func TestBalanceRepo_CreditOverflow(t *testing.T) {
	db := openTestDB(t)
	repo := NewBalanceRepository(db)
	ctx := context.Background()
	const acct = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

	if err := repo.Credit(ctx, acct, asset.KindToken, math.MaxInt64); err != nil {
		t.Fatalf("Credit err: %v", err)
	}
	err := repo.Credit(ctx, acct, asset.KindToken, math.MaxUint64)
	if !errors.Is(err, asset.ErrBalanceOverflow) {
		t.Fatalf("err = %v, want ErrBalanceOverflow", err)
	}
}

func TestBalanceRepo_ZeroAmounts(t *testing.T) {
	db := openTestDB(t)
	repo := NewBalanceRepository(db)
	ctx := context.Background()

	if err := repo.Credit(ctx, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", asset.KindToken, 0); !errors.Is(err, asset.ErrInvalidAmount) {
		t.Fatalf("Credit(0) err = %v, want ErrInvalidAmount", err)
	}
	if err := repo.Debit(ctx, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", asset.KindToken, 0); !errors.Is(err, asset.ErrInvalidAmount) {
		t.Fatalf("Debit(0) err = %v, want ErrInvalidAmount", err)
	}
}
