package mysql

import (
	"context"
	"testing"
)

func TestStepRepo_StartsAtZero(t *testing.T) {
	db := openTestDB(t)
	repo := NewStepRepository(db)

	got, err := repo.Current(context.Background())
	if err != nil {
		t.Fatalf("Current err: %v", err)
	}
	if got != 0 {
		t.Fatalf("initial step = %d, want 0", got)
	}
}

func TestStepRepo_AdvanceIsMonotonic(t *testing.T) {
	db := openTestDB(t)
	repo := NewStepRepository(db)
	ctx := context.Background()

	for want := uint64(1); want <= 5; want++ {
		got, err := repo.Advance(ctx)
		if err != nil {
			t.Fatalf("Advance err: %v", err)
		}
		if got != want {
			t.Fatalf("Advance = %d, want %d", got, want)
		}
	}

	cur, err := repo.Current(ctx)
	if err != nil || cur != 5 {
		t.Fatalf("Current = %d, %v; want 5", cur, err)
	}
}
