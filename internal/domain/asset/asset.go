package asset

import (
	"context"
	"errors"
	"time"
)

// Kind is one of the two fungible value types a loan leg can reference.
type Kind string

const (
	KindNative Kind = "native"
	KindToken  Kind = "token"
)

func (k Kind) Valid() bool { return k == KindNative || k == KindToken }

var (
	ErrUnknownKind         = errors.New("unknown asset kind")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient spendable balance")
	ErrBalanceOverflow     = errors.New("balance overflow")
)

// Balance holds one account's spendable amount of one asset kind.
type Balance struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	Account   string    `gorm:"size:32;uniqueIndex:ux_balances_account_asset" json:"account"`
	Asset     Kind      `gorm:"size:16;uniqueIndex:ux_balances_account_asset" json:"asset"`
	Amount    uint64    `json:"amount"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Balance) TableName() string { return "balances" }

// BalanceRepository is the only surface that touches stored amounts.
// Debit and Credit must run inside the caller's transaction so a failing
// second leg rolls back the first.
type BalanceRepository interface {
	Get(ctx context.Context, account string, kind Kind) (uint64, error)
	Credit(ctx context.Context, account string, kind Kind, amount uint64) error
	Debit(ctx context.Context, account string, kind Kind, amount uint64) error
}

// Mover is the uniform transfer operation the loan ledger depends on for
// moving value. Native legs hit balances directly; token legs are routed
// through the token contract's transfer entry point.
type Mover interface {
	Move(ctx context.Context, kind Kind, amount uint64, from, to string) error
}
