package mysql

import (
	"context"
	"errors"
	"math"

	"p2p-loan-escrow/internal/domain/asset"

	"gorm.io/gorm"
)

type BalanceRepository struct{ db *gorm.DB }

func NewBalanceRepository(db *gorm.DB) *BalanceRepository { return &BalanceRepository{db: db} }

// Get returns the spendable amount; accounts with no row hold zero.
func (r *BalanceRepository) Get(ctx context.Context, account string, kind asset.Kind) (uint64, error) {
	var out asset.Balance
	err := r.db.WithContext(ctx).
		Where("account = ? AND asset = ?", account, string(kind)).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return out.Amount, nil
}

func (r *BalanceRepository) Credit(ctx context.Context, account string, kind asset.Kind, amount uint64) error {
	if amount == 0 {
		return asset.ErrInvalidAmount
	}
	var row asset.Balance
	q := withRowLock(r.db.WithContext(ctx))
	err := q.Where("account = ? AND asset = ?", account, string(kind)).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = asset.Balance{Account: account, Asset: kind, Amount: amount}
		return r.db.WithContext(ctx).Create(&row).Error
	case err != nil:
		return err
	}
	if row.Amount > math.MaxUint64-amount {
		return asset.ErrBalanceOverflow
	}
	row.Amount += amount
	return r.db.WithContext(ctx).Save(&row).Error
}

func (r *BalanceRepository) Debit(ctx context.Context, account string, kind asset.Kind, amount uint64) error {
	if amount == 0 {
		return asset.ErrInvalidAmount
	}
	var row asset.Balance
	q := withRowLock(r.db.WithContext(ctx))
	err := q.Where("account = ? AND asset = ?", account, string(kind)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return asset.ErrInsufficientBalance
	}
	if err != nil {
		return err
	}
	if row.Amount < amount {
		return asset.ErrInsufficientBalance
	}
	row.Amount -= amount
	return r.db.WithContext(ctx).Save(&row).Error
}
