package mysql

import (
	"context"
	"errors"

	stepDomain "p2p-loan-escrow/internal/domain/step"

	"gorm.io/gorm"
)

// counterRowID is the fixed PK of the single ledger-step row.
const counterRowID = 1

type StepRepository struct{ db *gorm.DB }

func NewStepRepository(db *gorm.DB) *StepRepository { return &StepRepository{db: db} }

func (r *StepRepository) Current(ctx context.Context) (uint64, error) {
	row, err := r.load(ctx, r.db.WithContext(ctx))
	if err != nil {
		return 0, err
	}
	return row.Step, nil
}

func (r *StepRepository) Advance(ctx context.Context) (uint64, error) {
	row, err := r.load(ctx, withRowLock(r.db.WithContext(ctx)))
	if err != nil {
		return 0, err
	}
	row.Step++
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return 0, err
	}
	return row.Step, nil
}

func (r *StepRepository) load(ctx context.Context, q *gorm.DB) (*stepDomain.Counter, error) {
	var row stepDomain.Counter
	err := q.Where("id = ?", counterRowID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = stepDomain.Counter{ID: counterRowID, Step: 0}
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return nil, err
		}
		return &row, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
