package step

import (
	"context"
	"time"
)

// Counter is the single-row ledger step counter. The step is a monotonically
// increasing ordering counter and is the only notion of time in the system;
// loan deadlines are expressed in steps, never wall-clock.
type Counter struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	Step      uint64    `gorm:"column:step"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Counter) TableName() string { return "ledger_steps" }

type Repository interface {
	// Current returns the present step, creating the counter at zero on
	// first use.
	Current(ctx context.Context) (uint64, error)
	// Advance increments the counter and returns the new step.
	Advance(ctx context.Context) (uint64, error)
}
