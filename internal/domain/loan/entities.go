package loan

import (
	"time"

	"p2p-loan-escrow/internal/domain/asset"
)

type Status string

const (
	StatusOpen      Status = "open"
	StatusFunded    Status = "funded"
	StatusRepaid    Status = "repaid"
	StatusDefaulted Status = "defaulted"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transition is legal from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusRepaid, StatusDefaulted, StatusCancelled:
		return true
	}
	return false
}

// Loan is the escrow record for one borrower/lender pair. LoanID is
// caller-chosen; the numeric ID is an internal PK only. Records are never
// deleted — terminal statuses are permanent history.
type Loan struct {
	ID               uint64     `gorm:"primaryKey;column:id" json:"-"`
	LoanID           string     `gorm:"size:64;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	Borrower         string     `gorm:"size:32;index:idx_loans_borrower" json:"borrower"`
	Lender           *string    `gorm:"size:32" json:"lender,omitempty"`
	PrincipalAsset   asset.Kind `gorm:"size:16" json:"principal_asset"`
	CollateralAsset  asset.Kind `gorm:"size:16" json:"collateral_asset"`
	PrincipalAmount  uint64     `json:"principal_amount"`
	CollateralAmount uint64     `json:"collateral_amount"`
	RepayAmount      uint64     `json:"repay_amount"`
	// DurationSteps is fixed at creation. StartStep/EndStep stay zero until
	// the loan is funded; EndStep then becomes the absolute deadline
	// StartStep+DurationSteps.
	DurationSteps uint64    `json:"duration_steps"`
	StartStep     uint64    `json:"start_step"`
	EndStep       uint64    `json:"end_step"`
	Status        Status    `gorm:"type:varchar(16);default:'open'" json:"status"`
	StatusUpdated time.Time `gorm:"column:status_updated_at;autoCreateTime" json:"status_updated_at"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }
