package loan

import (
	"time"

	"p2p-loan-escrow/internal/domain/asset"
)

type CreateLoanInput struct {
	LoanID           string     `json:"loan_id"`
	PrincipalAsset   asset.Kind `json:"principal_asset"`
	CollateralAsset  asset.Kind `json:"collateral_asset"`
	PrincipalAmount  uint64     `json:"principal_amount"`
	CollateralAmount uint64     `json:"collateral_amount"`
	RepayAmount      uint64     `json:"repay_amount"`
	DurationSteps    uint64     `json:"duration_steps"`
}

type LoanDTO struct {
	LoanID           string     `json:"loan_id"`
	Borrower         string     `json:"borrower"`
	Lender           *string    `json:"lender,omitempty"`
	PrincipalAsset   asset.Kind `json:"principal_asset"`
	CollateralAsset  asset.Kind `json:"collateral_asset"`
	PrincipalAmount  uint64     `json:"principal_amount"`
	CollateralAmount uint64     `json:"collateral_amount"`
	RepayAmount      uint64     `json:"repay_amount"`
	DurationSteps    uint64     `json:"duration_steps"`
	StartStep        uint64     `json:"start_step"`
	EndStep          uint64     `json:"end_step"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
}
