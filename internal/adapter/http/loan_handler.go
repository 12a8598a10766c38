package http

import (
	"context"
	"net/http"

	"p2p-loan-escrow/internal/domain/asset"
	uc "p2p-loan-escrow/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *uc.Usecase }

func NewLoanHandler(u *uc.Usecase) *LoanHandler { return &LoanHandler{uc: u} }

type createLoanReq struct {
	LoanID           string `json:"loan_id"           validate:"required,loanid"`
	PrincipalAsset   string `json:"principal_asset"   validate:"required,assetkind"`
	CollateralAsset  string `json:"collateral_asset"  validate:"required,assetkind"`
	PrincipalAmount  uint64 `json:"principal_amount"  validate:"gt=0"`
	CollateralAmount uint64 `json:"collateral_amount" validate:"gt=0"`
	RepayAmount      uint64 `json:"repay_amount"      validate:"gt=0"`
	DurationSteps    uint64 `json:"duration_steps"    validate:"gt=0"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return badCaller(c)
	}
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), caller, uc.CreateLoanInput{
		LoanID:           req.LoanID,
		PrincipalAsset:   asset.Kind(req.PrincipalAsset),
		CollateralAsset:  asset.Kind(req.CollateralAsset),
		PrincipalAmount:  req.PrincipalAmount,
		CollateralAmount: req.CollateralAmount,
		RepayAmount:      req.RepayAmount,
		DurationSteps:    req.DurationSteps,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) CancelLoan(c echo.Context) error {
	return h.transition(c, h.uc.Cancel)
}

func (h *LoanHandler) FundLoan(c echo.Context) error {
	return h.transition(c, h.uc.Fund)
}

func (h *LoanHandler) RepayLoan(c echo.Context) error {
	return h.transition(c, h.uc.Repay)
}

func (h *LoanHandler) ClaimDefault(c echo.Context) error {
	return h.transition(c, h.uc.ClaimDefault)
}

func (h *LoanHandler) transition(c echo.Context, op func(ctx context.Context, caller, loanID string) (*uc.LoanDTO, error)) error {
	caller, ok := callerID(c)
	if !ok {
		return badCaller(c)
	}
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	dto, err := op(c.Request().Context(), caller, loanID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	dto, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
