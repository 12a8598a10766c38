package http

import (
	"net/http"

	uc "p2p-loan-escrow/internal/usecase/account"

	"github.com/labstack/echo/v4"
)

type AccountHandler struct{ uc *uc.Usecase }

func NewAccountHandler(u *uc.Usecase) *AccountHandler { return &AccountHandler{uc: u} }

func (h *AccountHandler) GetBalances(c echo.Context) error {
	accountID := c.Param("account_id")
	if !reHex32.MatchString(accountID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid account_id"})
	}
	dto, err := h.uc.Balances(c.Request().Context(), accountID)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type depositReq struct {
	Recipient string `json:"recipient" validate:"required,hex32"`
	Amount    uint64 `json:"amount"    validate:"gt=0"`
}

func (h *AccountHandler) DepositNative(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return badCaller(c)
	}
	var req depositReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.DepositNative(c.Request().Context(), caller, uc.DepositInput{
		Recipient: req.Recipient,
		Amount:    req.Amount,
	}); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"status": "ok"})
}
