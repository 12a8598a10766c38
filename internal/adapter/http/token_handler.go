package http

import (
	"net/http"

	uc "p2p-loan-escrow/internal/usecase/token"

	"github.com/labstack/echo/v4"
)

type TokenHandler struct{ uc *uc.Usecase }

func NewTokenHandler(u *uc.Usecase) *TokenHandler { return &TokenHandler{uc: u} }

type tokenMoveReq struct {
	Recipient string `json:"recipient" validate:"required,hex32"`
	Amount    uint64 `json:"amount"    validate:"gt=0"`
}

func (h *TokenHandler) Transfer(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return badCaller(c)
	}
	var req tokenMoveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.Transfer(c.Request().Context(), caller, uc.TransferInput{
		Recipient: req.Recipient,
		Amount:    req.Amount,
	}); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *TokenHandler) Mint(c echo.Context) error {
	caller, ok := callerID(c)
	if !ok {
		return badCaller(c)
	}
	var req tokenMoveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.Mint(c.Request().Context(), caller, uc.MintInput{
		Recipient: req.Recipient,
		Amount:    req.Amount,
	}); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"status": "ok"})
}
