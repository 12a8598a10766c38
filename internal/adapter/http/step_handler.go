package http

import (
	"net/http"

	uc "p2p-loan-escrow/internal/usecase/step"

	"github.com/labstack/echo/v4"
)

type StepHandler struct{ uc *uc.Usecase }

func NewStepHandler(u *uc.Usecase) *StepHandler { return &StepHandler{uc: u} }

func (h *StepHandler) Current(c echo.Context) error {
	dto, err := h.uc.Current(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Advance stands in for the host ledger sealing a block; it is an
// administrative fixture like token mint.
func (h *StepHandler) Advance(c echo.Context) error {
	if _, ok := callerID(c); !ok {
		return badCaller(c)
	}
	dto, err := h.uc.Advance(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
