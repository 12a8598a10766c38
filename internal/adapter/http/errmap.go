package http

import (
	"errors"
	"net/http"

	"p2p-loan-escrow/internal/domain/asset"
	loanDomain "p2p-loan-escrow/internal/domain/loan"
	tokenDomain "p2p-loan-escrow/internal/domain/token"

	"github.com/labstack/echo/v4"
)

// statusFor maps the domain error taxonomy to HTTP codes. Unknown errors are
// 500; the typed message never leaks internals for those.
func statusFor(err error) int {
	switch {
	case errors.Is(err, loanDomain.ErrLoanNotFound):
		return http.StatusNotFound
	case errors.Is(err, loanDomain.ErrLoanAlreadyExists),
		errors.Is(err, loanDomain.ErrNotOpen),
		errors.Is(err, loanDomain.ErrNotFunded):
		return http.StatusConflict
	case errors.Is(err, loanDomain.ErrNotBorrower),
		errors.Is(err, loanDomain.ErrNotLender),
		errors.Is(err, tokenDomain.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, loanDomain.ErrInvalidAmount),
		errors.Is(err, loanDomain.ErrPastDue),
		errors.Is(err, loanDomain.ErrNotPastDue),
		errors.Is(err, loanDomain.ErrNoLenderAssigned),
		errors.Is(err, loanDomain.ErrTransferFailed),
		errors.Is(err, asset.ErrInvalidAmount),
		errors.Is(err, asset.ErrInsufficientBalance),
		errors.Is(err, asset.ErrBalanceOverflow),
		errors.Is(err, asset.ErrUnknownKind):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func jsonError(c echo.Context, err error) error {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}
