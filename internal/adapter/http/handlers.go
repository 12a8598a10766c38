package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// CallerHeader carries the authenticated caller identity. The request body
// is never trusted for identity.
const CallerHeader = "Ax-Caller-Id"

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// callerID extracts and validates the authenticated caller from the header.
func callerID(c echo.Context) (string, bool) {
	id := strings.TrimSpace(c.Request().Header.Get(CallerHeader))
	if !reHex32.MatchString(id) {
		return "", false
	}
	return id, true
}

func badCaller(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + CallerHeader})
}
