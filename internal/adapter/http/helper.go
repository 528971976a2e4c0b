package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"po-workflow-backend/internal/adapter/middleware"
	"po-workflow-backend/internal/domain/fault"
	"po-workflow-backend/internal/domain/user"
)

// ---- helpers ----

// currentActor pulls the authenticated user injected by the auth middleware.
func currentActor(c echo.Context) (*user.User, bool) {
	return middleware.ActorFromContext(c)
}

// respondError maps the domain error taxonomy onto HTTP codes. Anything
// unclassified is a 500 and must not leak its message.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, fault.ErrValidation):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, fault.ErrAuthorization):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, fault.ErrState):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, fault.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func queryBoolPtr(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s query param", name)
	}
	return &v, nil
}
