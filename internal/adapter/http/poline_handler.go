package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domain "po-workflow-backend/internal/domain/poline"
	"po-workflow-backend/internal/usecase/poline"
)

type PoLineHandler struct{ uc *poline.Usecase }

func NewPoLineHandler(uc *poline.Usecase) *PoLineHandler { return &PoLineHandler{uc: uc} }

func (h *PoLineHandler) ListPoLines(c echo.Context) error {
	if _, ok := currentActor(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}

	f := domain.ListFilter{
		Search:      c.QueryParam("search"),
		Status:      c.QueryParam("status"),
		Category:    c.QueryParam("category"),
		ProjectName: c.QueryParam("project_name"),
	}
	isAssigned, err := queryBoolPtr(c, "is_assigned")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	f.IsAssigned = isAssigned
	hasExternalPO, err := queryBoolPtr(c, "has_external_po")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	f.HasExternalPO = hasExternalPO

	page, size := pageParams(c)
	dtos, total, err := h.uc.List(c.Request().Context(), f, page, size)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newPageResponse(dtos, total, page, size))
}

// ListAvailablePoLines returns the lines the actor could pull into a new
// external PO right now.
func (h *PoLineHandler) ListAvailablePoLines(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dtos, err := h.uc.ListAvailable(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}
