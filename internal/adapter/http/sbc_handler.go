package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"po-workflow-backend/internal/usecase/sbc"
)

type SBCHandler struct{ uc *sbc.Usecase }

func NewSBCHandler(uc *sbc.Usecase) *SBCHandler { return &SBCHandler{uc: uc} }

func (h *SBCHandler) ListSBCWork(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dtos, err := h.uc.ListWork(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

type respondSBCReq struct {
	Action          string `json:"action" validate:"required"`
	RejectionReason string `json:"rejection_reason"`
}

func (h *SBCHandler) RespondSBC(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	externalPoID := c.Param("external_po_id")
	if externalPoID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing external_po_id path param"})
	}
	var req respondSBCReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Respond(c.Request().Context(), actor, externalPoID, sbc.RespondInput{
		Action:          req.Action,
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
