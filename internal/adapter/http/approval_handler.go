package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"po-workflow-backend/internal/usecase/approval"
)

type ApprovalHandler struct{ uc *approval.Usecase }

func NewApprovalHandler(uc *approval.Usecase) *ApprovalHandler { return &ApprovalHandler{uc: uc} }

func (h *ApprovalHandler) ListPDQueue(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dtos, err := h.uc.ListPending(c.Request().Context(), actor, "PD")
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ApprovalHandler) ListAdminQueue(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dtos, err := h.uc.ListPending(c.Request().Context(), actor, "ADMIN")
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

type respondApprovalReq struct {
	Level           string `json:"level"  validate:"required"`
	Action          string `json:"action" validate:"required"`
	Remarks         string `json:"remarks"`
	RejectionReason string `json:"rejection_reason"`
}

func (h *ApprovalHandler) RespondApproval(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	externalPoID := c.Param("external_po_id")
	if externalPoID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing external_po_id path param"})
	}
	var req respondApprovalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Respond(c.Request().Context(), actor, externalPoID, approval.RespondInput{
		Level:           req.Level,
		Action:          req.Action,
		Remarks:         req.Remarks,
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApprovalHandler) ListApprovalEvents(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dtos, err := h.uc.ListEvents(c.Request().Context(), actor, c.Param("external_po_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}
