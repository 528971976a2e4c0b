package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domain "po-workflow-backend/internal/domain/externalpo"
	"po-workflow-backend/internal/usecase/externalpo"
)

type ExternalPOHandler struct{ uc *externalpo.Usecase }

func NewExternalPOHandler(uc *externalpo.Usecase) *ExternalPOHandler {
	return &ExternalPOHandler{uc: uc}
}

type createExternalPOReq struct {
	PoIDs           []string `json:"po_ids"          validate:"required,dive,hex32"`
	AssignedToSBC   string   `json:"assigned_to_sbc" validate:"required,hex32"`
	AssignmentNotes string   `json:"assignment_notes"`
	InternalNotes   string   `json:"internal_notes"`
	AsDraft         bool     `json:"as_draft"`
}

func (h *ExternalPOHandler) CreateExternalPO(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	var req createExternalPOReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), actor, externalpo.CreateExternalPOInput{
		PoIDs:           req.PoIDs,
		AssignedToSBC:   req.AssignedToSBC,
		AssignmentNotes: req.AssignmentNotes,
		InternalNotes:   req.InternalNotes,
		AsDraft:         req.AsDraft,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ExternalPOHandler) ListExternalPOs(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	f := domain.ListFilter{
		Status:            domain.Status(c.QueryParam("status")),
		SBCResponseStatus: domain.SBCResponse(c.QueryParam("sbc_response_status")),
	}
	page, size := pageParams(c)
	dtos, total, err := h.uc.List(c.Request().Context(), actor, f, page, size)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newPageResponse(dtos, total, page, size))
}

func (h *ExternalPOHandler) GetExternalPO(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dto, err := h.uc.Get(c.Request().Context(), actor, c.Param("external_po_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type updateExternalPOReq struct {
	PoIDs           []string `json:"po_ids"          validate:"omitempty,dive,hex32"`
	AssignedToSBC   *string  `json:"assigned_to_sbc" validate:"omitempty,hex32"`
	AssignmentNotes *string  `json:"assignment_notes"`
	InternalNotes   *string  `json:"internal_notes"`
}

func (h *ExternalPOHandler) UpdateExternalPO(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	externalPoID := c.Param("external_po_id")
	if externalPoID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing external_po_id path param"})
	}
	var req updateExternalPOReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.UpdateDraft(c.Request().Context(), actor, externalPoID, externalpo.UpdateDraftInput{
		PoIDs:           req.PoIDs,
		AssignedToSBC:   req.AssignedToSBC,
		AssignmentNotes: req.AssignmentNotes,
		InternalNotes:   req.InternalNotes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ExternalPOHandler) DeleteExternalPO(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	externalPoID := c.Param("external_po_id")
	if externalPoID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing external_po_id path param"})
	}
	if err := h.uc.Delete(c.Request().Context(), actor, externalPoID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ExternalPOHandler) SubmitExternalPO(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	externalPoID := c.Param("external_po_id")
	if externalPoID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing external_po_id path param"})
	}
	dto, err := h.uc.Submit(c.Request().Context(), actor, externalPoID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ExternalPOHandler) CloseExternalPO(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	externalPoID := c.Param("external_po_id")
	if externalPoID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing external_po_id path param"})
	}
	dto, err := h.uc.Close(c.Request().Context(), actor, externalPoID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
