package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domain "po-workflow-backend/internal/domain/assignment"
	"po-workflow-backend/internal/usecase/assignment"
)

type AssignmentHandler struct{ uc *assignment.Usecase }

func NewAssignmentHandler(uc *assignment.Usecase) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

type createAssignmentReq struct {
	PoIDs      []string `json:"po_ids"      validate:"required,dive,hex32"`
	AssignedTo string   `json:"assigned_to" validate:"required,hex32"`
	Notes      string   `json:"notes"`
}

func (h *AssignmentHandler) CreateAssignment(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	var req createAssignmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), actor, assignment.CreateAssignmentInput{
		PoIDs:      req.PoIDs,
		AssignedTo: req.AssignedTo,
		Notes:      req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AssignmentHandler) ListAssignments(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	f := domain.ListFilter{
		Status:     domain.Status(c.QueryParam("status")),
		AssignedTo: c.QueryParam("assigned_to"),
	}
	page, size := pageParams(c)
	dtos, total, err := h.uc.List(c.Request().Context(), actor, f, page, size)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newPageResponse(dtos, total, page, size))
}

func (h *AssignmentHandler) ListMyAssignments(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	f := domain.ListFilter{Status: domain.Status(c.QueryParam("status"))}
	page, size := pageParams(c)
	dtos, total, err := h.uc.ListMy(c.Request().Context(), actor, f, page, size)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newPageResponse(dtos, total, page, size))
}

func (h *AssignmentHandler) GetAssignment(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dto, err := h.uc.Get(c.Request().Context(), actor, c.Param("assignment_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type respondAssignmentReq struct {
	Action          string `json:"action" validate:"required"`
	RejectionReason string `json:"rejection_reason"`
}

func (h *AssignmentHandler) RespondAssignment(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	assignmentID := c.Param("assignment_id")
	if assignmentID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing assignment_id path param"})
	}
	var req respondAssignmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Respond(c.Request().Context(), actor, assignmentID, assignment.RespondInput{
		Action:          req.Action,
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
