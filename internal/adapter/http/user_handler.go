package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domain "po-workflow-backend/internal/domain/user"
	useruc "po-workflow-backend/internal/usecase/user"
)

type UserHandler struct{ uc *useruc.Usecase }

func NewUserHandler(uc *useruc.Usecase) *UserHandler { return &UserHandler{uc: uc} }

func (h *UserHandler) Me(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	return c.JSON(http.StatusOK, h.uc.Me(c.Request().Context(), actor))
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}

	f := domain.ListFilter{
		Role:   domain.Role(c.QueryParam("role")),
		Search: c.QueryParam("search"),
	}
	isActive, err := queryBoolPtr(c, "is_active")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	f.IsActive = isActive

	page, size := pageParams(c)
	dtos, total, err := h.uc.List(c.Request().Context(), actor, f, page, size)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newPageResponse(dtos, total, page, size))
}

func (h *UserHandler) ListSBCUsers(c echo.Context) error {
	if _, ok := currentActor(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	dtos, err := h.uc.ListSBC(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

type updateUserReq struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	}
	userID := c.Param("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing user_id path param"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Update(c.Request().Context(), actor, userID, useruc.UpdateUserInput{
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
