package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tenantgate/admin-portal/internal/core/ports"
)

type GroupHandler struct {
	groups ports.GroupService
}

func NewGroupHandler(groups ports.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// @Summary      Create a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      groupRequest  true  "Group"
// @Success      201   {object}  groupResponse
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /groups [post]
func (h *GroupHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req groupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	g, err := h.groups.Create(c.Request().Context(), claims.Actor(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toGroupResponse(g))
}

// @Summary      List groups
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   groupResponse
// @Failure      403  {object}  map[string]string
// @Router       /groups [get]
func (h *GroupHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	groups, err := h.groups.List(c.Request().Context(), claims.Actor())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGroupResponses(groups))
}

// @Summary      Get a group
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Group ID"
// @Success      200  {object}  groupResponse
// @Failure      404  {object}  map[string]string
// @Router       /groups/{id} [get]
func (h *GroupHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	g, err := h.groups.Get(c.Request().Context(), claims.Actor(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGroupResponse(g))
}

// @Summary      Rename a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Group ID"
// @Param        body  body      groupRequest  true  "New name"
// @Success      200   {object}  groupResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /groups/{id} [patch]
func (h *GroupHandler) Rename(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req groupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	g, err := h.groups.Rename(c.Request().Context(), claims.Actor(), c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGroupResponse(g))
}

// @Summary      Delete a group
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Group ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /groups/{id} [delete]
func (h *GroupHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	msg, err := h.groups.Delete(c.Request().Context(), claims.Actor(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}
