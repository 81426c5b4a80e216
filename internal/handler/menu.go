package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mwrona/restaurant-server/internal/model"
	"github.com/mwrona/restaurant-server/internal/repository"
)

// MenuHandler serves the public menu and the admin menu CRUD.
type MenuHandler struct {
	Menu *repository.MenuRepo
}

func NewMenuHandler(m *repository.MenuRepo) *MenuHandler {
	if m == nil {
		panic("nil repo passed to NewMenuHandler")
	}
	return &MenuHandler{Menu: m}
}

type menuItemReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  uint32 `json:"priceCents"`
}

type menuItemResp struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  uint32 `json:"priceCents"`
}

// List handles GET /v1/menu.
func (h *MenuHandler) List(c echo.Context) error {
	items, err := h.Menu.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	out := make([]menuItemResp, 0, len(items))
	for _, m := range items {
		out = append(out, menuItemResp{ID: m.ID, Name: m.Name, Description: m.Description, PriceCents: m.PriceCents})
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /v1/admin/menu.
func (h *MenuHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	item := model.MenuItem{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		PriceCents:  req.PriceCents,
		CreatedBy:   uid,
	}
	if err := h.Menu.Create(c.Request().Context(), &item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, menuItemResp{
		ID: item.ID, Name: item.Name, Description: item.Description, PriceCents: item.PriceCents,
	})
}

// Update handles PUT /v1/admin/menu/:id.
func (h *MenuHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid menu item id"})
	}
	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	item := model.MenuItem{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		PriceCents:  req.PriceCents,
	}
	err = h.Menu.Update(c.Request().Context(), &item)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "menu item updated"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
}

// Delete handles DELETE /v1/admin/menu/:id.
func (h *MenuHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid menu item id"})
	}
	err = h.Menu.Delete(c.Request().Context(), id)
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}
