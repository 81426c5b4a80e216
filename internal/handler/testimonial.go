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

// TestimonialHandler serves the landing-page testimonials and their
// admin CRUD.
type TestimonialHandler struct {
	Testimonials *repository.TestimonialRepo
}

func NewTestimonialHandler(t *repository.TestimonialRepo) *TestimonialHandler {
	if t == nil {
		panic("nil repo passed to NewTestimonialHandler")
	}
	return &TestimonialHandler{Testimonials: t}
}

type testimonialReq struct {
	Text    string  `json:"text"`
	Author  string  `json:"author"`
	Company *string `json:"company"`
}

type testimonialResp struct {
	ID      uint64  `json:"id"`
	Text    string  `json:"text"`
	Author  string  `json:"author"`
	Company *string `json:"company,omitempty"`
}

// List handles GET /v1/testimonials.
func (h *TestimonialHandler) List(c echo.Context) error {
	list, err := h.Testimonials.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	out := make([]testimonialResp, 0, len(list))
	for _, t := range list {
		out = append(out, testimonialResp{ID: t.ID, Text: t.Text, Author: t.Author, Company: t.Company})
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /v1/admin/testimonials.
func (h *TestimonialHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req testimonialReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Text) == "" || strings.TrimSpace(req.Author) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text and author are required"})
	}
	t := model.Testimonial{
		Text:      strings.TrimSpace(req.Text),
		Author:    strings.TrimSpace(req.Author),
		Company:   req.Company,
		CreatedBy: uid,
	}
	if err := h.Testimonials.Create(c.Request().Context(), &t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, testimonialResp{ID: t.ID, Text: t.Text, Author: t.Author, Company: t.Company})
}

// Update handles PUT /v1/admin/testimonials/:id.
func (h *TestimonialHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid testimonial id"})
	}
	var req testimonialReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Text) == "" || strings.TrimSpace(req.Author) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text and author are required"})
	}
	t := model.Testimonial{
		ID:      id,
		Text:    strings.TrimSpace(req.Text),
		Author:  strings.TrimSpace(req.Author),
		Company: req.Company,
	}
	err = h.Testimonials.Update(c.Request().Context(), &t)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "testimonial updated"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "testimonial not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
}

// Delete handles DELETE /v1/admin/testimonials/:id.
func (h *TestimonialHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid testimonial id"})
	}
	err = h.Testimonials.Delete(c.Request().Context(), id)
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "testimonial not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}
