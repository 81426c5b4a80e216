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

// NewsHandler serves the public news pages, reader comments and the
// admin news CRUD.
type NewsHandler struct {
	News *repository.NewsRepo
}

func NewNewsHandler(n *repository.NewsRepo) *NewsHandler {
	if n == nil {
		panic("nil repo passed to NewNewsHandler")
	}
	return &NewsHandler{News: n}
}

type newsSectionReq struct {
	Header string `json:"header"`
	Body   string `json:"body"`
}

type newsReq struct {
	Category string           `json:"category"`
	Title    string           `json:"title"`
	Intro    string           `json:"introText"`
	Sections []newsSectionReq `json:"sections"`
}

type newsSectionResp struct {
	Header string `json:"header"`
	Body   string `json:"body"`
}

type newsResp struct {
	ID        uint64            `json:"id"`
	Category  string            `json:"category"`
	Title     string            `json:"title"`
	Intro     string            `json:"introText"`
	Image     *string           `json:"image,omitempty"`
	CreatedAt string            `json:"createdAt"`
	Sections  []newsSectionResp `json:"sections,omitempty"`
}

type commentReq struct {
	Text string `json:"text"`
}

type commentResp struct {
	ID        uint64 `json:"id"`
	NewsID    uint64 `json:"newsId"`
	UserID    uint64 `json:"userId"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

func toNewsResp(n model.News) newsResp {
	return newsResp{
		ID:        n.ID,
		Category:  n.Category,
		Title:     n.Title,
		Intro:     n.IntroText,
		Image:     n.Image,
		CreatedAt: n.CreatedAt.Format("2006-01-02"),
	}
}

// List handles GET /v1/news, newest first.
func (h *NewsHandler) List(c echo.Context) error {
	list, err := h.News.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	out := make([]newsResp, 0, len(list))
	for _, n := range list {
		out = append(out, toNewsResp(n))
	}
	return c.JSON(http.StatusOK, out)
}

// Latest handles GET /v1/news/latest for the landing page teaser.
func (h *NewsHandler) Latest(c echo.Context) error {
	limit := 3
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 20 {
			limit = n
		}
	}
	list, err := h.News.Latest(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	out := make([]newsResp, 0, len(list))
	for _, n := range list {
		out = append(out, toNewsResp(n))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/news/:id with the full section list.
func (h *NewsHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid article id"})
	}
	n, sections, err := h.News.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	resp := toNewsResp(n)
	for _, s := range sections {
		resp.Sections = append(resp.Sections, newsSectionResp{Header: s.Header, Body: s.Body})
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /v1/admin/news.
func (h *NewsHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req newsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	n := model.News{
		Category:  strings.TrimSpace(req.Category),
		Title:     strings.TrimSpace(req.Title),
		IntroText: strings.TrimSpace(req.Intro),
		AuthorID:  uid,
	}
	sections := make([]model.NewsSection, 0, len(req.Sections))
	for _, s := range req.Sections {
		sections = append(sections, model.NewsSection{Header: s.Header, Body: s.Body})
	}
	if err := h.News.Create(c.Request().Context(), &n, sections); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": n.ID, "message": "article created"})
}

// Update handles PUT /v1/admin/news/:id.  Sections are replaced only
// when present in the body.
func (h *NewsHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid article id"})
	}
	var req newsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	n := model.News{
		ID:        id,
		Category:  strings.TrimSpace(req.Category),
		Title:     strings.TrimSpace(req.Title),
		IntroText: strings.TrimSpace(req.Intro),
	}
	var sections []model.NewsSection
	if req.Sections != nil {
		sections = make([]model.NewsSection, 0, len(req.Sections))
		for _, s := range req.Sections {
			sections = append(sections, model.NewsSection{Header: s.Header, Body: s.Body})
		}
	}
	err = h.News.Update(c.Request().Context(), &n, sections)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "article updated"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
}

// Delete handles DELETE /v1/admin/news/:id.
func (h *NewsHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid article id"})
	}
	err = h.News.Delete(c.Request().Context(), id)
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
}

// ListComments handles GET /v1/news/:id/comments.
func (h *NewsHandler) ListComments(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid article id"})
	}
	list, err := h.News.ListComments(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	out := make([]commentResp, 0, len(list))
	for _, cm := range list {
		out = append(out, commentResp{
			ID: cm.ID, NewsID: cm.NewsID, UserID: cm.UserID,
			Text: cm.Text, CreatedAt: cm.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// CreateComment handles POST /v1/news/:id/comments for signed-in users.
func (h *NewsHandler) CreateComment(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid article id"})
	}
	var req commentReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text is required"})
	}
	if _, _, err := h.News.GetByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "article not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	cm := model.Comment{NewsID: id, UserID: uid, Text: strings.TrimSpace(req.Text)}
	if err := h.News.CreateComment(c.Request().Context(), &cm); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": cm.ID, "message": "comment added"})
}

// DeleteComment handles DELETE /v1/news/:id/comments/:commentId.  The
// author or an admin may delete.
func (h *NewsHandler) DeleteComment(c echo.Context) error {
	ident := identityFrom(c)
	if ident == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	newsID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || newsID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid article id"})
	}
	id, err := strconv.ParseUint(c.Param("commentId"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid comment id"})
	}
	cm, err := h.News.GetComment(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && cm.NewsID != newsID) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "comment not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if cm.UserID != ident.UserID && !ident.IsAdmin() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.News.DeleteComment(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
