package handlers

import (
	"net/http"

	"github.com/anonto42/inkwell/backend/internal/middleware"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/labstack/echo/v4"
)

type TagHandler struct {
	tagService *services.TagService
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func (h *TagHandler) RegisterTagRoutes(reads, protected *echo.Group) {
	reads.GET("/tags", h.ListTags)
	reads.GET("/tags/:id", h.GetTag)

	protected.POST("/tags", h.CreateTag)
	protected.PUT("/tags/:id", h.UpdateTag)
	protected.DELETE("/tags/:id", h.DeleteTag)
}

func (h *TagHandler) CreateTag(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	var req models.TagRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	tag, err := h.tagService.Create(c.Request().Context(), user, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tag)
}

func (h *TagHandler) ListTags(c echo.Context) error {
	tags, err := h.tagService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}

func (h *TagHandler) GetTag(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	tag, err := h.tagService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) UpdateTag(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.TagRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	tag, err := h.tagService.Update(c.Request().Context(), user, id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tag)
}

// DeleteTag removes the tag from every post and deletes it
func (h *TagHandler) DeleteTag(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.tagService.Delete(c.Request().Context(), user, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
