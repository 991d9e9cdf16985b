package handlers

import (
	"net/http"

	"github.com/anonto42/inkwell/backend/internal/middleware"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(reads, protected *echo.Group) {
	reads.GET("/posts", h.ListPosts)
	reads.GET("/posts/:id", h.GetPost)

	protected.POST("/posts", h.CreatePost)
	protected.PUT("/posts/:id", h.UpdatePost)
	protected.DELETE("/posts/:id", h.DeletePost)
	protected.POST("/posts/:id/publish", h.PublishPost)
	protected.POST("/posts/:id/unpublish", h.UnpublishPost)
}

// CreatePost creates a new post owned by the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.postService.Create(c.Request().Context(), user, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// ListPosts supports ?category_id=, ?user_id=, ?published=, ?skip= and ?limit=
func (h *PostHandler) ListPosts(c echo.Context) error {
	var (
		filter models.PostFilter
		err    error
	)
	if filter.CategoryID, err = queryUint(c, "category_id"); err != nil {
		return err
	}
	if filter.UserID, err = queryUint(c, "user_id"); err != nil {
		return err
	}
	if filter.Published, err = queryBool(c, "published"); err != nil {
		return err
	}
	if filter.Skip, err = queryInt(c, "skip", 0); err != nil {
		return err
	}
	if filter.Limit, err = queryInt(c, "limit", services.DefaultPageSize); err != nil {
		return err
	}

	posts, err := h.postService.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost returns a post with its comments and like count
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (h *PostHandler) UpdatePost(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.postService.Update(c.Request().Context(), user, id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post with its comments and likes
func (h *PostHandler) DeletePost(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.postService.Delete(c.Request().Context(), user, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PostHandler) PublishPost(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	post, err := h.postService.Publish(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (h *PostHandler) UnpublishPost(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	post, err := h.postService.Unpublish(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}
