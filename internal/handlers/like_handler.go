package handlers

import (
	"net/http"

	"github.com/anonto42/inkwell/backend/internal/middleware"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles likes on posts and comments
type LikeHandler struct {
	postService    *services.PostService
	commentService *services.CommentService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(postService *services.PostService, commentService *services.CommentService) *LikeHandler {
	return &LikeHandler{postService: postService, commentService: commentService}
}

// RegisterLikeRoutes registers like-related routes. Liking and unliking are
// idempotent and both answer with the current count.
func (h *LikeHandler) RegisterLikeRoutes(reads, protected *echo.Group) {
	reads.GET("/posts/:id/likes", h.GetPostLikes)
	reads.GET("/comments/:id/likes", h.GetCommentLikes)

	protected.POST("/posts/:id/like", h.LikePost)
	protected.DELETE("/posts/:id/like", h.UnlikePost)
	protected.POST("/comments/:id/like", h.LikeComment)
	protected.DELETE("/comments/:id/like", h.UnlikeComment)
}

// LikePost handles liking a post
func (h *LikeHandler) LikePost(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	status, err := h.postService.Like(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}

// UnlikePost handles unliking a post
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	status, err := h.postService.Unlike(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}

func (h *LikeHandler) GetPostLikes(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	count, err := h.postService.LikeCount(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, count)
}

func (h *LikeHandler) LikeComment(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	status, err := h.commentService.Like(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}

func (h *LikeHandler) UnlikeComment(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	status, err := h.commentService.Unlike(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}

func (h *LikeHandler) GetCommentLikes(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	count, err := h.commentService.LikeCount(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, count)
}
