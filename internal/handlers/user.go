package handlers

import (
	"net/http"

	"github.com/anonto42/inkwell/backend/internal/middleware"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler serves the authenticated user's account and public profiles
type UserHandler struct {
	userService     *services.UserService
	categoryService *services.CategoryService
	postService     *services.PostService
	commentService  *services.CommentService
	tagService      *services.TagService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userService *services.UserService,
	categoryService *services.CategoryService,
	postService *services.PostService,
	commentService *services.CommentService,
	tagService *services.TagService,
) *UserHandler {
	return &UserHandler{
		userService:     userService,
		categoryService: categoryService,
		postService:     postService,
		commentService:  commentService,
		tagService:      tagService,
	}
}

// RegisterUserRoutes registers profile routes. /me always requires a token.
func (h *UserHandler) RegisterUserRoutes(reads, protected *echo.Group) {
	reads.GET("/users/:id", h.GetUser)

	protected.GET("/me", h.GetMe)
	protected.PATCH("/me", h.UpdateMe)
	protected.DELETE("/me", h.DeleteMe)
	protected.GET("/me/categories", h.MyCategories)
	protected.GET("/me/posts", h.MyPosts)
	protected.GET("/me/comments", h.MyComments)
	protected.GET("/me/tags", h.MyTags)
	protected.GET("/me/liked-comments", h.MyLikedComments)
}

// GetUser returns the public profile of another user
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	profile, err := h.userService.GetProfile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	me, err := h.userService.Me(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, me)
}

// UpdateMe changes the avatar and bio of the authenticated user
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	var req models.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	updated, err := h.userService.UpdateProfile(c.Request().Context(), user, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteMe deletes the account and everything it owns
func (h *UserHandler) DeleteMe(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	if err := h.userService.DeleteAccount(c.Request().Context(), user); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) MyCategories(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	categories, err := h.categoryService.ListMine(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *UserHandler) MyPosts(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", services.DefaultPageSize)
	if err != nil {
		return err
	}
	posts, err := h.postService.ListMine(c.Request().Context(), user, skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *UserHandler) MyComments(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	comments, err := h.commentService.ListMine(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

func (h *UserHandler) MyTags(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	tags, err := h.tagService.ListMine(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}

// MyLikedComments lists the comments the authenticated user has liked
func (h *UserHandler) MyLikedComments(c echo.Context) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	comments, err := h.commentService.ListLiked(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}
