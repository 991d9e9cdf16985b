package router

import (
	"net/http"

	"github.com/anonto42/inkwell/backend/internal/auth"
	"github.com/anonto42/inkwell/backend/internal/handlers"
	"github.com/anonto42/inkwell/backend/internal/middleware"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/anonto42/inkwell/backend/internal/validators"
	"github.com/anonto42/inkwell/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the long-lived objects built by main
type Dependencies struct {
	DB     *gorm.DB
	Config *config.Config
	Logger *zap.Logger
}

// NewServer builds an echo instance with validation, error rendering, the
// global middleware and every route installed.
func NewServer(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler(deps.Logger)

	config.SetupMiddleware(e, deps.Config, deps.Logger)
	SetupRoutes(e, deps)
	return e
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	log := deps.Logger
	cfg := deps.Config
	store := repositories.NewStore(deps.DB)

	// --- Services ---
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(store, tokens, cfg.BcryptCost, log)
	userService := services.NewUserService(store, log)
	categoryService := services.NewCategoryService(store, log)
	postService := services.NewPostService(store, log)
	commentService := services.NewCommentService(store, log)
	tagService := services.NewTagService(store, log)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck(store))
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"service": "inkwell", "api": "/api/v1"})
	})

	api := e.Group("/api/v1")

	// --- Unprotected routes for authentication ---
	handlers.NewAuthHandler(authService).RegisterAuthRoutes(api.Group("/auth"))

	// --- Protected routes (require a bearer token) ---
	protected := api.Group("", middleware.JWTAuthMiddleware(authService))

	reads := api
	if cfg.PrivateReads {
		reads = protected
	}

	handlers.NewUserHandler(userService, categoryService, postService, commentService, tagService).
		RegisterUserRoutes(reads, protected)
	handlers.NewCategoryHandler(categoryService).RegisterCategoryRoutes(reads, protected)
	handlers.NewPostHandler(postService).RegisterPostRoutes(reads, protected)
	handlers.NewCommentHandler(commentService).RegisterCommentRoutes(reads, protected)
	handlers.NewLikeHandler(postService, commentService).RegisterLikeRoutes(reads, protected)
	handlers.NewTagHandler(tagService).RegisterTagRoutes(reads, protected)

	log.Info("routes configured", zap.Bool("private_reads", cfg.PrivateReads), zap.Int("routes", len(e.Routes())))
}
