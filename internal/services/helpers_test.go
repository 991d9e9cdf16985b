package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/inkwell/backend/internal/auth"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/anonto42/inkwell/backend/pkg/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	store    *repositories.Store
	auth     *AuthService
	users    *UserService
	cats     *CategoryService
	posts    *PostService
	comments *CommentService
	tags     *TagService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zap.NewNop()
	db, err := config.OpenDatabase(config.DatabaseConfig{Driver: config.DriverSQLite, URL: ":memory:"}, log)
	require.NoError(t, err)
	t.Cleanup(func() { config.CloseDatabase(db, log) })
	require.NoError(t, repositories.Migrate(db))

	store := repositories.NewStore(db)
	return &testEnv{
		store:    store,
		auth:     NewAuthService(store, auth.NewTokenManager("test-secret", time.Hour), bcrypt.MinCost, log),
		users:    NewUserService(store, log),
		cats:     NewCategoryService(store, log),
		posts:    NewPostService(store, log),
		comments: NewCommentService(store, log),
		tags:     NewTagService(store, log),
	}
}

func (e *testEnv) register(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := e.auth.Register(context.Background(), models.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) post(t *testing.T, user *models.User, title string) *models.PostView {
	t.Helper()
	post, err := e.posts.Create(context.Background(), user, models.CreatePostRequest{
		Title:   title,
		Content: "content of " + title,
	})
	require.NoError(t, err)
	return post
}

func ptr[T any](v T) *T { return &v }
