package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/anonto42/inkwell/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newTestServer(t *testing.T, privateReads bool) *testServer {
	t.Helper()
	log := zap.NewNop()
	cfg := &config.Config{
		Env:          "test",
		PrivateReads: privateReads,
		CORSOrigins:  []string{"http://localhost:3000"},
		Database:     config.DatabaseConfig{Driver: config.DriverSQLite, URL: ":memory:"},
		JWTSecret:    "router-test-secret",
		TokenTTL:     time.Hour,
		BcryptCost:   bcrypt.MinCost,
	}
	db, err := config.OpenDatabase(cfg.Database, log)
	require.NoError(t, err)
	t.Cleanup(func() { config.CloseDatabase(db, log) })
	require.NoError(t, repositories.Migrate(db))

	return &testServer{t: t, e: NewServer(Dependencies{DB: db, Config: cfg, Logger: log})}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) signup(username string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(s.t, rec.Body.String(), "password")

	rec = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"identifier": username,
		"password":   "password123",
	})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[models.LoginResponse](s.t, rec).Token
}

func TestBlogScenario(t *testing.T) {
	s := newTestServer(t, false)
	alice := s.signup("alice")
	bob := s.signup("bob")

	rec := s.do(http.MethodPost, "/api/v1/categories", alice, map[string]string{"name": "Tech"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tech := decode[models.Category](t, rec)

	rec = s.do(http.MethodPost, "/api/v1/posts", alice, map[string]interface{}{
		"title":       "Hello",
		"content":     "First post",
		"category_id": tech.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	post := decode[models.PostView](t, rec)
	postPath := fmt.Sprintf("/api/v1/posts/%d", post.ID)

	rec = s.do(http.MethodPost, postPath+"/comments", bob, map[string]string{"content": "Nice post"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, postPath+"/like", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(http.MethodPost, postPath+"/like", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, int64(1), decode[models.LikeStatus](t, rec).LikeCount)

	rec = s.do(http.MethodGet, postPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[models.PostView](t, rec)
	assert.Equal(t, int64(1), got.LikeCount)
	assert.Equal(t, int64(1), got.CommentCount)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "Nice post", got.Comments[0].Content)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, tech.ID, *got.CategoryID)

	rec = s.do(http.MethodDelete, postPath, bob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, postPath, alice, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, postPath, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "post not found", decode[map[string]string](t, rec)["error"])

	rec = s.do(http.MethodGet, postPath+"/comments", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.CommentView](t, rec))
}

func TestAuthFailures(t *testing.T) {
	s := newTestServer(t, false)
	alice := s.signup("alice")

	rec := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "alice2", "email": "alice@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"identifier": "alice", "password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	body := map[string]string{"name": "Tech"}
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/v1/categories", "", body).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/v1/categories", alice+"tampered", body).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/me", "", nil).Code)

	rec = s.do(http.MethodGet, "/api/v1/me", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", decode[models.User](t, rec).Username)
}

func TestValidationAndNotFound(t *testing.T) {
	s := newTestServer(t, false)
	alice := s.signup("alice")

	rec := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{"username": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "email is required")

	rec = s.do(http.MethodPost, "/api/v1/posts", alice, map[string]interface{}{
		"title": "Hello", "content": "x", "category_id": 42,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/posts/abc", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/categories/7", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/posts?limit=many", "", nil).Code)
}

func TestPrivateReads(t *testing.T) {
	s := newTestServer(t, true)
	alice := s.signup("alice")

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/posts", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/posts", alice, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", nil).Code)
}

func TestAccountDeletion(t *testing.T) {
	s := newTestServer(t, false)
	alice := s.signup("alice")

	rec := s.do(http.MethodPatch, "/api/v1/me", alice, map[string]string{"bio": "hello"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/tags", alice, map[string]string{"name": "go"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/me/tags", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Tag](t, rec), 1)

	require.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/me", alice, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/me", alice, nil).Code)

	rec = s.do(http.MethodGet, "/api/v1/tags", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.Tag](t, rec))
}
