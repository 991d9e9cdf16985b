package validators

import (
	"testing"

	"github.com/anonto42/inkwell/backend/internal/apperror"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegister(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&models.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "password123",
	}))

	err := v.Validate(&models.RegisterRequest{Username: "al", Email: "nope", Password: "short"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Contains(t, err.Error(), "username must be at least 3")
	assert.Contains(t, err.Error(), "email must be a valid email")
	assert.Contains(t, err.Error(), "password must be at least 8")
}

func TestValidateSlug(t *testing.T) {
	v := NewValidator()
	good := "hello-world-2"
	bad := "Hello World"

	assert.NoError(t, v.Validate(&models.CreatePostRequest{Title: "t", Content: "c", Slug: &good}))

	err := v.Validate(&models.CreatePostRequest{Title: "t", Content: "c", Slug: &bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slug must be lowercase")
}

func TestValidateNestedLists(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&models.CreatePostRequest{Title: "t", Content: "c", Images: []string{"not a url"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "images[0] must be a valid URL")
}
