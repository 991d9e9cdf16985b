package services

import (
	"context"
	"testing"

	"github.com/anonto42/inkwell/backend/internal/apperror"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCRUD(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	tech, err := env.cats.Create(ctx, alice, models.CreateCategoryRequest{Name: "Tech"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, tech.UserID)

	_, err = env.cats.Create(ctx, bob, models.CreateCategoryRequest{Name: "Tech"})
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	_, err = env.cats.Create(ctx, bob, models.CreateCategoryRequest{Name: "Go", ParentID: ptr(uint(999))})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	golang, err := env.cats.Create(ctx, bob, models.CreateCategoryRequest{Name: "Go", ParentID: &tech.ID})
	require.NoError(t, err)

	all, err := env.cats.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Go", all[0].Name)

	mine, err := env.cats.ListMine(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, tech.ID, mine[0].ID)

	_, err = env.cats.Update(ctx, bob, tech.ID, models.UpdateCategoryRequest{Name: ptr("Hacked")})
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	_, err = env.cats.Update(ctx, alice, 999, models.UpdateCategoryRequest{Name: ptr("Nope")})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	updated, err := env.cats.Update(ctx, alice, tech.ID, models.UpdateCategoryRequest{Name: ptr("Technology"), Description: ptr("all things tech")})
	require.NoError(t, err)
	assert.Equal(t, "Technology", updated.Name)

	got, err := env.cats.Get(ctx, tech.ID)
	require.NoError(t, err)
	assert.Equal(t, "Technology", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "all things tech", *got.Description)

	_, err = env.cats.Get(ctx, golang.ID+100)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestCategoryUpdateRejectsCycles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	root, err := env.cats.Create(ctx, alice, models.CreateCategoryRequest{Name: "Root"})
	require.NoError(t, err)
	child, err := env.cats.Create(ctx, alice, models.CreateCategoryRequest{Name: "Child", ParentID: &root.ID})
	require.NoError(t, err)

	_, err = env.cats.Update(ctx, alice, root.ID, models.UpdateCategoryRequest{ParentID: &root.ID})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = env.cats.Update(ctx, alice, root.ID, models.UpdateCategoryRequest{ParentID: &child.ID})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestCategoryDeleteNullifiesReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	tech, err := env.cats.Create(ctx, alice, models.CreateCategoryRequest{Name: "Tech"})
	require.NoError(t, err)
	sub, err := env.cats.Create(ctx, bob, models.CreateCategoryRequest{Name: "Sub", ParentID: &tech.ID})
	require.NoError(t, err)
	post, err := env.posts.Create(ctx, bob, models.CreatePostRequest{Title: "Hello", Content: "world", CategoryID: &tech.ID})
	require.NoError(t, err)

	assert.True(t, apperror.Is(env.cats.Delete(ctx, bob, tech.ID), apperror.KindForbidden))
	require.NoError(t, env.cats.Delete(ctx, alice, tech.ID))

	_, err = env.cats.Get(ctx, tech.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	got, err := env.posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)

	child, err := env.cats.Get(ctx, sub.ID)
	require.NoError(t, err)
	assert.Nil(t, child.ParentID)
}
