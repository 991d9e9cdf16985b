package services

import (
	"context"
	"testing"

	"github.com/anonto42/inkwell/backend/internal/apperror"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	post := env.post(t, alice, "Hello")

	_, err := env.comments.Create(ctx, bob, 999, models.CreateCommentRequest{Content: "lost"})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	comment, err := env.comments.Create(ctx, bob, post.ID, models.CreateCommentRequest{
		Content: "Nice post",
		Images:  []string{"https://img.example.com/c.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example.com/c.png"}, comment.Images)

	_, err = env.comments.Update(ctx, alice, comment.ID, models.UpdateCommentRequest{Content: ptr("edited by alice")})
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
	assert.True(t, apperror.Is(env.comments.Delete(ctx, alice, comment.ID), apperror.KindForbidden))

	updated, err := env.comments.Update(ctx, bob, comment.ID, models.UpdateCommentRequest{
		Content: ptr("Very nice post"),
		Images:  &[]string{},
	})
	require.NoError(t, err)
	assert.Equal(t, "Very nice post", updated.Content)
	assert.Empty(t, updated.Images)

	got, err := env.comments.Get(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "Very nice post", got.Content)

	mine, err := env.comments.ListMine(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	view, err := env.posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.CommentCount)
	require.Len(t, view.Comments, 1)

	require.NoError(t, env.comments.Delete(ctx, bob, comment.ID))
	_, err = env.comments.Get(ctx, comment.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestCommentReplies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	post := env.post(t, alice, "Hello")
	other := env.post(t, alice, "Other")

	root, err := env.comments.Create(ctx, bob, post.ID, models.CreateCommentRequest{Content: "first"})
	require.NoError(t, err)
	reply, err := env.comments.Create(ctx, alice, post.ID, models.CreateCommentRequest{Content: "reply", ParentID: &root.ID})
	require.NoError(t, err)
	_, err = env.comments.Create(ctx, bob, post.ID, models.CreateCommentRequest{Content: "nested", ParentID: &reply.ID})
	require.NoError(t, err)

	_, err = env.comments.Create(ctx, bob, other.ID, models.CreateCommentRequest{Content: "wrong post", ParentID: &root.ID})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	listed, err := env.comments.ListForPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "first", listed[0].Content)

	require.NoError(t, env.comments.Delete(ctx, bob, root.ID))
	listed, err = env.comments.ListForPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCommentLikes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	post := env.post(t, alice, "Hello")
	comment, err := env.comments.Create(ctx, bob, post.ID, models.CreateCommentRequest{Content: "Nice"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		status, err := env.comments.Like(ctx, alice, comment.ID)
		require.NoError(t, err)
		assert.True(t, status.Liked)
		assert.Equal(t, int64(1), status.LikeCount)
	}

	liked, err := env.comments.ListLiked(ctx, alice)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, int64(1), liked[0].LikeCount)

	count, err := env.comments.LikeCount(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.LikeCount)

	status, err := env.comments.Unlike(ctx, alice, comment.ID)
	require.NoError(t, err)
	assert.Zero(t, status.LikeCount)

	_, err = env.comments.Like(ctx, alice, 999)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestListCommentsForUnknownPost(t *testing.T) {
	env := newTestEnv(t)

	comments, err := env.comments.ListForPost(context.Background(), 12345)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}
