package services

import (
	"context"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
)

func newPostView(post *models.Post, likes, comments int64) models.PostView {
	tags := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tags = append(tags, tag.Name)
	}
	return models.PostView{
		ID:           post.ID,
		Title:        post.Title,
		Content:      post.Content,
		Slug:         post.Slug,
		IsPublished:  post.IsPublished,
		PublishedAt:  post.PublishedAt,
		CategoryID:   post.CategoryID,
		UserID:       post.UserID,
		Images:       imageURLs(post.Images, func(i models.PostImage) string { return i.ImageURL }),
		Tags:         tags,
		LikeCount:    likes,
		CommentCount: comments,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	}
}

func newCommentView(comment *models.Comment, likes int64) models.CommentView {
	return models.CommentView{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		ParentID:  comment.ParentID,
		Content:   comment.Content,
		Images:    imageURLs(comment.Images, func(i models.CommentImage) string { return i.ImageURL }),
		LikeCount: likes,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// postViews attaches like and comment counts to posts with two grouped queries
func postViews(ctx context.Context, store *repositories.Store, posts []models.Post) ([]models.PostView, error) {
	ids := make([]uint, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}
	likes, err := store.PostLikes.CountByPostIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	comments, err := store.Comments.CountByPostIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.PostView, 0, len(posts))
	for i := range posts {
		views = append(views, newPostView(&posts[i], likes[posts[i].ID], comments[posts[i].ID]))
	}
	return views, nil
}

func commentViews(ctx context.Context, store *repositories.Store, comments []models.Comment) ([]models.CommentView, error) {
	ids := make([]uint, 0, len(comments))
	for _, comment := range comments {
		ids = append(ids, comment.ID)
	}
	likes, err := store.CommentLikes.CountByCommentIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, newCommentView(&comments[i], likes[comments[i].ID]))
	}
	return views, nil
}
