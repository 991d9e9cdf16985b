package services

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/inkwell/backend/internal/apperror"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"go.uber.org/zap"
)

const errPostNotFound = "post not found"

// PostService handles posts and post likes
type PostService struct {
	store  *repositories.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewPostService(store *repositories.Store, logger *zap.Logger) *PostService {
	return &PostService{store: store, logger: logger, now: time.Now}
}

func (s *PostService) Create(ctx context.Context, user *models.User, req models.CreatePostRequest) (*models.PostView, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, apperror.Validation("title and content are required")
	}

	post := &models.Post{
		Title:       title,
		Content:     content,
		Slug:        req.Slug,
		IsPublished: req.IsPublished,
		CategoryID:  req.CategoryID,
		UserID:      user.ID,
	}
	if post.IsPublished {
		now := s.now()
		post.PublishedAt = &now
	}
	for _, url := range req.Images {
		post.Images = append(post.Images, models.PostImage{ImageURL: url})
	}

	var created *models.Post
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if req.CategoryID != nil {
			if _, err := tx.Categories.GetCategoryByID(ctx, *req.CategoryID); err != nil {
				return translate(err, errCategoryNotFound)
			}
		}
		tagIDs, err := checkTags(ctx, tx, req.TagIDs)
		if err != nil {
			return err
		}
		if err := tx.Posts.CreatePost(ctx, post); err != nil {
			return err
		}
		if len(tagIDs) > 0 {
			if err := tx.Posts.ReplaceTags(ctx, post.ID, tagIDs); err != nil {
				return err
			}
		}
		created, err = tx.Posts.GetPostByID(ctx, post.ID)
		return err
	})
	if err != nil {
		return nil, translate(err, errPostNotFound)
	}

	s.logger.Info("post created", zap.Uint("post_id", created.ID), zap.Uint("user_id", user.ID))
	view := newPostView(created, 0, 0)
	return &view, nil
}

// checkTags deduplicates ids and fails unless every tag exists
func checkTags(ctx context.Context, tx *repositories.Store, ids []uint) ([]uint, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return ids, nil
	}
	tags, err := tx.Tags.GetTagsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, apperror.NotFound("tag not found")
	}
	return ids, nil
}

// List returns posts newest first
func (s *PostService) List(ctx context.Context, filter models.PostFilter) ([]models.PostView, error) {
	filter.Skip, filter.Limit = Page(filter.Skip, filter.Limit)
	posts, err := s.store.Posts.GetPosts(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	views, err := postViews(ctx, s.store, posts)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return views, nil
}

func (s *PostService) ListMine(ctx context.Context, user *models.User, skip, limit int) ([]models.PostView, error) {
	return s.List(ctx, models.PostFilter{UserID: &user.ID, Skip: skip, Limit: limit})
}

// Get returns the post with its counts and comments
func (s *PostService) Get(ctx context.Context, id uint) (*models.PostView, error) {
	post, err := s.store.Posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, translate(err, errPostNotFound)
	}
	likes, err := s.store.PostLikes.GetLikesCountByPostID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	comments, err := s.store.Comments.GetCommentsByPostID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	commentList, err := commentViews(ctx, s.store, comments)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	view := newPostView(post, likes, int64(len(comments)))
	view.Comments = commentList
	return &view, nil
}

// Update applies the fields present in req. Images and tags, when given,
// replace the existing sets.
func (s *PostService) Update(ctx context.Context, user *models.User, id uint, req models.UpdatePostRequest) (*models.PostView, error) {
	var view models.PostView
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		post, err := tx.Posts.GetPostByID(ctx, id)
		if err != nil {
			return translate(err, errPostNotFound)
		}
		if err := authorize(user, post, "update this post"); err != nil {
			return err
		}

		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return apperror.Validation("title cannot be empty")
			}
			post.Title = title
		}
		if req.Content != nil {
			content := strings.TrimSpace(*req.Content)
			if content == "" {
				return apperror.Validation("content cannot be empty")
			}
			post.Content = content
		}
		if req.Slug != nil {
			post.Slug = req.Slug
		}
		if req.CategoryID != nil {
			if _, err := tx.Categories.GetCategoryByID(ctx, *req.CategoryID); err != nil {
				return translate(err, errCategoryNotFound)
			}
			post.CategoryID = req.CategoryID
		}
		if req.IsPublished != nil {
			s.setPublished(post, *req.IsPublished)
		}

		if err := tx.Posts.UpdatePost(ctx, post); err != nil {
			return err
		}
		if req.Images != nil {
			if err := tx.Posts.ReplaceImages(ctx, post.ID, *req.Images); err != nil {
				return err
			}
		}
		if req.TagIDs != nil {
			tagIDs, err := checkTags(ctx, tx, *req.TagIDs)
			if err != nil {
				return err
			}
			if err := tx.Posts.ReplaceTags(ctx, post.ID, tagIDs); err != nil {
				return err
			}
		}

		view, err = s.loadView(ctx, tx, post.ID)
		return err
	})
	if err != nil {
		return nil, translate(err, errPostNotFound)
	}
	return &view, nil
}

func (s *PostService) Publish(ctx context.Context, user *models.User, id uint) (*models.PostView, error) {
	return s.changePublished(ctx, user, id, true)
}

func (s *PostService) Unpublish(ctx context.Context, user *models.User, id uint) (*models.PostView, error) {
	return s.changePublished(ctx, user, id, false)
}

func (s *PostService) changePublished(ctx context.Context, user *models.User, id uint, published bool) (*models.PostView, error) {
	var view models.PostView
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		post, err := tx.Posts.GetPostByID(ctx, id)
		if err != nil {
			return translate(err, errPostNotFound)
		}
		if err := authorize(user, post, "publish this post"); err != nil {
			return err
		}
		s.setPublished(post, published)
		if err := tx.Posts.UpdatePost(ctx, post); err != nil {
			return err
		}
		view, err = s.loadView(ctx, tx, post.ID)
		return err
	})
	if err != nil {
		return nil, translate(err, errPostNotFound)
	}
	return &view, nil
}

// setPublished keeps published_at in step with is_published. Re-publishing an
// already published post keeps the original timestamp.
func (s *PostService) setPublished(post *models.Post, published bool) {
	switch {
	case published && !post.IsPublished:
		now := s.now()
		post.PublishedAt = &now
	case !published:
		post.PublishedAt = nil
	}
	post.IsPublished = published
}

func (s *PostService) loadView(ctx context.Context, tx *repositories.Store, id uint) (models.PostView, error) {
	post, err := tx.Posts.GetPostByID(ctx, id)
	if err != nil {
		return models.PostView{}, err
	}
	views, err := postViews(ctx, tx, []models.Post{*post})
	if err != nil {
		return models.PostView{}, err
	}
	return views[0], nil
}

// Delete removes the post together with its comments, likes, images and tag
// links
func (s *PostService) Delete(ctx context.Context, user *models.User, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		post, err := tx.Posts.GetPostByID(ctx, id)
		if err != nil {
			return translate(err, errPostNotFound)
		}
		if err := authorize(user, post, "delete this post"); err != nil {
			return err
		}
		return deletePosts(ctx, tx, []uint{post.ID})
	})
	if err != nil {
		return translate(err, errPostNotFound)
	}
	s.logger.Info("post deleted", zap.Uint("post_id", id), zap.Uint("user_id", user.ID))
	return nil
}

// Like records a like by user. Liking twice is a no-op.
func (s *PostService) Like(ctx context.Context, user *models.User, id uint) (*models.LikeStatus, error) {
	return s.toggleLike(ctx, user, id, true)
}

// Unlike removes the like by user if there is one
func (s *PostService) Unlike(ctx context.Context, user *models.User, id uint) (*models.LikeStatus, error) {
	return s.toggleLike(ctx, user, id, false)
}

func (s *PostService) toggleLike(ctx context.Context, user *models.User, id uint, like bool) (*models.LikeStatus, error) {
	status := &models.LikeStatus{TargetID: id, Liked: like}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		exists, err := tx.Posts.PostExists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.NotFound(errPostNotFound)
		}

		if like {
			_, err = tx.PostLikes.CreateLike(ctx, id, user.ID)
		} else {
			_, err = tx.PostLikes.DeleteLike(ctx, id, user.ID)
		}
		if err != nil {
			return err
		}
		status.LikeCount, err = tx.PostLikes.GetLikesCountByPostID(ctx, id)
		return err
	})
	if err != nil {
		return nil, translate(err, errPostNotFound)
	}
	return status, nil
}

// LikeCount returns the number of users who like the post
func (s *PostService) LikeCount(ctx context.Context, id uint) (*models.LikeCount, error) {
	exists, err := s.store.Posts.PostExists(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !exists {
		return nil, apperror.NotFound(errPostNotFound)
	}
	count, err := s.store.PostLikes.GetLikesCountByPostID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &models.LikeCount{TargetID: id, LikeCount: count}, nil
}
