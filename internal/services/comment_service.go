package services

import (
	"context"
	"strings"

	"github.com/anonto42/inkwell/backend/internal/apperror"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"go.uber.org/zap"
)

const errCommentNotFound = "comment not found"

// CommentService handles comments, replies and comment likes
type CommentService struct {
	store  *repositories.Store
	logger *zap.Logger
}

func NewCommentService(store *repositories.Store, logger *zap.Logger) *CommentService {
	return &CommentService{store: store, logger: logger}
}

// Create adds a comment to the post. A parent comment must belong to the same
// post.
func (s *CommentService) Create(ctx context.Context, user *models.User, postID uint, req models.CreateCommentRequest) (*models.CommentView, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperror.Validation("content is required")
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   user.ID,
		ParentID: req.ParentID,
		Content:  content,
	}
	for _, url := range req.Images {
		comment.Images = append(comment.Images, models.CommentImage{ImageURL: url})
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		exists, err := tx.Posts.PostExists(ctx, postID)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.NotFound(errPostNotFound)
		}
		if req.ParentID != nil {
			parent, err := tx.Comments.GetCommentByID(ctx, *req.ParentID)
			if err != nil {
				return translate(err, "parent comment not found")
			}
			if parent.PostID != postID {
				return apperror.NotFound("parent comment not found")
			}
		}
		return tx.Comments.CreateComment(ctx, comment)
	})
	if err != nil {
		return nil, translate(err, errCommentNotFound)
	}

	view := newCommentView(comment, 0)
	return &view, nil
}

// ListForPost returns the comments of a post oldest first. An unknown post
// has no comments.
func (s *CommentService) ListForPost(ctx context.Context, postID uint) ([]models.CommentView, error) {
	comments, err := s.store.Comments.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return s.views(ctx, comments)
}

func (s *CommentService) Get(ctx context.Context, id uint) (*models.CommentView, error) {
	comment, err := s.store.Comments.GetCommentByID(ctx, id)
	if err != nil {
		return nil, translate(err, errCommentNotFound)
	}
	likes, err := s.store.CommentLikes.GetLikesCount(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	view := newCommentView(comment, likes)
	return &view, nil
}

func (s *CommentService) ListMine(ctx context.Context, user *models.User) ([]models.CommentView, error) {
	comments, err := s.store.Comments.GetCommentsByUserID(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return s.views(ctx, comments)
}

// ListLiked returns the comments user has liked, most recently liked first
func (s *CommentService) ListLiked(ctx context.Context, user *models.User) ([]models.CommentView, error) {
	comments, err := s.store.Comments.GetCommentsLikedByUser(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return s.views(ctx, comments)
}

func (s *CommentService) views(ctx context.Context, comments []models.Comment) ([]models.CommentView, error) {
	views, err := commentViews(ctx, s.store, comments)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return views, nil
}

func (s *CommentService) Update(ctx context.Context, user *models.User, id uint, req models.UpdateCommentRequest) (*models.CommentView, error) {
	var view models.CommentView
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		comment, err := tx.Comments.GetCommentByID(ctx, id)
		if err != nil {
			return translate(err, errCommentNotFound)
		}
		if err := authorize(user, comment, "update this comment"); err != nil {
			return err
		}

		if req.Content != nil {
			content := strings.TrimSpace(*req.Content)
			if content == "" {
				return apperror.Validation("content cannot be empty")
			}
			comment.Content = content
		}
		if err := tx.Comments.UpdateComment(ctx, comment); err != nil {
			return err
		}
		if req.Images != nil {
			if err := tx.Comments.ReplaceImages(ctx, comment.ID, *req.Images); err != nil {
				return err
			}
		}

		updated, err := tx.Comments.GetCommentByID(ctx, comment.ID)
		if err != nil {
			return err
		}
		likes, err := tx.CommentLikes.GetLikesCount(ctx, comment.ID)
		if err != nil {
			return err
		}
		view = newCommentView(updated, likes)
		return nil
	})
	if err != nil {
		return nil, translate(err, errCommentNotFound)
	}
	return &view, nil
}

// Delete removes the comment, its replies, and their likes and images
func (s *CommentService) Delete(ctx context.Context, user *models.User, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		comment, err := tx.Comments.GetCommentByID(ctx, id)
		if err != nil {
			return translate(err, errCommentNotFound)
		}
		if err := authorize(user, comment, "delete this comment"); err != nil {
			return err
		}
		return deleteComments(ctx, tx, []uint{comment.ID})
	})
	if err != nil {
		return translate(err, errCommentNotFound)
	}
	s.logger.Info("comment deleted", zap.Uint("comment_id", id), zap.Uint("user_id", user.ID))
	return nil
}

// Like records a like by user. Liking twice is a no-op.
func (s *CommentService) Like(ctx context.Context, user *models.User, id uint) (*models.LikeStatus, error) {
	return s.toggleLike(ctx, user, id, true)
}

// Unlike removes the like by user if there is one
func (s *CommentService) Unlike(ctx context.Context, user *models.User, id uint) (*models.LikeStatus, error) {
	return s.toggleLike(ctx, user, id, false)
}

func (s *CommentService) toggleLike(ctx context.Context, user *models.User, id uint, like bool) (*models.LikeStatus, error) {
	status := &models.LikeStatus{TargetID: id, Liked: like}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Comments.GetCommentByID(ctx, id); err != nil {
			return translate(err, errCommentNotFound)
		}

		var err error
		if like {
			_, err = tx.CommentLikes.CreateCommentLike(ctx, id, user.ID)
		} else {
			_, err = tx.CommentLikes.DeleteCommentLike(ctx, id, user.ID)
		}
		if err != nil {
			return err
		}
		status.LikeCount, err = tx.CommentLikes.GetLikesCount(ctx, id)
		return err
	})
	if err != nil {
		return nil, translate(err, errCommentNotFound)
	}
	return status, nil
}

func (s *CommentService) LikeCount(ctx context.Context, id uint) (*models.LikeCount, error) {
	if _, err := s.store.Comments.GetCommentByID(ctx, id); err != nil {
		return nil, translate(err, errCommentNotFound)
	}
	count, err := s.store.CommentLikes.GetLikesCount(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &models.LikeCount{TargetID: id, LikeCount: count}, nil
}
