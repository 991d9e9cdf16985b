package services

import (
	"context"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"go.uber.org/zap"
)

const errUserNotFound = "user not found"

// UserService manages profiles and account deletion
type UserService struct {
	store  *repositories.Store
	logger *zap.Logger
}

func NewUserService(store *repositories.Store, logger *zap.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

// GetProfile returns the public profile of a user
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.Profile, error) {
	user, err := s.store.Users.GetUserByID(ctx, id)
	if err != nil {
		return nil, translate(err, errUserNotFound)
	}
	profile := user.Profile()
	return &profile, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, req models.UpdateProfileRequest) (*models.User, error) {
	var updated *models.User
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		updated, err = tx.Users.GetUserByID(ctx, user.ID)
		if err != nil {
			return translate(err, errUserNotFound)
		}
		if req.Avatar != nil {
			updated.Avatar = req.Avatar
		}
		if req.Bio != nil {
			updated.Bio = req.Bio
		}
		return tx.Users.UpdateUser(ctx, updated)
	})
	if err != nil {
		return nil, translate(err, errUserNotFound)
	}
	return updated, nil
}

// DeleteAccount removes the user and everything they own. Posts of other
// users in the user's categories become uncategorized.
func (s *UserService) DeleteAccount(ctx context.Context, user *models.User) error {
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		postIDs, err := tx.Posts.GetPostIDsByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		if err := deletePosts(ctx, tx, postIDs); err != nil {
			return err
		}

		commentIDs, err := tx.Comments.GetCommentIDsByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		if err := deleteComments(ctx, tx, commentIDs); err != nil {
			return err
		}

		if err := tx.PostLikes.DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}
		if err := tx.CommentLikes.DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}

		tagIDs, err := tx.Tags.GetTagIDsByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		if err := tx.Tags.DeleteLinksByTagIDs(ctx, tagIDs); err != nil {
			return err
		}
		if err := tx.Tags.DeleteTags(ctx, tagIDs); err != nil {
			return err
		}

		categoryIDs, err := tx.Categories.GetCategoryIDsByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		if err := tx.Posts.ClearCategory(ctx, categoryIDs); err != nil {
			return err
		}
		if err := tx.Categories.DetachChildren(ctx, categoryIDs); err != nil {
			return err
		}
		for _, id := range categoryIDs {
			if err := tx.Categories.DeleteCategory(ctx, id); err != nil {
				return err
			}
		}

		return tx.Users.DeleteUser(ctx, user.ID)
	})
	if err != nil {
		return translate(err, errUserNotFound)
	}
	s.logger.Info("account deleted", zap.Uint("user_id", user.ID))
	return nil
}

// Me reloads the authenticated user
func (s *UserService) Me(ctx context.Context, user *models.User) (*models.User, error) {
	me, err := s.store.Users.GetUserByID(ctx, user.ID)
	if err != nil {
		return nil, translate(err, errUserNotFound)
	}
	return me, nil
}
