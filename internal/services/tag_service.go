package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/inkwell/backend/internal/apperror"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const errTagNotFound = "tag not found"

type TagService struct {
	store  *repositories.Store
	logger *zap.Logger
}

func NewTagService(store *repositories.Store, logger *zap.Logger) *TagService {
	return &TagService{store: store, logger: logger}
}

func (s *TagService) Create(ctx context.Context, user *models.User, req models.TagRequest) (*models.Tag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}
	tag := &models.Tag{Name: name, UserID: user.ID}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		return tx.Tags.CreateTag(ctx, tag)
	})
	if err != nil {
		return nil, tagError(err)
	}
	return tag, nil
}

func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.store.Tags.GetTags(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return tags, nil
}

func (s *TagService) ListMine(ctx context.Context, user *models.User) ([]models.Tag, error) {
	tags, err := s.store.Tags.GetTagsByUserID(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return tags, nil
}

func (s *TagService) Get(ctx context.Context, id uint) (*models.Tag, error) {
	tag, err := s.store.Tags.GetTagByID(ctx, id)
	if err != nil {
		return nil, translate(err, errTagNotFound)
	}
	return tag, nil
}

// Update renames the tag
func (s *TagService) Update(ctx context.Context, user *models.User, id uint, req models.TagRequest) (*models.Tag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}

	var tag *models.Tag
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		tag, err = tx.Tags.GetTagByID(ctx, id)
		if err != nil {
			return translate(err, errTagNotFound)
		}
		if err := authorize(user, tag, "update this tag"); err != nil {
			return err
		}
		tag.Name = name
		return tx.Tags.UpdateTag(ctx, tag)
	})
	if err != nil {
		return nil, tagError(err)
	}
	return tag, nil
}

// Delete removes the tag and detaches it from every post
func (s *TagService) Delete(ctx context.Context, user *models.User, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		tag, err := tx.Tags.GetTagByID(ctx, id)
		if err != nil {
			return translate(err, errTagNotFound)
		}
		if err := authorize(user, tag, "delete this tag"); err != nil {
			return err
		}
		ids := []uint{tag.ID}
		if err := tx.Tags.DeleteLinksByTagIDs(ctx, ids); err != nil {
			return err
		}
		return tx.Tags.DeleteTags(ctx, ids)
	})
	return translate(err, errTagNotFound)
}

func tagError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Wrap(apperror.KindConflict, "tag name already exists", err)
	}
	return translate(err, errTagNotFound)
}
