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

const errCategoryNotFound = "category not found"

type CategoryService struct {
	store  *repositories.Store
	logger *zap.Logger
}

func NewCategoryService(store *repositories.Store, logger *zap.Logger) *CategoryService {
	return &CategoryService{store: store, logger: logger}
}

func (s *CategoryService) Create(ctx context.Context, user *models.User, req models.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}

	category := &models.Category{
		Name:        name,
		Description: req.Description,
		ParentID:    req.ParentID,
		UserID:      user.ID,
	}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if req.ParentID != nil {
			if _, err := tx.Categories.GetCategoryByID(ctx, *req.ParentID); err != nil {
				return translate(err, "parent category not found")
			}
		}
		return tx.Categories.CreateCategory(ctx, category)
	})
	if err != nil {
		return nil, categoryError(err)
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.store.Categories.GetCategories(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return categories, nil
}

func (s *CategoryService) ListMine(ctx context.Context, user *models.User) ([]models.Category, error) {
	categories, err := s.store.Categories.GetCategoriesByUserID(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.store.Categories.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, translate(err, errCategoryNotFound)
	}
	return category, nil
}

// Update applies the fields present in req. A category cannot become its own
// ancestor.
func (s *CategoryService) Update(ctx context.Context, user *models.User, id uint, req models.UpdateCategoryRequest) (*models.Category, error) {
	var category *models.Category
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		category, err = tx.Categories.GetCategoryByID(ctx, id)
		if err != nil {
			return translate(err, errCategoryNotFound)
		}
		if err := authorize(user, category, "update this category"); err != nil {
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperror.Validation("name cannot be empty")
			}
			category.Name = name
		}
		if req.Description != nil {
			category.Description = req.Description
		}
		if req.ParentID != nil {
			if err := checkParent(ctx, tx, category.ID, *req.ParentID); err != nil {
				return err
			}
			category.ParentID = req.ParentID
		}
		return tx.Categories.UpdateCategory(ctx, category)
	})
	if err != nil {
		return nil, categoryError(err)
	}
	return category, nil
}

// checkParent walks up from parentID and fails if it reaches id
func checkParent(ctx context.Context, tx *repositories.Store, id, parentID uint) error {
	seen := map[uint]bool{}
	current := &parentID
	for current != nil {
		if *current == id {
			return apperror.Validation("a category cannot be nested under itself or its descendants")
		}
		if seen[*current] {
			break
		}
		seen[*current] = true

		parent, err := tx.Categories.GetCategoryByID(ctx, *current)
		if err != nil {
			return translate(err, "parent category not found")
		}
		current = parent.ParentID
	}
	return nil
}

// Delete removes the category. Its posts become uncategorized and its child
// categories move to the top level.
func (s *CategoryService) Delete(ctx context.Context, user *models.User, id uint) error {
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		category, err := tx.Categories.GetCategoryByID(ctx, id)
		if err != nil {
			return translate(err, errCategoryNotFound)
		}
		if err := authorize(user, category, "delete this category"); err != nil {
			return err
		}

		ids := []uint{category.ID}
		if err := tx.Posts.ClearCategory(ctx, ids); err != nil {
			return err
		}
		if err := tx.Categories.DetachChildren(ctx, ids); err != nil {
			return err
		}
		return tx.Categories.DeleteCategory(ctx, category.ID)
	})
	if err != nil {
		return translate(err, errCategoryNotFound)
	}
	s.logger.Info("category deleted", zap.Uint("category_id", id), zap.Uint("user_id", user.ID))
	return nil
}

func categoryError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Wrap(apperror.KindConflict, "category name already exists", err)
	}
	return translate(err, errCategoryNotFound)
}
