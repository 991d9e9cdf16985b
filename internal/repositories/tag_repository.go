package repositories

import (
	"context"

	"github.com/anonto42/inkwell/backend/internal/models"
	"gorm.io/gorm"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	CreateTag(ctx context.Context, tag *models.Tag) error
	GetTagByID(ctx context.Context, id uint) (*models.Tag, error)
	GetTagsByIDs(ctx context.Context, ids []uint) ([]models.Tag, error)
	GetTags(ctx context.Context) ([]models.Tag, error)
	GetTagsByUserID(ctx context.Context, userID uint) ([]models.Tag, error)
	GetTagIDsByUserID(ctx context.Context, userID uint) ([]uint, error)
	UpdateTag(ctx context.Context, tag *models.Tag) error
	DeleteTags(ctx context.Context, ids []uint) error
	DeleteLinksByTagIDs(ctx context.Context, tagIDs []uint) error
}

type PostgresTagRepository struct {
	db *gorm.DB
}

func NewPostgresTagRepository(db *gorm.DB) *PostgresTagRepository {
	return &PostgresTagRepository{db: db}
}

func (r *PostgresTagRepository) CreateTag(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *PostgresTagRepository) GetTagByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *PostgresTagRepository) GetTagsByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	tags := []models.Tag{}
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *PostgresTagRepository) GetTags(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *PostgresTagRepository) GetTagsByUserID(ctx context.Context, userID uint) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *PostgresTagRepository) GetTagIDsByUserID(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Tag{}).Where("user_id = ?", userID).Pluck("id", &ids).Error
	return ids, err
}

func (r *PostgresTagRepository) UpdateTag(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *PostgresTagRepository) DeleteTags(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Tag{}).Error
}

func (r *PostgresTagRepository) DeleteLinksByTagIDs(ctx context.Context, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("tag_id IN ?", tagIDs).Delete(&models.PostTag{}).Error
}
