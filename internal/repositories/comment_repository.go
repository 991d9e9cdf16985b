package repositories

import (
	"context"

	"github.com/anonto42/inkwell/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID uint) ([]models.Comment, error)
	GetCommentsByUserID(ctx context.Context, userID uint) ([]models.Comment, error)
	GetCommentsLikedByUser(ctx context.Context, userID uint) ([]models.Comment, error)
	GetCommentIDsByPostIDs(ctx context.Context, postIDs []uint) ([]uint, error)
	GetCommentIDsByUserID(ctx context.Context, userID uint) ([]uint, error)
	GetReplyIDs(ctx context.Context, parentIDs []uint) ([]uint, error)
	CountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	ReplaceImages(ctx context.Context, commentID uint, urls []string) error
	DeleteComments(ctx context.Context, ids []uint) error
	DeleteImagesByCommentIDs(ctx context.Context, commentIDs []uint) error
}

// PostgresCommentRepository implements CommentRepository on top of gorm
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment inserts the comment together with its images
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *PostgresCommentRepository) withImages(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.withImages(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID returns the comments of a post oldest first
func (r *PostgresCommentRepository) GetCommentsByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.withImages(ctx).Where("post_id = ?", postID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *PostgresCommentRepository) GetCommentsByUserID(ctx context.Context, userID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.withImages(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *PostgresCommentRepository) GetCommentsLikedByUser(ctx context.Context, userID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.withImages(ctx).
		Select("comments.*").
		Joins("JOIN comment_likes ON comment_likes.comment_id = comments.id").
		Where("comment_likes.user_id = ?", userID).
		Order("comment_likes.created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *PostgresCommentRepository) GetCommentIDsByPostIDs(ctx context.Context, postIDs []uint) ([]uint, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id IN ?", postIDs).Pluck("id", &ids).Error
	return ids, err
}

func (r *PostgresCommentRepository) GetCommentIDsByUserID(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("user_id = ?", userID).Pluck("id", &ids).Error
	return ids, err
}

// GetReplyIDs returns the direct replies to any of parentIDs
func (r *PostgresCommentRepository) GetReplyIDs(ctx context.Context, parentIDs []uint) ([]uint, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("parent_id IN ?", parentIDs).Pluck("id", &ids).Error
	return ids, err
}

type postCount struct {
	PostID uint
	Total  int64
}

func (r *PostgresCommentRepository) CountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []postCount
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}

func (r *PostgresCommentRepository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(comment).Error
}

func (r *PostgresCommentRepository) ReplaceImages(ctx context.Context, commentID uint, urls []string) error {
	if err := r.DeleteImagesByCommentIDs(ctx, []uint{commentID}); err != nil {
		return err
	}
	if len(urls) == 0 {
		return nil
	}
	images := make([]models.CommentImage, 0, len(urls))
	for _, url := range urls {
		images = append(images, models.CommentImage{CommentID: commentID, ImageURL: url})
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

func (r *PostgresCommentRepository) DeleteComments(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Comment{}).Error
}

func (r *PostgresCommentRepository) DeleteImagesByCommentIDs(ctx context.Context, commentIDs []uint) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("comment_id IN ?", commentIDs).Delete(&models.CommentImage{}).Error
}
