package repositories

import (
	"context"

	"github.com/anonto42/inkwell/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentLikeRepository defines the interface for comment like operations
type CommentLikeRepository interface {
	CreateCommentLike(ctx context.Context, commentID, userID uint) (bool, error)
	DeleteCommentLike(ctx context.Context, commentID, userID uint) (bool, error)
	HasUserLikedComment(ctx context.Context, commentID, userID uint) (bool, error)
	GetLikesCount(ctx context.Context, commentID uint) (int64, error)
	CountByCommentIDs(ctx context.Context, commentIDs []uint) (map[uint]int64, error)
	DeleteByCommentIDs(ctx context.Context, commentIDs []uint) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

type postgresCommentLikeRepository struct {
	db *gorm.DB
}

func NewPostgresCommentLikeRepository(db *gorm.DB) CommentLikeRepository {
	return &postgresCommentLikeRepository{db: db}
}

func (r *postgresCommentLikeRepository) CreateCommentLike(ctx context.Context, commentID, userID uint) (bool, error) {
	like := &models.CommentLike{CommentID: commentID, UserID: userID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "comment_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postgresCommentLikeRepository) DeleteCommentLike(ctx context.Context, commentID, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&models.CommentLike{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postgresCommentLikeRepository) HasUserLikedComment(ctx context.Context, commentID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CommentLike{}).Where("comment_id = ? AND user_id = ?", commentID, userID).Count(&count).Error
	return count > 0, err
}

func (r *postgresCommentLikeRepository) GetLikesCount(ctx context.Context, commentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}

type commentCount struct {
	CommentID uint
	Total     int64
}

func (r *postgresCommentLikeRepository) CountByCommentIDs(ctx context.Context, commentIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}
	var rows []commentCount
	err := r.db.WithContext(ctx).Model(&models.CommentLike{}).
		Select("comment_id, COUNT(*) AS total").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.CommentID] = row.Total
	}
	return counts, nil
}

func (r *postgresCommentLikeRepository) DeleteByCommentIDs(ctx context.Context, commentIDs []uint) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("comment_id IN ?", commentIDs).Delete(&models.CommentLike{}).Error
}

func (r *postgresCommentLikeRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CommentLike{}).Error
}
