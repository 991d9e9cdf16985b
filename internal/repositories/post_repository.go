package repositories

import (
	"context"

	"github.com/anonto42/inkwell/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
	GetPostIDsByUserID(ctx context.Context, userID uint) ([]uint, error)
	PostExists(ctx context.Context, id uint) (bool, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	ReplaceImages(ctx context.Context, postID uint, urls []string) error
	ReplaceTags(ctx context.Context, postID uint, tagIDs []uint) error
	// ClearCategory uncategorizes every post whose category is in categoryIDs
	ClearCategory(ctx context.Context, categoryIDs []uint) error
	DeletePosts(ctx context.Context, ids []uint) error
	DeleteImagesByPostIDs(ctx context.Context, postIDs []uint) error
	DeleteTagLinksByPostIDs(ctx context.Context, postIDs []uint) error
}

// PostgresPostRepository implements PostRepository on top of gorm
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost inserts the post and its images. Tag links are written separately.
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit("Tags").Create(post).Error
}

func (r *PostgresPostRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") })
}

// GetPostByID retrieves a post with its images and tags
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.preloaded(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPosts lists posts newest first
func (r *PostgresPostRepository) GetPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	query := r.preloaded(ctx).Model(&models.Post{})
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Published != nil {
		query = query.Where("is_published = ?", *filter.Published)
	}

	posts := []models.Post{}
	err := query.Order("created_at DESC").Order("id DESC").
		Offset(filter.Skip).Limit(filter.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostgresPostRepository) GetPostIDsByUserID(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", userID).Pluck("id", &ids).Error
	return ids, err
}

func (r *PostgresPostRepository) PostExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// UpdatePost saves the post columns only; images and tags have their own calls
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error
}

func (r *PostgresPostRepository) ReplaceImages(ctx context.Context, postID uint, urls []string) error {
	if err := r.DeleteImagesByPostIDs(ctx, []uint{postID}); err != nil {
		return err
	}
	if len(urls) == 0 {
		return nil
	}
	images := make([]models.PostImage, 0, len(urls))
	for _, url := range urls {
		images = append(images, models.PostImage{PostID: postID, ImageURL: url})
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

func (r *PostgresPostRepository) ReplaceTags(ctx context.Context, postID uint, tagIDs []uint) error {
	if err := r.DeleteTagLinksByPostIDs(ctx, []uint{postID}); err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	links := make([]models.PostTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, models.PostTag{PostID: postID, TagID: tagID})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

func (r *PostgresPostRepository) ClearCategory(ctx context.Context, categoryIDs []uint) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("category_id IN ?", categoryIDs).
		Update("category_id", nil).Error
}

func (r *PostgresPostRepository) DeletePosts(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Post{}).Error
}

func (r *PostgresPostRepository) DeleteImagesByPostIDs(ctx context.Context, postIDs []uint) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("post_id IN ?", postIDs).Delete(&models.PostImage{}).Error
}

func (r *PostgresPostRepository) DeleteTagLinksByPostIDs(ctx context.Context, postIDs []uint) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("post_id IN ?", postIDs).Delete(&models.PostTag{}).Error
}
