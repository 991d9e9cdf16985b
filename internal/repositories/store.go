package repositories

import (
	"context"

	"github.com/anonto42/inkwell/backend/internal/models"
	"gorm.io/gorm"
)

// Store groups the repositories that share one gorm handle. Inside Transaction
// every repository is bound to the same transaction.
type Store struct {
	db *gorm.DB

	Users        UserRepository
	Categories   CategoryRepository
	Posts        PostRepository
	Comments     CommentRepository
	PostLikes    LikeRepository
	CommentLikes CommentLikeRepository
	Tags         TagRepository
}

// NewStore creates a Store over db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:           db,
		Users:        NewPostgresUserRepository(db),
		Categories:   NewPostgresCategoryRepository(db),
		Posts:        NewPostgresPostRepository(db),
		Comments:     NewPostgresCommentRepository(db),
		PostLikes:    NewPostgresLikeRepository(db),
		CommentLikes: NewPostgresCommentLikeRepository(db),
		Tags:         NewPostgresTagRepository(db),
	}
}

// Transaction runs fn in a single database transaction. Returning an error
// from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Ping verifies the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Migrate creates or updates the schema for all models
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Post{}, "Tags", &models.PostTag{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
		&models.PostImage{},
		&models.Comment{},
		&models.CommentImage{},
		&models.PostLike{},
		&models.CommentLike{},
	)
}
