package models

import "time"

// Post is a blog entry owned by a user
type Post struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Title       string      `json:"title" gorm:"size:200;not null;index"`
	Content     string      `json:"content" gorm:"type:text;not null"`
	Slug        *string     `json:"slug" gorm:"size:200;index"`
	IsPublished bool        `json:"is_published" gorm:"not null;default:false;index"`
	PublishedAt *time.Time  `json:"published_at"`
	CategoryID  *uint       `json:"category_id" gorm:"index"`
	Category    *Category   `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	UserID      uint        `json:"user_id" gorm:"not null;index"`
	User        *User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Images      []PostImage `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Tags        []Tag       `json:"-" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (p *Post) OwnerID() uint { return p.UserID }

// PostImage is one image URL attached to a post, kept in insertion order
type PostImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	ImageURL  string    `json:"image_url" gorm:"size:2048;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// PostView is the serialized form of a post with its derived counts
type PostView struct {
	ID           uint          `json:"id"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	Slug         *string       `json:"slug"`
	IsPublished  bool          `json:"is_published"`
	PublishedAt  *time.Time    `json:"published_at"`
	CategoryID   *uint         `json:"category_id"`
	UserID       uint          `json:"user_id"`
	Images       []string      `json:"images"`
	Tags         []string      `json:"tags"`
	LikeCount    int64         `json:"like_count"`
	CommentCount int64         `json:"comment_count"`
	Comments     []CommentView `json:"comments,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// PostFilter narrows a post listing. Zero values mean "no filter".
type PostFilter struct {
	CategoryID *uint
	UserID     *uint
	Published  *bool
	Skip       int
	Limit      int
}

type CreatePostRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Content     string   `json:"content" validate:"required,min=1"`
	CategoryID  *uint    `json:"category_id" validate:"omitempty,gt=0"`
	Slug        *string  `json:"slug" validate:"omitempty,slug,max=200"`
	IsPublished bool     `json:"is_published"`
	TagIDs      []uint   `json:"tags" validate:"omitempty,max=20,dive,gt=0"`
	Images      []string `json:"images" validate:"omitempty,max=10,dive,url,max=2048"`
}

// UpdatePostRequest only touches the fields that are present. Non-nil Images or
// TagIDs replace the existing sets.
type UpdatePostRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Content     *string   `json:"content" validate:"omitempty,min=1"`
	CategoryID  *uint     `json:"category_id" validate:"omitempty,gt=0"`
	Slug        *string   `json:"slug" validate:"omitempty,slug,max=200"`
	IsPublished *bool     `json:"is_published"`
	TagIDs      *[]uint   `json:"tags" validate:"omitempty,max=20,dive,gt=0"`
	Images      *[]string `json:"images" validate:"omitempty,max=10,dive,url,max=2048"`
}

// LikeStatus is returned by like and unlike operations
type LikeStatus struct {
	TargetID  uint  `json:"target_id"`
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}
