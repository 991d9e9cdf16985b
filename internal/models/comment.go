package models

import "time"

// Comment represents a comment on a post. ParentID makes it a reply to another
// comment on the same post.
type Comment struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	PostID    uint           `json:"post_id" gorm:"not null;index"`
	Post      *Post          `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	User      *User          `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ParentID  *uint          `json:"parent_id" gorm:"index"`
	Parent    *Comment       `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	Images    []CommentImage `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (c *Comment) OwnerID() uint { return c.UserID }

// CommentImage is one image URL attached to a comment
type CommentImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CommentID uint      `json:"comment_id" gorm:"not null;index"`
	ImageURL  string    `json:"image_url" gorm:"size:2048;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentView is the serialized form of a comment with its like count
type CommentView struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	UserID    uint      `json:"user_id"`
	ParentID  *uint     `json:"parent_id"`
	Content   string    `json:"content"`
	Images    []string  `json:"images"`
	LikeCount int64     `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a new comment.
// The post comes from the route.
type CreateCommentRequest struct {
	Content  string   `json:"content" validate:"required,min=1,max=5000"`
	ParentID *uint    `json:"parent_id" validate:"omitempty,gt=0"`
	Images   []string `json:"images" validate:"omitempty,max=5,dive,url,max=2048"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content *string   `json:"content" validate:"omitempty,min=1,max=5000"`
	Images  *[]string `json:"images" validate:"omitempty,max=5,dive,url,max=2048"`
}
