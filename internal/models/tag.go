package models

import "time"

// Tag labels posts through the post_tags join table
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;not null;uniqueIndex"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tag) OwnerID() uint { return t.UserID }

type TagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

// PostTag is the post_tags join row linking a post to a tag
type PostTag struct {
	PostID    uint      `json:"post_id" gorm:"primaryKey"`
	TagID     uint      `json:"tag_id" gorm:"primaryKey;index"`
	CreatedAt time.Time `json:"created_at"`
}
