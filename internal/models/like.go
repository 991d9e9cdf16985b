package models

import "time"

// PostLike represents a like on a post. A user likes a post at most once.
type PostLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;index;uniqueIndex:idx_post_user_like"`
	Post      *Post     `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_post_user_like"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeCount is the public like total of a post or comment
type LikeCount struct {
	TargetID  uint  `json:"target_id"`
	LikeCount int64 `json:"like_count"`
}
