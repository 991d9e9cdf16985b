package models

import "time"

// Category groups posts. Categories may be nested through ParentID.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Description *string   `json:"description"`
	ParentID    *uint     `json:"parent_id" gorm:"index"`
	Parent      *Category `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	User        *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Category) OwnerID() uint { return c.UserID }

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	ParentID    *uint   `json:"parent_id" validate:"omitempty,gt=0"`
}

// UpdateCategoryRequest only touches the fields that are present
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	ParentID    *uint   `json:"parent_id" validate:"omitempty,gt=0"`
}
