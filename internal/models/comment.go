package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	PostID    uint          `json:"postId" gorm:"not null;index"`
	Post      Post          `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	UserID    uint          `json:"userId" gorm:"not null;index"`
	User      User          `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Author    string        `json:"author"`
	Text      string        `json:"text"`
	Status    ContentStatus `json:"status" gorm:"size:10;default:'ACTIVE';index"`
	IsEdited  bool          `json:"isEdited"`
	CreatedAt time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}
