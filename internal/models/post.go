package models

import "time"

type ContentStatus string

const (
	ContentStatusActive   ContentStatus = "ACTIVE"
	ContentStatusReported ContentStatus = "REPORTED"
	ContentStatusArchived ContentStatus = "ARCHIVED"
)

func (s ContentStatus) Valid() bool {
	switch s {
	case ContentStatusActive, ContentStatusReported, ContentStatusArchived:
		return true
	}
	return false
}

// Post represents a social media post
type Post struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	UserID    uint          `json:"userId" gorm:"not null;index"`
	User      User          `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Title     string        `json:"title" gorm:"size:200"`
	Content   string        `json:"content"`
	Image     string        `json:"image,omitempty"`
	Status    ContentStatus `json:"status" gorm:"size:10;default:'ACTIVE';index"`
	CreatedAt time.Time     `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// PostView is a post as returned to a viewer, with its author and engagement.
type PostView struct {
	Post
	Author        UserCompact `json:"author"`
	LikesCount    int64       `json:"likesCount"`
	CommentsCount int64       `json:"commentsCount"`
	IsLiked       bool        `json:"isLiked"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required,min=1,max=5000"`
	Image   string `json:"image,omitempty" validate:"omitempty,url"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title   string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content string `json:"content,omitempty" validate:"omitempty,min=1,max=5000"`
	Image   string `json:"image,omitempty" validate:"omitempty,url"`
}

type UpdateStatusRequest struct {
	Status ContentStatus `json:"status" validate:"required,oneof=ACTIVE REPORTED ARCHIVED"`
	Reason string        `json:"reason,omitempty" validate:"omitempty,max=500"`
}
