package models

import "time"

// Report is filed by a user against a post or, when CommentID is set, a comment.
type Report struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	PostID    *uint     `json:"postId,omitempty" gorm:"index"`
	CommentID *uint     `json:"commentId,omitempty" gorm:"index"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *Report) IsCommentReport() bool {
	return r.CommentID != nil
}

type CreateReportRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}
