package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationPostLiked          NotificationType = "POST_LIKED"
	NotificationPostCommented      NotificationType = "POST_COMMENTED"
	NotificationMentionedInComment NotificationType = "MENTIONED_IN_COMMENT"
	NotificationPostReported       NotificationType = "POST_REPORTED"
	NotificationPostArchived       NotificationType = "POST_ARCHIVED"
	NotificationPostApproved       NotificationType = "POST_APPROVED"
	NotificationCommentReported    NotificationType = "COMMENT_REPORTED"
	NotificationCommentArchived    NotificationType = "COMMENT_ARCHIVED"
	NotificationCommentApproved    NotificationType = "COMMENT_APPROVED"
	NotificationConnectionRequest  NotificationType = "CONNECTION_REQUEST"
	NotificationNewFollower        NotificationType = "NEW_FOLLOWER"
	NotificationSystemAnnouncement NotificationType = "SYSTEM_ANNOUNCEMENT"
	NotificationAccountWarning     NotificationType = "ACCOUNT_WARNING"
)

// Notification belongs to exactly one recipient. Only the read flag is ever
// mutated after creation.
type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"userId" gorm:"not null;index"`
	User      User             `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Type      NotificationType `json:"type" gorm:"size:30;index"`
	Message   string           `json:"message"`
	Data      datatypes.JSON   `json:"data,omitempty"`
	Read      bool             `json:"read" gorm:"not null;default:false;index"`
	CreatedAt time.Time        `json:"createdAt" gorm:"index"`
}

type AnnouncementRequest struct {
	Message string `json:"message" validate:"required,min=1,max=1000"`
	UserIDs []uint `json:"userIds,omitempty"`
}

type WarningRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}
