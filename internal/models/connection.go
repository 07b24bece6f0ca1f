package models

import "time"

// Connection is a directed follow edge. Pending rows are requests awaiting
// the following side; accepted rows are treated as a mutual relationship.
type Connection struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"followerId" gorm:"not null;index;uniqueIndex:idx_follower_following"`
	Follower    User      `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	FollowingID uint      `json:"followingId" gorm:"not null;index;uniqueIndex:idx_follower_following"`
	Following   User      `json:"-" gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
	Pending     bool      `json:"pending" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Other returns the id of the party that is not userID.
func (c *Connection) Other(userID uint) uint {
	if c.FollowerID == userID {
		return c.FollowingID
	}
	return c.FollowerID
}

type ConnectionState string

const (
	ConnectionStateAdd       ConnectionState = "ADD"
	ConnectionStateRequest   ConnectionState = "REQUEST"
	ConnectionStateAccept    ConnectionState = "ACCEPT"
	ConnectionStateConnected ConnectionState = "CONNECTED"
)

// ConnectionUser is a user projection with denormalized counters.
type ConnectionUser struct {
	UserCompact
	UserCounts
}

type ConnectionResponse struct {
	User    ConnectionUser `json:"user"`
	UserID  uint           `json:"userId"`
	Pending bool           `json:"pending"`
}

type ConnectionRequest struct {
	User        UserCompact `json:"user"`
	RequesterID uint        `json:"requesterId"`
	TargetID    uint        `json:"targetId"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type ConnectionStateResponse struct {
	State        ConnectionState `json:"state"`
	UserID       uint            `json:"userId"`
	ConnectionID uint            `json:"connectionId"`
}

type Suggestion struct {
	User  ConnectionUser  `json:"user"`
	State ConnectionState `json:"state"`
}
