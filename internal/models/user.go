package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	FullName     string    `json:"fullName" gorm:"size:100"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Password     string    `json:"-"` // bcrypt hash
	ProfileImage string    `json:"profileImage"`
	Bio          string    `json:"bio"`
	Gender       string    `json:"gender,omitempty" gorm:"size:20"`
	Role         Role      `json:"role" gorm:"size:10;default:'USER';index"`
	FirebaseUID  *string   `json:"-" gorm:"uniqueIndex"`
	Settings     *Settings `json:"settings,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserCompact is the identity projection embedded in connection, suggestion
// and notification responses.
type UserCompact struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	FullName     string `json:"fullName"`
	ProfileImage string `json:"profileImage"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:           u.ID,
		Username:     u.Username,
		FullName:     u.FullName,
		ProfileImage: u.ProfileImage,
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserCounts holds the denormalized counters shown next to a user.
type UserCounts struct {
	ConnectionCount int64 `json:"connectionCount"`
	PostsCount      int64 `json:"postsCount"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=50"`
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Gender   string `json:"gender,omitempty" validate:"omitempty,max=20"`
}

type LoginRequest struct {
	Login    string `json:"login" validate:"required"` // username or email
	Password string `json:"password" validate:"required"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type UpdateUserRequest struct {
	FullName     string `json:"fullName,omitempty" validate:"omitempty,min=2,max=100"`
	Bio          string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Gender       string `json:"gender,omitempty" validate:"omitempty,max=20"`
	ProfileImage string `json:"profileImage,omitempty" validate:"omitempty,url"`
}

type UpdateRoleRequest struct {
	Role Role `json:"role" validate:"required,oneof=USER ADMIN"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}
