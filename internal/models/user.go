package models

import (
	"time"
)

// Role is the account role shown on profiles and managed by moderators
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ValidRoles defines allowed user roles
var ValidRoles = map[Role]bool{
	RoleUser:  true,
	RoleAdmin: true,
}

// User represents a registered account
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(50);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex:ux_users_email;not null"`
	Handle    *string   `json:"handle,omitempty" gorm:"type:varchar(30);uniqueIndex:ux_users_handle"`
	Bio       string    `json:"bio"`
	Image     string    `json:"image"`
	Verified  bool      `json:"verified" gorm:"not null;default:false"`
	Role      Role      `json:"role" gorm:"type:varchar(16);not null;default:USER"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_users_created"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// UserSummary is the author/follower shape embedded in other responses
type UserSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Handle   *string `json:"handle,omitempty"`
	Image    string  `json:"image"`
	Verified bool    `json:"verified"`
}

// Summary returns the public subset of the user
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		Handle:   u.Handle,
		Image:    u.Image,
		Verified: u.Verified,
	}
}

// UserCounts holds counts derived from edge and row cardinality
type UserCounts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
	Articles  int64 `json:"articles"`
}

// Profile is a user as seen by a viewer
type Profile struct {
	User        UserSummary      `json:"user"`
	Bio         string           `json:"bio"`
	Role        Role             `json:"role"`
	CreatedAt   time.Time        `json:"created_at"`
	Articles    []ArticleListing `json:"articles"`
	Counts      UserCounts       `json:"counts"`
	IsFollowing bool             `json:"is_following"`
}

// SearchResult is a user search hit
type SearchResult struct {
	UserSummary
	Followers int64 `json:"followers"`
	Articles  int64 `json:"articles"`
}

// ProfileInput is the self-edit payload
type ProfileInput struct {
	Name   string `json:"name" validate:"min=2,max=50"`
	Bio    string `json:"bio" validate:"max=500"`
	Handle string `json:"handle" validate:"omitempty,min=3,max=30,handle"`
	Image  string `json:"image"`
}
