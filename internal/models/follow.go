package models

import "time"

// Follow is the (follower, following) edge; at most one per ordered pair and never a self edge
type Follow struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FollowerID  string    `json:"follower_id" gorm:"type:varchar(36);not null;uniqueIndex:ux_follows_pair;check:chk_follows_not_self,follower_id <> following_id"`
	Follower    *User     `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	FollowingID string    `json:"following_id" gorm:"type:varchar(36);not null;uniqueIndex:ux_follows_pair;index:idx_follows_following"`
	Following   *User     `json:"-" gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "follows" }

// FollowState is the result of a follow toggle
type FollowState struct {
	Following bool  `json:"following"`
	Followers int64 `json:"followers"`
}

// FollowPage is a page of followers or followed users
type FollowPage struct {
	Users []UserSummary `json:"users"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int64         `json:"total"`
	Pages int64         `json:"pages"`
}
