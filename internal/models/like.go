package models

import "time"

// Like is the (user, article) engagement edge; at most one per pair
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:ux_likes_user_article"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ArticleID string    `json:"article_id" gorm:"type:varchar(36);not null;uniqueIndex:ux_likes_user_article;index:idx_likes_article"`
	Article   *Article  `json:"-" gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string { return "likes" }

// LikeState is the result of a like toggle
type LikeState struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}
