package models

import (
	"time"
)

// Comment represents a comment on an article
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  string    `json:"author_id" gorm:"type:varchar(36);not null"`
	Author    *User     `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	ArticleID string    `json:"article_id" gorm:"type:varchar(36);not null;index:idx_comments_article"`
	Article   *Article  `json:"-" gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

func (Comment) TableName() string { return "comments" }

// CommentDetail is a comment with its author
type CommentDetail struct {
	Comment
	Author UserSummary `json:"author"`
}

// CommentInput is the comment payload
type CommentInput struct {
	Content string `json:"content" validate:"min=1,max=1000"`
}
