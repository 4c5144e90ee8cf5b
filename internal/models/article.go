package models

import (
	"time"
)

// ExcerptLength is the number of runes taken from content when no excerpt is supplied
const ExcerptLength = 200

// Article represents an article in the system
type Article struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title     string    `json:"title" gorm:"type:varchar(200);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Excerpt   string    `json:"excerpt" gorm:"type:varchar(500)"`
	Published bool      `json:"published" gorm:"not null;index:idx_articles_published_created,priority:1"`
	AuthorID  string    `json:"author_id" gorm:"type:varchar(36);not null;index:idx_articles_author"`
	Author    *User     `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_articles_published_created,priority:2"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Article) TableName() string { return "articles" }

// ArticleCounts holds engagement counts derived on read
type ArticleCounts struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
}

// ArticleListing is an article row in feeds and profiles
type ArticleListing struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Excerpt   string        `json:"excerpt"`
	Published bool          `json:"published"`
	Author    UserSummary   `json:"author"`
	Counts    ArticleCounts `json:"counts"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ArticleDetail is a single article with its comments
type ArticleDetail struct {
	Article
	Author   UserSummary     `json:"author"`
	Comments []CommentDetail `json:"comments"`
	Counts   ArticleCounts   `json:"counts"`
}

// ArticleInput is the create/update payload
type ArticleInput struct {
	Title     string `json:"title" validate:"min=5,max=200"`
	Content   string `json:"content" validate:"min=50"`
	Excerpt   string `json:"excerpt" validate:"max=500"`
	Published *bool  `json:"published,omitempty"`
}

// FeedSort selects the feed ordering
type FeedSort string

const (
	SortLatest  FeedSort = "latest"
	SortPopular FeedSort = "popular"
)

// FeedQuery selects a page of published articles
type FeedQuery struct {
	Search string   `json:"search"`
	Sort   FeedSort `json:"sort"`
	Page   int      `json:"page"`
	Limit  int      `json:"limit"`
}

// FeedPage is one page of the feed
type FeedPage struct {
	Articles []ArticleListing `json:"articles"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
	Total    int64            `json:"total"`
	Pages    int64            `json:"pages"`
}
