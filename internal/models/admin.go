package models

// Stats are the moderation dashboard totals
type Stats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalArticles int64 `json:"total_articles"`
	TotalLikes    int64 `json:"total_likes"`
	TotalComments int64 `json:"total_comments"`
}

// UserPage is a page of users for the moderation list
type UserPage struct {
	Users []User `json:"users"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Total int64  `json:"total"`
	Pages int64  `json:"pages"`
}
