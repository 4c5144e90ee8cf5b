package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/social-blog-api/internal/database"
	"github.com/social-blog-api/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	HandleTaken(ctx context.Context, handle, exceptUserID string) (bool, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	SetVerified(ctx context.Context, id string, verified bool) error
	SetRole(ctx context.Context, id string, role models.Role) error
	Search(ctx context.Context, query string, limit int) ([]*models.User, error)
	List(ctx context.Context, offset, limit int) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// FeedFilter selects published articles for the feed
type FeedFilter struct {
	Search string
	Sort   models.FeedSort
	Offset int
	Limit  int
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
	ListPublished(ctx context.Context, filter FeedFilter) ([]*models.Article, error)
	CountPublished(ctx context.Context, search string) (int64, error)
	ListPublishedByAuthor(ctx context.Context, authorID string) ([]*models.Article, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error)
	CountByArticles(ctx context.Context, articleIDs []string) (map[string]int64, error)
	Count(ctx context.Context) (int64, error)
}

// LikeRepository defines the interface for the (user, article) edge
type LikeRepository interface {
	// Toggle deletes the edge if present, otherwise inserts it, in one transaction.
	// It reports whether the edge exists afterwards.
	Toggle(ctx context.Context, userID, articleID string) (bool, error)
	Exists(ctx context.Context, userID, articleID string) (bool, error)
	CountByArticles(ctx context.Context, articleIDs []string) (map[string]int64, error)
	Count(ctx context.Context) (int64, error)
}

// FollowRepository defines the interface for the (follower, following) edge
type FollowRepository interface {
	// Toggle deletes the edge if present, otherwise inserts it, in one transaction.
	// It reports whether the edge exists afterwards.
	Toggle(ctx context.Context, followerID, followingID string) (bool, error)
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	CountFollowers(ctx context.Context, userIDs []string) (map[string]int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
	ListFollowers(ctx context.Context, userID string, offset, limit int) ([]string, error)
	ListFollowing(ctx context.Context, userID string, offset, limit int) ([]string, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Article ArticleRepository
	Comment CommentRepository
	Like    LikeRepository
	Follow  FollowRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return NewWithGorm(db.Gorm)
}

// NewWithGorm creates all repositories on a gorm handle
func NewWithGorm(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepo(db),
		Article: NewArticleRepo(db),
		Comment: NewCommentRepo(db),
		Like:    NewLikeRepo(db),
		Follow:  NewFollowRepo(db),
	}
}
