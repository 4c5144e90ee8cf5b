package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/social-blog-api/internal/auth"
	"github.com/social-blog-api/internal/config"
	"github.com/social-blog-api/internal/models"
	"github.com/social-blog-api/internal/repository"
	"github.com/social-blog-api/internal/validation"
)

// EngagementService defines like and follow operations
type EngagementService interface {
	ToggleLike(ctx context.Context, userID, articleID string) (*models.LikeState, error)
	ToggleFollow(ctx context.Context, followerID, targetID string) (*models.FollowState, error)
	IsLiked(ctx context.Context, viewer auth.Identity, articleID string) (bool, error)
	IsFollowing(ctx context.Context, viewer auth.Identity, targetID string) (bool, error)
}

// FeedService defines the article feed
type FeedService interface {
	List(ctx context.Context, q models.FeedQuery) (*models.FeedPage, error)
}

// ArticleService defines article and comment operations
type ArticleService interface {
	Create(ctx context.Context, actorID string, in models.ArticleInput) (*models.Article, error)
	Get(ctx context.Context, id string) (*models.ArticleDetail, error)
	Update(ctx context.Context, actorID, id string, in models.ArticleInput) (*models.Article, error)
	Delete(ctx context.Context, actorID, id string) error
	AddComment(ctx context.Context, actorID, articleID string, in models.CommentInput) (*models.CommentDetail, error)
}

// ProfileService defines profile and user directory operations
type ProfileService interface {
	Get(ctx context.Context, viewer auth.Identity, userID string) (*models.Profile, error)
	Update(ctx context.Context, actorID, userID string, in models.ProfileInput) (*models.User, error)
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
	Followers(ctx context.Context, userID string, page, limit int) (*models.FollowPage, error)
	Following(ctx context.Context, userID string, page, limit int) (*models.FollowPage, error)
}

// ModerationService defines moderator-only operations
type ModerationService interface {
	SetVerified(ctx context.Context, actorEmail, targetID string, verified bool) (*models.User, error)
	SetRole(ctx context.Context, actorEmail, targetID string, role models.Role) (*models.User, error)
	Stats(ctx context.Context, actorEmail string) (*models.Stats, error)
	ListUsers(ctx context.Context, actorEmail string, page, limit int) (*models.UserPage, error)
}

// UploadService defines image uploads
type UploadService interface {
	Upload(ctx context.Context, actorID, filename string, size int64, r io.Reader) (string, error)
}

// Services holds all service interfaces
type Services struct {
	Policy     *Policy
	Engagement EngagementService
	Feed       FeedService
	Articles   ArticleService
	Profiles   ProfileService
	Moderation ModerationService
	Uploads    UploadService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, store ImageStore, log zerolog.Logger) *Services {
	policy := NewPolicy(cfg.Moderation.ModeratorEmails)
	v := validation.NewValidator()

	return &Services{
		Policy:     policy,
		Engagement: newEngagementService(repos, log),
		Feed:       newFeedService(repos, log),
		Articles:   newArticleService(repos, policy, v, log),
		Profiles:   newProfileService(repos, v, log),
		Moderation: newModerationService(repos, policy, log),
		Uploads:    newUploadService(store, log),
	}
}
