package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/social-blog-api/internal/auth"
	"github.com/social-blog-api/internal/models"
	"github.com/social-blog-api/internal/repository"
)

// engagementService implements EngagementService
type engagementService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newEngagementService(repos *repository.Repositories, log zerolog.Logger) *engagementService {
	return &engagementService{
		repos: repos,
		log:   log.With().Str("component", "engagement").Logger(),
	}
}

// ToggleLike flips the (user, article) edge
func (s *engagementService) ToggleLike(ctx context.Context, userID, articleID string) (*models.LikeState, error) {
	exists, err := s.repos.Article.Exists(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("check article: %w", err)
	}
	if !exists {
		return nil, notFound("article not found")
	}

	liked, err := s.repos.Like.Toggle(ctx, userID, articleID)
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	counts, err := s.repos.Like.CountByArticles(ctx, []string{articleID})
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}

	s.log.Debug().
		Str("user_id", userID).
		Str("article_id", articleID).
		Bool("liked", liked).
		Msg("Like toggled")

	return &models.LikeState{Liked: liked, Likes: counts[articleID]}, nil
}

// ToggleFollow flips the (follower, target) edge
func (s *engagementService) ToggleFollow(ctx context.Context, followerID, targetID string) (*models.FollowState, error) {
	if followerID == targetID {
		return nil, invalidOperation("you cannot follow yourself")
	}

	exists, err := s.repos.User.Exists(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, notFound("user not found")
	}

	following, err := s.repos.Follow.Toggle(ctx, followerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("toggle follow: %w", err)
	}

	counts, err := s.repos.Follow.CountFollowers(ctx, []string{targetID})
	if err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}

	s.log.Debug().
		Str("follower_id", followerID).
		Str("following_id", targetID).
		Bool("following", following).
		Msg("Follow toggled")

	return &models.FollowState{Following: following, Followers: counts[targetID]}, nil
}

// IsLiked reports whether the viewer likes the article; anonymous viewers never do
func (s *engagementService) IsLiked(ctx context.Context, viewer auth.Identity, articleID string) (bool, error) {
	if viewer.Anonymous() {
		return false, nil
	}
	liked, err := s.repos.Like.Exists(ctx, viewer.UserID, articleID)
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return liked, nil
}

// IsFollowing reports whether the viewer follows the target; anonymous viewers never do
func (s *engagementService) IsFollowing(ctx context.Context, viewer auth.Identity, targetID string) (bool, error) {
	if viewer.Anonymous() || viewer.UserID == targetID {
		return false, nil
	}
	following, err := s.repos.Follow.Exists(ctx, viewer.UserID, targetID)
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return following, nil
}
