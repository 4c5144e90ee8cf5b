package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/social-blog-api/internal/models"
	"github.com/social-blog-api/internal/repository"
)

// moderationService implements ModerationService
type moderationService struct {
	repos  *repository.Repositories
	policy *Policy
	log    zerolog.Logger
}

func newModerationService(repos *repository.Repositories, policy *Policy, log zerolog.Logger) *moderationService {
	return &moderationService{
		repos:  repos,
		policy: policy,
		log:    log.With().Str("component", "moderation").Logger(),
	}
}

// SetVerified sets the target's verification flag
func (s *moderationService) SetVerified(ctx context.Context, actorEmail, targetID string, verified bool) (*models.User, error) {
	if !s.policy.CanModerate(actorEmail) {
		return nil, forbidden("moderator access required")
	}

	user, err := s.target(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.repos.User.SetVerified(ctx, targetID, verified); err != nil {
		return nil, fmt.Errorf("set verified: %w", err)
	}
	user.Verified = verified

	s.log.Info().
		Str("actor", actorEmail).
		Str("user_id", targetID).
		Bool("verified", verified).
		Msg("User verification changed")

	return user, nil
}

// SetRole sets the target's role. A moderator account can never be changed
// through this path, whoever asks. Non-moderators get Forbidden for unknown
// targets so the response does not reveal which user ids exist.
func (s *moderationService) SetRole(ctx context.Context, actorEmail, targetID string, role models.Role) (*models.User, error) {
	user, err := s.target(ctx, targetID)
	if err != nil {
		if errors.Is(err, ErrNotFound) && !s.policy.CanModerate(actorEmail) {
			return nil, forbidden("moderator access required")
		}
		return nil, err
	}
	if s.policy.CanModerate(user.Email) {
		return nil, invalidOperation("the moderator account role cannot be changed")
	}
	if !s.policy.CanModerate(actorEmail) {
		return nil, forbidden("moderator access required")
	}
	if !models.ValidRoles[role] {
		return nil, validationFailed("role must be one of: USER, ADMIN")
	}

	if err := s.repos.User.SetRole(ctx, targetID, role); err != nil {
		return nil, fmt.Errorf("set role: %w", err)
	}
	user.Role = role

	s.log.Info().
		Str("actor", actorEmail).
		Str("user_id", targetID).
		Str("role", string(role)).
		Msg("User role changed")

	return user, nil
}

// Stats returns the dashboard totals
func (s *moderationService) Stats(ctx context.Context, actorEmail string) (*models.Stats, error) {
	if !s.policy.CanModerate(actorEmail) {
		return nil, forbidden("moderator access required")
	}

	var (
		stats models.Stats
		err   error
	)
	if stats.TotalUsers, err = s.repos.User.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.TotalArticles, err = s.repos.Article.CountPublished(ctx, ""); err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	if stats.TotalLikes, err = s.repos.Like.Count(ctx); err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	if stats.TotalComments, err = s.repos.Comment.Count(ctx); err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	return &stats, nil
}

// ListUsers pages through all users, newest first
func (s *moderationService) ListUsers(ctx context.Context, actorEmail string, page, limit int) (*models.UserPage, error) {
	if !s.policy.CanModerate(actorEmail) {
		return nil, forbidden("moderator access required")
	}
	offset, err := pageWindow(page, limit)
	if err != nil {
		return nil, err
	}

	total, err := s.repos.User.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	users, err := s.repos.User.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]models.User, 0, len(users))
	for _, u := range users {
		out = append(out, *u)
	}
	return &models.UserPage{
		Users: out,
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pageCount(total, limit),
	}, nil
}

func (s *moderationService) target(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, notFound("user not found")
	}
	return user, nil
}
