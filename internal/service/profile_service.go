package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/social-blog-api/internal/auth"
	"github.com/social-blog-api/internal/models"
	"github.com/social-blog-api/internal/repository"
	"github.com/social-blog-api/internal/validation"
)

const (
	minSearchLength  = 2
	maxSearchResults = 20
)

// profileService implements ProfileService
type profileService struct {
	repos     *repository.Repositories
	validator *validation.Validator
	log       zerolog.Logger
}

func newProfileService(repos *repository.Repositories, v *validation.Validator, log zerolog.Logger) *profileService {
	return &profileService{
		repos:     repos,
		validator: v,
		log:       log.With().Str("component", "profile").Logger(),
	}
}

// Get returns the user's profile as seen by viewer
func (s *profileService) Get(ctx context.Context, viewer auth.Identity, userID string) (*models.Profile, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	articles, err := s.repos.Article.ListPublishedByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	items, err := listings(ctx, s.repos, articles)
	if err != nil {
		return nil, err
	}

	followers, err := s.repos.Follow.CountFollowers(ctx, []string{userID})
	if err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	following, err := s.repos.Follow.CountFollowing(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count following: %w", err)
	}
	articleCount, err := s.repos.Article.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	isFollowing := false
	if !viewer.Anonymous() && viewer.UserID != userID {
		if isFollowing, err = s.repos.Follow.Exists(ctx, viewer.UserID, userID); err != nil {
			return nil, fmt.Errorf("check follow: %w", err)
		}
	}

	return &models.Profile{
		User:      user.Summary(),
		Bio:       user.Bio,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		Articles:  items,
		Counts: models.UserCounts{
			Followers: followers[userID],
			Following: following,
			Articles:  articleCount,
		},
		IsFollowing: isFollowing,
	}, nil
}

// Update edits the actor's own profile
func (s *profileService) Update(ctx context.Context, actorID, userID string, in models.ProfileInput) (*models.User, error) {
	if actorID == "" || actorID != userID {
		return nil, forbidden("you are not allowed to edit this profile")
	}
	in.Handle = strings.TrimSpace(in.Handle)
	if msg := s.validator.First(&in); msg != "" {
		return nil, validationFailed("%s", msg)
	}

	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Handle != "" {
		taken, err := s.repos.User.HandleTaken(ctx, in.Handle, userID)
		if err != nil {
			return nil, fmt.Errorf("check handle: %w", err)
		}
		if taken {
			return nil, validationFailed("handle is already taken")
		}
	}

	user.Name = in.Name
	user.Bio = in.Bio
	user.Image = in.Image
	user.UpdatedAt = time.Now().UTC()
	user.Handle = nil
	if in.Handle != "" {
		handle := in.Handle
		user.Handle = &handle
	}

	if err := s.repos.User.UpdateProfile(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, validationFailed("handle is already taken")
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.log.Info().Str("user_id", userID).Msg("Profile updated")
	return user, nil
}

// Search finds users by name or handle
func (s *profileService) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchLength {
		return []models.SearchResult{}, nil
	}

	users, err := s.repos.User.Search(ctx, query, maxSearchResults)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	if len(users) == 0 {
		return []models.SearchResult{}, nil
	}

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	followers, err := s.repos.Follow.CountFollowers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}

	out := make([]models.SearchResult, 0, len(users))
	for _, u := range users {
		articles, err := s.repos.Article.CountByAuthor(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("count articles: %w", err)
		}
		out = append(out, models.SearchResult{
			UserSummary: u.Summary(),
			Followers:   followers[u.ID],
			Articles:    articles,
		})
	}
	return out, nil
}

// Followers lists who follows userID, most recent first
func (s *profileService) Followers(ctx context.Context, userID string, page, limit int) (*models.FollowPage, error) {
	offset, err := pageWindow(page, limit)
	if err != nil {
		return nil, err
	}
	if _, err := s.load(ctx, userID); err != nil {
		return nil, err
	}

	counts, err := s.repos.Follow.CountFollowers(ctx, []string{userID})
	if err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	ids, err := s.repos.Follow.ListFollowers(ctx, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return s.page(ctx, ids, counts[userID], page, limit)
}

// Following lists who userID follows, most recent first
func (s *profileService) Following(ctx context.Context, userID string, page, limit int) (*models.FollowPage, error) {
	offset, err := pageWindow(page, limit)
	if err != nil {
		return nil, err
	}
	if _, err := s.load(ctx, userID); err != nil {
		return nil, err
	}

	total, err := s.repos.Follow.CountFollowing(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count following: %w", err)
	}
	ids, err := s.repos.Follow.ListFollowing(ctx, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return s.page(ctx, ids, total, page, limit)
}

func (s *profileService) page(ctx context.Context, ids []string, total int64, page, limit int) (*models.FollowPage, error) {
	users, err := summaries(ctx, s.repos.User, ids)
	if err != nil {
		return nil, err
	}
	return &models.FollowPage{
		Users: users,
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pageCount(total, limit),
	}, nil
}

func (s *profileService) load(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repos.User.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, notFound("user not found")
	}
	return user, nil
}
