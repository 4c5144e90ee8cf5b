package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/social-blog-api/internal/models"
	"github.com/social-blog-api/internal/repository"
)

// feedService implements FeedService
type feedService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newFeedService(repos *repository.Repositories, log zerolog.Logger) *feedService {
	return &feedService{
		repos: repos,
		log:   log.With().Str("component", "feed").Logger(),
	}
}

// List returns one page of published articles
func (s *feedService) List(ctx context.Context, q models.FeedQuery) (*models.FeedPage, error) {
	offset, err := pageWindow(q.Page, q.Limit)
	if err != nil {
		return nil, err
	}

	sort := q.Sort
	if sort != models.SortPopular {
		sort = models.SortLatest
	}
	search := q.Search

	total, err := s.repos.Article.CountPublished(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	articles, err := s.repos.Article.ListPublished(ctx, repository.FeedFilter{
		Search: search,
		Sort:   sort,
		Offset: offset,
		Limit:  q.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	items, err := listings(ctx, s.repos, articles)
	if err != nil {
		return nil, err
	}

	return &models.FeedPage{
		Articles: items,
		Page:     q.Page,
		Limit:    q.Limit,
		Total:    total,
		Pages:    pageCount(total, q.Limit),
	}, nil
}
