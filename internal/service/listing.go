package service

import (
	"context"
	"fmt"
	"math"

	"github.com/social-blog-api/internal/models"
	"github.com/social-blog-api/internal/repository"
)

// listings decorates articles with author summaries and derived counts
func listings(ctx context.Context, repos *repository.Repositories, articles []*models.Article) ([]models.ArticleListing, error) {
	out := make([]models.ArticleListing, 0, len(articles))
	if len(articles) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(articles))
	authorIDs := make([]string, 0, len(articles))
	seen := make(map[string]bool)
	for _, a := range articles {
		ids = append(ids, a.ID)
		if !seen[a.AuthorID] {
			seen[a.AuthorID] = true
			authorIDs = append(authorIDs, a.AuthorID)
		}
	}

	authors, err := repos.User.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	likes, err := repos.Like.CountByArticles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	comments, err := repos.Comment.CountByArticles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	for _, a := range articles {
		listing := models.ArticleListing{
			ID:        a.ID,
			Title:     a.Title,
			Excerpt:   a.Excerpt,
			Published: a.Published,
			Counts: models.ArticleCounts{
				Likes:    likes[a.ID],
				Comments: comments[a.ID],
			},
			CreatedAt: a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
		}
		if author, ok := authors[a.AuthorID]; ok {
			listing.Author = author.Summary()
		} else {
			listing.Author = models.UserSummary{ID: a.AuthorID}
		}
		out = append(out, listing)
	}
	return out, nil
}

// summaries resolves user IDs to summaries, keeping the input order
func summaries(ctx context.Context, users repository.UserRepository, ids []string) ([]models.UserSummary, error) {
	out := make([]models.UserSummary, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	byID, err := users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u.Summary())
		}
	}
	return out, nil
}

// pageWindow validates page/limit and returns the row offset. Offsets that
// would overflow are clamped past any table, yielding an empty page.
func pageWindow(page, limit int) (int, error) {
	if page < 1 {
		return 0, validationFailed("page must be at least 1")
	}
	if limit < 1 {
		return 0, validationFailed("limit must be at least 1")
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt, nil
	}
	return (page - 1) * limit, nil
}

func pageCount(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return pages
}
