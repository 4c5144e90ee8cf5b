package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/social-blog-api/internal/models"
	"github.com/social-blog-api/internal/repository"
	"github.com/social-blog-api/internal/validation"
)

// articleService implements ArticleService
type articleService struct {
	repos     *repository.Repositories
	policy    *Policy
	validator *validation.Validator
	log       zerolog.Logger
}

func newArticleService(repos *repository.Repositories, policy *Policy, v *validation.Validator, log zerolog.Logger) *articleService {
	return &articleService{
		repos:     repos,
		policy:    policy,
		validator: v,
		log:       log.With().Str("component", "article").Logger(),
	}
}

// Create publishes a new article by actorID
func (s *articleService) Create(ctx context.Context, actorID string, in models.ArticleInput) (*models.Article, error) {
	if msg := s.validator.First(&in); msg != "" {
		return nil, validationFailed("%s", msg)
	}

	now := time.Now().UTC()
	article := &models.Article{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Content:   in.Content,
		Excerpt:   excerptOf(in),
		Published: true,
		AuthorID:  actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Published != nil {
		article.Published = *in.Published
	}

	if err := s.repos.Article.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.log.Info().
		Str("article_id", article.ID).
		Str("author_id", actorID).
		Bool("published", article.Published).
		Msg("Article created")

	return article, nil
}

// Get returns an article with its comments and counts
func (s *articleService) Get(ctx context.Context, id string) (*models.ArticleDetail, error) {
	article, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.repos.Comment.ListByArticle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	userIDs := []string{article.AuthorID}
	for _, c := range comments {
		userIDs = append(userIDs, c.AuthorID)
	}
	users, err := s.repos.User.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	likes, err := s.repos.Like.CountByArticles(ctx, []string{id})
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}

	detail := &models.ArticleDetail{
		Article:  *article,
		Author:   summaryOf(users, article.AuthorID),
		Comments: make([]models.CommentDetail, 0, len(comments)),
		Counts: models.ArticleCounts{
			Likes:    likes[id],
			Comments: int64(len(comments)),
		},
	}
	for _, c := range comments {
		detail.Comments = append(detail.Comments, models.CommentDetail{
			Comment: *c,
			Author:  summaryOf(users, c.AuthorID),
		})
	}
	return detail, nil
}

// Update rewrites an article; only its author may do so
func (s *articleService) Update(ctx context.Context, actorID, id string, in models.ArticleInput) (*models.Article, error) {
	article, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanModify(actorID, article) {
		return nil, forbidden("you are not allowed to edit this article")
	}
	if msg := s.validator.First(&in); msg != "" {
		return nil, validationFailed("%s", msg)
	}

	article.Title = in.Title
	article.Content = in.Content
	article.Excerpt = excerptOf(in)
	if in.Published != nil {
		article.Published = *in.Published
	}
	article.UpdatedAt = time.Now().UTC()

	if err := s.repos.Article.Update(ctx, article); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	s.log.Info().
		Str("article_id", id).
		Bool("published", article.Published).
		Msg("Article updated")

	return article, nil
}

// Delete removes an article and, by cascade, its likes and comments
func (s *articleService) Delete(ctx context.Context, actorID, id string) error {
	article, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !s.policy.CanModify(actorID, article) {
		return forbidden("you are not allowed to delete this article")
	}

	if err := s.repos.Article.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	s.log.Info().Str("article_id", id).Msg("Article deleted")
	return nil
}

// AddComment appends a comment by actorID
func (s *articleService) AddComment(ctx context.Context, actorID, articleID string, in models.CommentInput) (*models.CommentDetail, error) {
	exists, err := s.repos.Article.Exists(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("check article: %w", err)
	}
	if !exists {
		return nil, notFound("article not found")
	}
	if msg := s.validator.First(&in); msg != "" {
		return nil, validationFailed("%s", msg)
	}

	comment := &models.Comment{
		ID:        uuid.NewString(),
		Content:   in.Content,
		AuthorID:  actorID,
		ArticleID: articleID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repos.Comment.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	author, err := s.repos.User.GetByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}
	detail := &models.CommentDetail{Comment: *comment, Author: models.UserSummary{ID: actorID}}
	if author != nil {
		detail.Author = author.Summary()
	}
	return detail, nil
}

func (s *articleService) load(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, notFound("article not found")
	}
	return article, nil
}

// excerptOf returns the supplied excerpt or the leading runes of the content
func excerptOf(in models.ArticleInput) string {
	if in.Excerpt != "" {
		return in.Excerpt
	}
	runes := []rune(in.Content)
	if len(runes) > models.ExcerptLength {
		runes = runes[:models.ExcerptLength]
	}
	return string(runes)
}

func summaryOf(users map[string]*models.User, id string) models.UserSummary {
	if u, ok := users[id]; ok {
		return u.Summary()
	}
	return models.UserSummary{ID: id}
}
