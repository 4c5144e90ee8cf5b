package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/social-blog-api/internal/models"
)

// popularityOrder ranks by like count computed on read
const popularityOrder = "(SELECT COUNT(*) FROM likes WHERE likes.article_id = articles.id) DESC"

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *gorm.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *gorm.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Exists checks if an article with the given ID exists
func (r *articleRepo) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Article{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Update writes the author-editable fields
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).
		Model(&models.Article{ID: article.ID}).
		Select("title", "content", "excerpt", "published", "updated_at").
		Updates(article).Error
}

// Delete removes an article; likes and comments cascade
func (r *articleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Article{}).Error
}

// ListPublished returns one feed page
func (r *articleRepo) ListPublished(ctx context.Context, filter FeedFilter) ([]*models.Article, error) {
	q := r.published(ctx, filter.Search)

	if filter.Sort == models.SortPopular {
		q = q.Order(popularityOrder)
	}
	q = q.Order("articles.created_at DESC").Order("articles.id DESC")

	var articles []*models.Article
	err := q.Offset(filter.Offset).Limit(filter.Limit).Find(&articles).Error
	return articles, err
}

// CountPublished counts articles matching the feed filter
func (r *articleRepo) CountPublished(ctx context.Context, search string) (int64, error) {
	var count int64
	err := r.published(ctx, search).Count(&count).Error
	return count, err
}

// ListPublishedByAuthor returns an author's published articles, newest first
func (r *articleRepo) ListPublishedByAuthor(ctx context.Context, authorID string) ([]*models.Article, error) {
	var articles []*models.Article
	err := r.db.WithContext(ctx).
		Where("author_id = ? AND published = ?", authorID, true).
		Order("created_at DESC").
		Order("id DESC").
		Find(&articles).Error
	return articles, err
}

// CountByAuthor counts all of an author's articles, drafts included
func (r *articleRepo) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Article{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (r *articleRepo) published(ctx context.Context, search string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Article{}).Where("articles.published = ?", true)
	if search != "" {
		pattern := likePattern(search)
		q = q.Where(`(LOWER(articles.title) LIKE ? ESCAPE '\' OR LOWER(articles.content) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	return q
}
