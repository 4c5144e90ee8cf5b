package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/social-blog-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *gorm.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *gorm.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListByArticle returns an article's comments, newest first
func (r *commentRepo) ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	return comments, err
}

// CountByArticles counts comments per article
func (r *commentRepo) CountByArticles(ctx context.Context, articleIDs []string) (map[string]int64, error) {
	if len(articleIDs) == 0 {
		return map[string]int64{}, nil
	}
	var rows []countRow
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("article_id AS ref, COUNT(*) AS total").
		Where("article_id IN ?", articleIDs).
		Group("article_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return countsToMap(rows), nil
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Count(&count).Error
	return count, err
}
