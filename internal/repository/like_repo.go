package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/social-blog-api/internal/models"
)

// likeRepo is the concrete implementation of LikeRepository
type likeRepo struct {
	db *gorm.DB
}

// NewLikeRepo creates a new like repository
func NewLikeRepo(db *gorm.DB) LikeRepository {
	return &likeRepo{db: db}
}

// Toggle removes the like if present, otherwise inserts it
func (r *likeRepo) Toggle(ctx context.Context, userID, articleID string) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND article_id = ?", userID, articleID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}

		// zero rows inserted means a concurrent toggle created the edge first
		like := &models.Like{ID: uuid.NewString(), UserID: userID, ArticleID: articleID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	if IsUniqueViolation(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return liked, nil
}

// Exists checks if the user likes the article
func (r *likeRepo) Exists(ctx context.Context, userID, articleID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	return count > 0, err
}

// CountByArticles counts likes per article
func (r *likeRepo) CountByArticles(ctx context.Context, articleIDs []string) (map[string]int64, error) {
	if len(articleIDs) == 0 {
		return map[string]int64{}, nil
	}
	var rows []countRow
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("article_id AS ref, COUNT(*) AS total").
		Where("article_id IN ?", articleIDs).
		Group("article_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return countsToMap(rows), nil
}

// Count returns the total number of likes
func (r *likeRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Count(&count).Error
	return count, err
}
