package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/social-blog-api/internal/models"
)

// followRepo is the concrete implementation of FollowRepository
type followRepo struct {
	db *gorm.DB
}

// NewFollowRepo creates a new follow repository
func NewFollowRepo(db *gorm.DB) FollowRepository {
	return &followRepo{db: db}
}

// Toggle removes the follow if present, otherwise inserts it
func (r *followRepo) Toggle(ctx context.Context, followerID, followingID string) (bool, error) {
	var following bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			following = false
			return nil
		}

		f := &models.Follow{ID: uuid.NewString(), FollowerID: followerID, FollowingID: followingID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(f).Error; err != nil {
			return err
		}
		following = true
		return nil
	})
	if IsUniqueViolation(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return following, nil
}

// Exists checks if follower follows following
func (r *followRepo) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// CountFollowers counts followers per user
func (r *followRepo) CountFollowers(ctx context.Context, userIDs []string) (map[string]int64, error) {
	if len(userIDs) == 0 {
		return map[string]int64{}, nil
	}
	var rows []countRow
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Select("following_id AS ref, COUNT(*) AS total").
		Where("following_id IN ?", userIDs).
		Group("following_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return countsToMap(rows), nil
}

// CountFollowing counts the users a user follows
func (r *followRepo) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

// ListFollowers returns follower IDs, most recent first
func (r *followRepo) ListFollowers(ctx context.Context, userID string, offset, limit int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Pluck("follower_id", &ids).Error
	return ids, err
}

// ListFollowing returns followed user IDs, most recent first
func (r *followRepo) ListFollowing(ctx context.Context, userID string, offset, limit int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Pluck("following_id", &ids).Error
	return ids, err
}
