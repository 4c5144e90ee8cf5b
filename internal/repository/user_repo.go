package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/social-blog-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

// Create inserts a new user
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID retrieves a user by ID
func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByIDs retrieves users keyed by ID; missing IDs are absent from the map
func (r *userRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var users []*models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// Exists checks if a user with the given ID exists
func (r *userRepo) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// HandleTaken checks if another user already owns the handle
func (r *userRepo) HandleTaken(ctx context.Context, handle, exceptUserID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("handle = ? AND id <> ?", handle, exceptUserID).
		Count(&count).Error
	return count > 0, err
}

// UpdateProfile writes the self-editable profile fields
func (r *userRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).
		Model(&models.User{ID: user.ID}).
		Select("name", "bio", "handle", "image", "updated_at").
		Updates(user).Error
}

// SetVerified sets the verification flag
func (r *userRepo) SetVerified(ctx context.Context, id string, verified bool) error {
	return r.db.WithContext(ctx).Model(&models.User{ID: id}).Update("verified", verified).Error
}

// SetRole sets the account role
func (r *userRepo) SetRole(ctx context.Context, id string, role models.Role) error {
	return r.db.WithContext(ctx).Model(&models.User{ID: id}).Update("role", role).Error
}

// Search matches name or handle, newest accounts first
func (r *userRepo) Search(ctx context.Context, query string, limit int) ([]*models.User, error) {
	pattern := likePattern(query)
	var users []*models.User
	err := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(handle) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// List pages through all users, newest first
func (r *userRepo) List(ctx context.Context, offset, limit int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	return users, err
}

// Count returns the total number of users
func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}
