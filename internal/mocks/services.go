package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/social-blog-api/internal/auth"
	"github.com/social-blog-api/internal/models"
	"github.com/social-blog-api/internal/service"
)

// Verify interface compliance
var (
	_ service.EngagementService = (*MockEngagementService)(nil)
	_ service.FeedService       = (*MockFeedService)(nil)
	_ service.ArticleService    = (*MockArticleService)(nil)
	_ service.ProfileService    = (*MockProfileService)(nil)
	_ service.ModerationService = (*MockModerationService)(nil)
	_ service.UploadService     = (*MockUploadService)(nil)
	_ service.ImageStore        = (*MockImageStore)(nil)
)

// MockEngagementService is a mock implementation of EngagementService
type MockEngagementService struct {
	ToggleLikeFunc   func(ctx context.Context, userID, articleID string) (*models.LikeState, error)
	ToggleFollowFunc func(ctx context.Context, followerID, targetID string) (*models.FollowState, error)
	IsLikedFunc      func(ctx context.Context, viewer auth.Identity, articleID string) (bool, error)
	IsFollowingFunc  func(ctx context.Context, viewer auth.Identity, targetID string) (bool, error)
}

func NewMockEngagementService() *MockEngagementService {
	return &MockEngagementService{}
}

func (m *MockEngagementService) ToggleLike(ctx context.Context, userID, articleID string) (*models.LikeState, error) {
	if m.ToggleLikeFunc != nil {
		return m.ToggleLikeFunc(ctx, userID, articleID)
	}
	return &models.LikeState{Liked: true, Likes: 1}, nil
}

func (m *MockEngagementService) ToggleFollow(ctx context.Context, followerID, targetID string) (*models.FollowState, error) {
	if m.ToggleFollowFunc != nil {
		return m.ToggleFollowFunc(ctx, followerID, targetID)
	}
	return &models.FollowState{Following: true, Followers: 1}, nil
}

func (m *MockEngagementService) IsLiked(ctx context.Context, viewer auth.Identity, articleID string) (bool, error) {
	if m.IsLikedFunc != nil {
		return m.IsLikedFunc(ctx, viewer, articleID)
	}
	return false, nil
}

func (m *MockEngagementService) IsFollowing(ctx context.Context, viewer auth.Identity, targetID string) (bool, error) {
	if m.IsFollowingFunc != nil {
		return m.IsFollowingFunc(ctx, viewer, targetID)
	}
	return false, nil
}

// MockFeedService is a mock implementation of FeedService
type MockFeedService struct {
	ListFunc  func(ctx context.Context, q models.FeedQuery) (*models.FeedPage, error)
	LastQuery models.FeedQuery
}

func NewMockFeedService() *MockFeedService {
	return &MockFeedService{}
}

func (m *MockFeedService) List(ctx context.Context, q models.FeedQuery) (*models.FeedPage, error) {
	m.LastQuery = q
	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}
	return &models.FeedPage{Articles: []models.ArticleListing{}, Page: q.Page, Limit: q.Limit}, nil
}

// MockArticleService is a mock implementation of ArticleService
type MockArticleService struct {
	CreateFunc     func(ctx context.Context, actorID string, in models.ArticleInput) (*models.Article, error)
	GetFunc        func(ctx context.Context, id string) (*models.ArticleDetail, error)
	UpdateFunc     func(ctx context.Context, actorID, id string, in models.ArticleInput) (*models.Article, error)
	DeleteFunc     func(ctx context.Context, actorID, id string) error
	AddCommentFunc func(ctx context.Context, actorID, articleID string, in models.CommentInput) (*models.CommentDetail, error)
}

func NewMockArticleService() *MockArticleService {
	return &MockArticleService{}
}

func (m *MockArticleService) Create(ctx context.Context, actorID string, in models.ArticleInput) (*models.Article, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actorID, in)
	}
	return &models.Article{ID: "article-1", Title: in.Title, Content: in.Content, AuthorID: actorID, Published: true}, nil
}

func (m *MockArticleService) Get(ctx context.Context, id string) (*models.ArticleDetail, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, service.ErrNotFound
}

func (m *MockArticleService) Update(ctx context.Context, actorID, id string, in models.ArticleInput) (*models.Article, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actorID, id, in)
	}
	return &models.Article{ID: id, Title: in.Title, Content: in.Content, AuthorID: actorID}, nil
}

func (m *MockArticleService) Delete(ctx context.Context, actorID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actorID, id)
	}
	return nil
}

func (m *MockArticleService) AddComment(ctx context.Context, actorID, articleID string, in models.CommentInput) (*models.CommentDetail, error) {
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, actorID, articleID, in)
	}
	return &models.CommentDetail{
		Comment: models.Comment{ID: "comment-1", Content: in.Content, AuthorID: actorID, ArticleID: articleID},
		Author:  models.UserSummary{ID: actorID},
	}, nil
}

// MockProfileService is a mock implementation of ProfileService
type MockProfileService struct {
	GetFunc       func(ctx context.Context, viewer auth.Identity, userID string) (*models.Profile, error)
	UpdateFunc    func(ctx context.Context, actorID, userID string, in models.ProfileInput) (*models.User, error)
	SearchFunc    func(ctx context.Context, query string) ([]models.SearchResult, error)
	FollowersFunc func(ctx context.Context, userID string, page, limit int) (*models.FollowPage, error)
	FollowingFunc func(ctx context.Context, userID string, page, limit int) (*models.FollowPage, error)
}

func NewMockProfileService() *MockProfileService {
	return &MockProfileService{}
}

func (m *MockProfileService) Get(ctx context.Context, viewer auth.Identity, userID string) (*models.Profile, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, viewer, userID)
	}
	return nil, service.ErrNotFound
}

func (m *MockProfileService) Update(ctx context.Context, actorID, userID string, in models.ProfileInput) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actorID, userID, in)
	}
	return &models.User{ID: userID, Name: in.Name, Bio: in.Bio}, nil
}

func (m *MockProfileService) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return []models.SearchResult{}, nil
}

func (m *MockProfileService) Followers(ctx context.Context, userID string, page, limit int) (*models.FollowPage, error) {
	if m.FollowersFunc != nil {
		return m.FollowersFunc(ctx, userID, page, limit)
	}
	return &models.FollowPage{Users: []models.UserSummary{}, Page: page, Limit: limit}, nil
}

func (m *MockProfileService) Following(ctx context.Context, userID string, page, limit int) (*models.FollowPage, error) {
	if m.FollowingFunc != nil {
		return m.FollowingFunc(ctx, userID, page, limit)
	}
	return &models.FollowPage{Users: []models.UserSummary{}, Page: page, Limit: limit}, nil
}

// MockModerationService is a mock implementation of ModerationService
type MockModerationService struct {
	SetVerifiedFunc func(ctx context.Context, actorEmail, targetID string, verified bool) (*models.User, error)
	SetRoleFunc     func(ctx context.Context, actorEmail, targetID string, role models.Role) (*models.User, error)
	StatsFunc       func(ctx context.Context, actorEmail string) (*models.Stats, error)
	ListUsersFunc   func(ctx context.Context, actorEmail string, page, limit int) (*models.UserPage, error)
}

func NewMockModerationService() *MockModerationService {
	return &MockModerationService{}
}

func (m *MockModerationService) SetVerified(ctx context.Context, actorEmail, targetID string, verified bool) (*models.User, error) {
	if m.SetVerifiedFunc != nil {
		return m.SetVerifiedFunc(ctx, actorEmail, targetID, verified)
	}
	return &models.User{ID: targetID, Verified: verified}, nil
}

func (m *MockModerationService) SetRole(ctx context.Context, actorEmail, targetID string, role models.Role) (*models.User, error) {
	if m.SetRoleFunc != nil {
		return m.SetRoleFunc(ctx, actorEmail, targetID, role)
	}
	return &models.User{ID: targetID, Role: role}, nil
}

func (m *MockModerationService) Stats(ctx context.Context, actorEmail string) (*models.Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, actorEmail)
	}
	return &models.Stats{}, nil
}

func (m *MockModerationService) ListUsers(ctx context.Context, actorEmail string, page, limit int) (*models.UserPage, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, actorEmail, page, limit)
	}
	return &models.UserPage{Users: []models.User{}, Page: page, Limit: limit}, nil
}

// MockUploadService is a mock implementation of UploadService
type MockUploadService struct {
	UploadFunc func(ctx context.Context, actorID, filename string, size int64, r io.Reader) (string, error)
}

func NewMockUploadService() *MockUploadService {
	return &MockUploadService{}
}

func (m *MockUploadService) Upload(ctx context.Context, actorID, filename string, size int64, r io.Reader) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, actorID, filename, size, r)
	}
	return "/uploads/" + filename, nil
}

// MockImageStore records saved files in memory
type MockImageStore struct {
	mu    sync.Mutex
	Files map[string][]byte
	Err   error
}

func NewMockImageStore() *MockImageStore {
	return &MockImageStore{Files: make(map[string][]byte)}
}

func (m *MockImageStore) Save(ctx context.Context, filename string, size int64, r io.Reader) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Files[filename] = data
	return "/uploads/" + filename, nil
}
