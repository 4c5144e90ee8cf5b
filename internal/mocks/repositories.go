package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/social-blog-api/internal/models"
	"github.com/social-blog-api/internal/repository"
)

// Verify interface compliance
var (
	_ repository.UserRepository    = (*MockUserRepository)(nil)
	_ repository.ArticleRepository = (*MockArticleRepository)(nil)
	_ repository.CommentRepository = (*MockCommentRepository)(nil)
	_ repository.LikeRepository    = (*MockLikeRepository)(nil)
	_ repository.FollowRepository  = (*MockFollowRepository)(nil)
)

// MockRepositories bundles map-backed repositories that share one store
type MockRepositories struct {
	User    *MockUserRepository
	Article *MockArticleRepository
	Comment *MockCommentRepository
	Like    *MockLikeRepository
	Follow  *MockFollowRepository
}

// NewMockRepositories creates an empty set of mock repositories
func NewMockRepositories() *MockRepositories {
	likes := NewMockLikeRepository()
	comments := NewMockCommentRepository()
	articles := NewMockArticleRepository(likes, comments)
	return &MockRepositories{
		User:    NewMockUserRepository(),
		Article: articles,
		Comment: comments,
		Like:    likes,
		Follow:  NewMockFollowRepository(),
	}
}

// Repositories exposes the mocks through the repository interfaces
func (m *MockRepositories) Repositories() *repository.Repositories {
	return &repository.Repositories{
		User:    m.User,
		Article: m.Article,
		Comment: m.Comment,
		Like:    m.Like,
		Follow:  m.Follow,
	}
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mu    sync.RWMutex
	Users map[string]*models.User
	Err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*models.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.Users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]*models.User, len(ids))
	for _, id := range ids {
		if u, ok := m.Users[id]; ok {
			cp := *u
			out[id] = &cp
		}
	}
	return out, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.Users[id]
	return ok, nil
}

func (m *MockUserRepository) HandleTaken(ctx context.Context, handle, exceptUserID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for id, u := range m.Users {
		if id != exceptUserID && u.Handle != nil && *u.Handle == handle {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[user.ID]
	if !ok {
		return nil
	}
	u.Name = user.Name
	u.Bio = user.Bio
	u.Handle = user.Handle
	u.Image = user.Image
	u.UpdatedAt = time.Now()
	return nil
}

func (m *MockUserRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.Users[id]; ok {
		u.Verified = verified
	}
	return nil
}

func (m *MockUserRepository) SetRole(ctx context.Context, id string, role models.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.Users[id]; ok {
		u.Role = role
	}
	return nil
}

func (m *MockUserRepository) Search(ctx context.Context, query string, limit int) ([]*models.User, error) {
	q := strings.ToLower(query)
	return m.sorted(func(u *models.User) bool {
		if strings.Contains(strings.ToLower(u.Name), q) {
			return true
		}
		return u.Handle != nil && strings.Contains(strings.ToLower(*u.Handle), q)
	}, 0, limit), nil
}

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.sorted(func(*models.User) bool { return true }, offset, limit), nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.Users)), nil
}

// sorted returns matching users newest first
func (m *MockUserRepository) sorted(match func(*models.User) bool, offset, limit int) []*models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.User
	for _, u := range m.Users {
		if match(u) {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return window(out, offset, limit)
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	mu       sync.RWMutex
	Articles map[string]*models.Article
	Err      error

	likes    *MockLikeRepository
	comments *MockCommentRepository
}

// NewMockArticleRepository creates an article mock; likes orders the popular feed
// and deletes cascade into likes and comments
func NewMockArticleRepository(likes *MockLikeRepository, comments *MockCommentRepository) *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[string]*models.Article),
		likes:    likes,
		comments: comments,
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
	}
	article.UpdatedAt = article.CreatedAt
	cp := *article
	m.Articles[article.ID] = &cp
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *MockArticleRepository) Exists(ctx context.Context, id string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.Articles[id]
	return ok, nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Articles[article.ID]
	if !ok {
		return nil
	}
	a.Title = article.Title
	a.Content = article.Content
	a.Excerpt = article.Excerpt
	a.Published = article.Published
	a.UpdatedAt = article.UpdatedAt
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	delete(m.Articles, id)
	m.mu.Unlock()

	if m.likes != nil {
		m.likes.deleteArticle(id)
	}
	if m.comments != nil {
		m.comments.deleteArticle(id)
	}
	return nil
}

func (m *MockArticleRepository) ListPublished(ctx context.Context, filter repository.FeedFilter) ([]*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	articles := m.filter(filter.Search, "")

	var likeCounts map[string]int64
	if filter.Sort == models.SortPopular && m.likes != nil {
		likeCounts = m.likes.countAll()
	}
	sort.Slice(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		if likeCounts != nil && likeCounts[a.ID] != likeCounts[b.ID] {
			return likeCounts[a.ID] > likeCounts[b.ID]
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return window(articles, filter.Offset, filter.Limit), nil
}

func (m *MockArticleRepository) CountPublished(ctx context.Context, search string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.filter(search, ""))), nil
}

func (m *MockArticleRepository) ListPublishedByAuthor(ctx context.Context, authorID string) ([]*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	articles := m.filter("", authorID)
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})
	return articles, nil
}

func (m *MockArticleRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, a := range m.Articles {
		if a.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

// filter returns copies of published articles matching search and author
func (m *MockArticleRepository) filter(search, authorID string) []*models.Article {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q := strings.ToLower(search)
	var out []*models.Article
	for _, a := range m.Articles {
		if !a.Published {
			continue
		}
		if authorID != "" && a.AuthorID != authorID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(a.Title), q) && !strings.Contains(strings.ToLower(a.Content), q) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mu       sync.RWMutex
	Comments map[string]*models.Comment
	Err      error
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{Comments: make(map[string]*models.Comment)}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	cp := *comment
	m.Comments[comment.ID] = &cp
	return nil
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Comment
	for _, c := range m.Comments {
		if c.ArticleID == articleID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockCommentRepository) CountByArticles(ctx context.Context, articleIDs []string) (map[string]int64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	wanted := toSet(articleIDs)
	out := make(map[string]int64)
	for _, c := range m.Comments {
		if wanted[c.ArticleID] {
			out[c.ArticleID]++
		}
	}
	return out, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.Comments)), nil
}

func (m *MockCommentRepository) deleteArticle(articleID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.Comments {
		if c.ArticleID == articleID {
			delete(m.Comments, id)
		}
	}
}

// MockLikeRepository is a mock implementation of LikeRepository.
// Edges are keyed by "user|article".
type MockLikeRepository struct {
	mu          sync.Mutex
	Likes       map[string]*models.Like
	Err         error
	ToggleCalls int
}

func NewMockLikeRepository() *MockLikeRepository {
	return &MockLikeRepository{Likes: make(map[string]*models.Like)}
}

func (m *MockLikeRepository) Toggle(ctx context.Context, userID, articleID string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ToggleCalls++
	key := edgeKey(userID, articleID)
	if _, ok := m.Likes[key]; ok {
		delete(m.Likes, key)
		return false, nil
	}
	m.Likes[key] = &models.Like{
		ID:        uuid.NewString(),
		UserID:    userID,
		ArticleID: articleID,
		CreatedAt: time.Now(),
	}
	return true, nil
}

func (m *MockLikeRepository) Exists(ctx context.Context, userID, articleID string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Likes[edgeKey(userID, articleID)]
	return ok, nil
}

func (m *MockLikeRepository) CountByArticles(ctx context.Context, articleIDs []string) (map[string]int64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	all := m.countAll()
	out := make(map[string]int64, len(articleIDs))
	for _, id := range articleIDs {
		if n, ok := all[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func (m *MockLikeRepository) Count(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.Likes)), nil
}

func (m *MockLikeRepository) countAll() map[string]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64)
	for _, l := range m.Likes {
		out[l.ArticleID]++
	}
	return out
}

func (m *MockLikeRepository) deleteArticle(articleID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, l := range m.Likes {
		if l.ArticleID == articleID {
			delete(m.Likes, key)
		}
	}
}

// MockFollowRepository is a mock implementation of FollowRepository.
// Edges are keyed by "follower|following".
type MockFollowRepository struct {
	mu      sync.Mutex
	Follows map[string]*models.Follow
	Err     error
	seq     int64
}

func NewMockFollowRepository() *MockFollowRepository {
	return &MockFollowRepository{Follows: make(map[string]*models.Follow)}
}

func (m *MockFollowRepository) Toggle(ctx context.Context, followerID, followingID string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if followerID == followingID {
		return false, fmt.Errorf("follows: self edge %s", followerID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := edgeKey(followerID, followingID)
	if _, ok := m.Follows[key]; ok {
		delete(m.Follows, key)
		return false, nil
	}
	// a monotonic clock keeps ordering stable when toggles share a timestamp
	m.seq++
	m.Follows[key] = &models.Follow{
		ID:          uuid.NewString(),
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Unix(0, m.seq),
	}
	return true, nil
}

func (m *MockFollowRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Follows[edgeKey(followerID, followingID)]
	return ok, nil
}

func (m *MockFollowRepository) CountFollowers(ctx context.Context, userIDs []string) (map[string]int64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := toSet(userIDs)
	out := make(map[string]int64)
	for _, f := range m.Follows {
		if wanted[f.FollowingID] {
			out[f.FollowingID]++
		}
	}
	return out, nil
}

func (m *MockFollowRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, f := range m.Follows {
		if f.FollowerID == userID {
			n++
		}
	}
	return n, nil
}

func (m *MockFollowRepository) ListFollowers(ctx context.Context, userID string, offset, limit int) ([]string, error) {
	return m.list(func(f *models.Follow) (string, bool) { return f.FollowerID, f.FollowingID == userID }, offset, limit)
}

func (m *MockFollowRepository) ListFollowing(ctx context.Context, userID string, offset, limit int) ([]string, error) {
	return m.list(func(f *models.Follow) (string, bool) { return f.FollowingID, f.FollowerID == userID }, offset, limit)
}

func (m *MockFollowRepository) list(pick func(*models.Follow) (string, bool), offset, limit int) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	var edges []*models.Follow
	for _, f := range m.Follows {
		if _, ok := pick(f); ok {
			edges = append(edges, f)
		}
	}
	m.mu.Unlock()

	sort.Slice(edges, func(i, j int) bool {
		return edges[i].CreatedAt.After(edges[j].CreatedAt)
	})
	edges = window(edges, offset, limit)
	ids := make([]string, 0, len(edges))
	for _, f := range edges {
		id, _ := pick(f)
		ids = append(ids, id)
	}
	return ids, nil
}

func edgeKey(a, b string) string {
	return a + "|" + b
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func window[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
