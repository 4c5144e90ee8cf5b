package repository

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/social-blog-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
	))
	return db
}

func seedUser(t *testing.T, repos *Repositories, name string, created time.Time) *models.User {
	t.Helper()
	u := &models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     strings.ToLower(name) + "@example.com",
		CreatedAt: created,
	}
	require.NoError(t, repos.User.Create(context.Background(), u))
	return u
}

func seedArticle(t *testing.T, repos *Repositories, author *models.User, title string, published bool, created time.Time) *models.Article {
	t.Helper()
	a := &models.Article{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   title + " " + strings.Repeat("body ", 12),
		Excerpt:   title,
		Published: published,
		AuthorID:  author.ID,
		CreatedAt: created,
	}
	require.NoError(t, repos.Article.Create(context.Background(), a))
	return a
}

func TestUserRepo_GetByIDMissing(t *testing.T) {
	repos := NewWithGorm(newTestDB(t))

	u, err := repos.User.GetByID(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepo_CreateDefaultsRole(t *testing.T) {
	repos := NewWithGorm(newTestDB(t))
	u := seedUser(t, repos, "Alice", time.Now())

	stored, err := repos.User.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.RoleUser, stored.Role)
	assert.False(t, stored.Verified)
}

func TestUserRepo_HandleTaken(t *testing.T) {
	ctx := context.Background()
	repos := NewWithGorm(newTestDB(t))
	alice := seedUser(t, repos, "Alice", time.Now())
	bob := seedUser(t, repos, "Bob", time.Now())

	handle := "alice_w"
	alice.Handle = &handle
	require.NoError(t, repos.User.UpdateProfile(ctx, alice))

	taken, err := repos.User.HandleTaken(ctx, handle, bob.ID)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repos.User.HandleTaken(ctx, handle, alice.ID)
	require.NoError(t, err)
	assert.False(t, taken, "own handle is not taken")
}

func TestUserRepo_UpdateProfileBumpsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repos := NewWithGorm(db)
	u := seedUser(t, repos, "Alice", time.Now())

	lastEdit := time.Now().Add(-time.Hour).UTC()
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", u.ID).Update("updated_at", lastEdit).Error)

	require.NoError(t, repos.User.UpdateProfile(ctx, &models.User{ID: u.ID, Name: "Alice C", UpdatedAt: time.Now().UTC()}))

	stored, err := repos.User.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice C", stored.Name)
	assert.True(t, stored.UpdatedAt.After(lastEdit))
}

func TestUserRepo_SetVerifiedAndRole(t *testing.T) {
	ctx := context.Background()
	repos := NewWithGorm(newTestDB(t))
	u := seedUser(t, repos, "Alice", time.Now())

	require.NoError(t, repos.User.SetVerified(ctx, u.ID, true))
	require.NoError(t, repos.User.SetRole(ctx, u.ID, models.RoleAdmin))

	stored, err := repos.User.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, stored.Verified)
	assert.Equal(t, models.RoleAdmin, stored.Role)

	require.NoError(t, repos.User.SetVerified(ctx, u.ID, false))
	stored, err = repos.User.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, stored.Verified)
}

func TestUserRepo_Search(t *testing.T) {
	ctx := context.Background()
	repos := NewWithGorm(newTestDB(t))
	base := time.Now().Add(-time.Hour)

	seedUser(t, repos, "Annabel", base)
	seedUser(t, repos, "Hannah", base.Add(time.Minute))
	seedUser(t, repos, "Bob", base.Add(2*time.Minute))

	users, err := repos.User.Search(ctx, "ANN", 20)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Hannah", users[0].Name, "newest first")
	assert.Equal(t, "Annabel", users[1].Name)

	users, err = repos.User.Search(ctx, "%", 20)
	require.NoError(t, err)
	assert.Empty(t, users, "wildcards are matched literally")
}

func TestLikeRepo_Toggle(t *testing.T) {
	ctx := context.Background()
	repos := NewWithGorm(newTestDB(t))
	author := seedUser(t, repos, "Author", time.Now())
	reader := seedUser(t, repos, "Reader", time.Now())
	article := seedArticle(t, repos, author, "Hello world", true, time.Now())

	liked, err := repos.Like.Toggle(ctx, reader.ID, article.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	exists, err := repos.Like.Exists(ctx, reader.ID, article.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	liked, err = repos.Like.Toggle(ctx, reader.ID, article.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	counts, err := repos.Like.CountByArticles(ctx, []string{article.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts[article.ID])
}

func TestLikeRepo_ConcurrentTogglesKeepOneEdge(t *testing.T) {
	ctx := context.Background()
	repos := NewWithGorm(newTestDB(t))
	author := seedUser(t, repos, "Author", time.Now())
	reader := seedUser(t, repos, "Reader", time.Now())
	article := seedArticle(t, repos, author, "Hello world", true, time.Now())

	const n = 9
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repos.Like.Toggle(ctx, reader.ID, article.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	total, err := repos.Like.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "odd number of toggles leaves exactly one edge")
}

func TestFollowRepo_ToggleAndCounts(t *testing.T) {
	ctx := context.Background()
	repos := NewWithGorm(newTestDB(t))
	a := seedUser(t, repos, "Alice", time.Now())
	b := seedUser(t, repos, "Bob", time.Now())
	c := seedUser(t, repos, "Carol", time.Now())

	following, err := repos.Follow.Toggle(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, following)
	_, err = repos.Follow.Toggle(ctx, c.ID, b.ID)
	require.NoError(t, err)

	counts, err := repos.Follow.CountFollowers(ctx, []string{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[b.ID])
	assert.Equal(t, int64(0), counts[a.ID])

	n, err := repos.Follow.CountFollowing(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	followers, err := repos.Follow.ListFollowers(ctx, b.ID, 0, 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, c.ID}, followers)

	followingIDs, err := repos.Follow.ListFollowing(ctx, a.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, followingIDs)

	following, err = repos.Follow.Toggle(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, following)

	exists, err := repos.Follow.Exists(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFollowRepo_RejectsSelfEdge(t *testing.T) {
	repos := NewWithGorm(newTestDB(t))
	a := seedUser(t, repos, "Alice", time.Now())

	_, err := repos.Follow.Toggle(context.Background(), a.ID, a.ID)
	assert.Error(t, err)
}

func TestArticleRepo_ListPublished(t *testing.T) {
	ctx := context.Background()
	repos := NewWithGorm(newTestDB(t))
	author := seedUser(t, repos, "Author", time.Now())
	fan1 := seedUser(t, repos, "FanOne", time.Now())
	fan2 := seedUser(t, repos, "FanTwo", time.Now())
	base := time.Now().Add(-time.Hour)

	older := seedArticle(t, repos, author, "Go concurrency patterns", true, base)
	newer := seedArticle(t, repos, author, "Rust ownership", true, base.Add(time.Minute))
	seedArticle(t, repos, author, "Go draft notes", false, base.Add(2*time.Minute))

	_, err := repos.Like.Toggle(ctx, fan1.ID, older.ID)
	require.NoError(t, err)
	_, err = repos.Like.Toggle(ctx, fan2.ID, older.ID)
	require.NoError(t, err)

	t.Run("latest", func(t *testing.T) {
		articles, err := repos.Article.ListPublished(ctx, FeedFilter{Sort: models.SortLatest, Limit: 10})
		require.NoError(t, err)
		require.Len(t, articles, 2)
		assert.Equal(t, newer.ID, articles[0].ID)
		assert.Equal(t, older.ID, articles[1].ID)
	})

	t.Run("popular", func(t *testing.T) {
		articles, err := repos.Article.ListPublished(ctx, FeedFilter{Sort: models.SortPopular, Limit: 10})
		require.NoError(t, err)
		require.Len(t, articles, 2)
		assert.Equal(t, older.ID, articles[0].ID)
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		articles, err := repos.Article.ListPublished(ctx, FeedFilter{Search: "GO", Limit: 10})
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, older.ID, articles[0].ID)

		total, err := repos.Article.CountPublished(ctx, "GO")
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("pagination", func(t *testing.T) {
		articles, err := repos.Article.ListPublished(ctx, FeedFilter{Sort: models.SortLatest, Offset: 1, Limit: 1})
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, older.ID, articles[0].ID)
	})
}

func TestArticleRepo_PopularTiesNewestFirst(t *testing.T) {
	ctx := context.Background()
	repos := NewWithGorm(newTestDB(t))
	author := seedUser(t, repos, "Author", time.Now())
	fan1 := seedUser(t, repos, "FanOne", time.Now())
	fan2 := seedUser(t, repos, "FanTwo", time.Now())
	base := time.Now().Add(-time.Hour)

	a := seedArticle(t, repos, author, "First article", true, base)
	b := seedArticle(t, repos, author, "Second article", true, base.Add(time.Minute))
	c := seedArticle(t, repos, author, "Third article", true, base.Add(2*time.Minute))

	for _, like := range [][2]string{{fan1.ID, a.ID}, {fan2.ID, a.ID}, {fan1.ID, b.ID}, {fan2.ID, c.ID}} {
		_, err := repos.Like.Toggle(ctx, like[0], like[1])
		require.NoError(t, err)
	}

	articles, err := repos.Article.ListPublished(ctx, FeedFilter{Sort: models.SortPopular, Limit: 10})
	require.NoError(t, err)
	require.Len(t, articles, 3)
	assert.Equal(t, []string{a.ID, c.ID, b.ID}, []string{articles[0].ID, articles[1].ID, articles[2].ID})
}

func TestArticleRepo_HugeOffsetIsEmpty(t *testing.T) {
	ctx := context.Background()
	repos := NewWithGorm(newTestDB(t))
	author := seedUser(t, repos, "Author", time.Now())
	seedArticle(t, repos, author, "Only article", true, time.Now())

	articles, err := repos.Article.ListPublished(ctx, FeedFilter{Sort: models.SortLatest, Offset: math.MaxInt, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestArticleRepo_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	repos := NewWithGorm(newTestDB(t))
	author := seedUser(t, repos, "Author", time.Now())
	reader := seedUser(t, repos, "Reader", time.Now())
	article := seedArticle(t, repos, author, "Hello world", true, time.Now())

	_, err := repos.Like.Toggle(ctx, reader.ID, article.ID)
	require.NoError(t, err)
	require.NoError(t, repos.Comment.Create(ctx, &models.Comment{
		ID: uuid.NewString(), Content: "nice", AuthorID: reader.ID, ArticleID: article.ID,
	}))

	require.NoError(t, repos.Article.Delete(ctx, article.ID))

	likes, err := repos.Like.Count(ctx)
	require.NoError(t, err)
	comments, err := repos.Comment.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, likes)
	assert.Zero(t, comments)

	stored, err := repos.Article.GetByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestArticleRepo_AuthorQueries(t *testing.T) {
	ctx := context.Background()
	repos := NewWithGorm(newTestDB(t))
	author := seedUser(t, repos, "Author", time.Now())

	seedArticle(t, repos, author, "Published one", true, time.Now())
	seedArticle(t, repos, author, "Draft one", false, time.Now())

	published, err := repos.Article.ListPublishedByAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Len(t, published, 1)

	total, err := repos.Article.CountByAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestCommentRepo_ListAndCount(t *testing.T) {
	ctx := context.Background()
	repos := NewWithGorm(newTestDB(t))
	author := seedUser(t, repos, "Author", time.Now())
	article := seedArticle(t, repos, author, "Hello world", true, time.Now())
	base := time.Now().Add(-time.Minute)

	first := &models.Comment{ID: uuid.NewString(), Content: "first", AuthorID: author.ID, ArticleID: article.ID, CreatedAt: base}
	second := &models.Comment{ID: uuid.NewString(), Content: "second", AuthorID: author.ID, ArticleID: article.ID, CreatedAt: base.Add(time.Second)}
	require.NoError(t, repos.Comment.Create(ctx, first))
	require.NoError(t, repos.Comment.Create(ctx, second))

	comments, err := repos.Comment.ListByArticle(ctx, article.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Content)

	counts, err := repos.Comment.CountByArticles(ctx, []string{article.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[article.ID])
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, IsUniqueViolation(gorm.ErrRecordNotFound))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%go\_lang\%%`, likePattern("Go_Lang%"))
}
