package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog_backend/internal/feature/blogs/domain/entity"
)

// mockBlogRepository はテスト用のBlogRepositoryモック実装です。
type mockBlogRepository struct {
	listFn   func(ctx context.Context) ([]entity.Blog, error)
	createFn func(ctx context.Context, blog *entity.Blog) error
	deleteFn func(ctx context.Context, id uuid.UUID) error
	calls    int
}

func (m *mockBlogRepository) List(ctx context.Context) ([]entity.Blog, error) {
	m.calls++
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockBlogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error) {
	return &entity.Blog{ID: id}, nil
}

func (m *mockBlogRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Blog, error) {
	return nil, nil
}

func (m *mockBlogRepository) Create(ctx context.Context, blog *entity.Blog) error {
	if m.createFn != nil {
		return m.createFn(ctx, blog)
	}
	return nil
}

func (m *mockBlogRepository) Update(ctx context.Context, id uuid.UUID, patch entity.BlogPatch) error {
	return nil
}

func (m *mockBlogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockBlogRepository) AppendComment(ctx context.Context, blogID uuid.UUID, c *entity.Comment) error {
	return nil
}

func testBlogs() []entity.Blog {
	return []entity.Blog{{
		ID:      uuid.MustParse("7d3f9a4e-1111-4c1e-9a55-000000000001"),
		Title:   "React patterns",
		Author:  "Michael Chan",
		URL:     "https://reactpatterns.com/",
		Likes:   7,
		OwnerID: uuid.MustParse("7d3f9a4e-2222-4c1e-9a55-000000000002"),
	}}
}

// TestNewCachingBlogRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingBlogRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", 5 * time.Minute, "blogs"},
		{"negative ttl uses default", -time.Minute, "", 5 * time.Minute, "blogs"},
		{"custom values preserved", 10 * time.Minute, "custom", 10 * time.Minute, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingBlogRepository(nil, tt.ttl, &mockBlogRepository{}, tt.namespace)

			assert.Equal(t, tt.expectedTTL, repo.ttl)
			assert.Equal(t, tt.expectedNamespace, repo.namespace)
		})
	}
}

// TestList_CacheHit はキャッシュヒット時に内部リポジトリを呼ばないことを検証します。
func TestList_CacheHit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	inner := &mockBlogRepository{}
	repo := NewCachingBlogRepository(rdb, time.Minute, inner, "blogs")

	cached, err := json.Marshal(testBlogs())
	require.NoError(t, err)
	mock.ExpectGet("blogs:all").SetVal(string(cached))

	got, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, testBlogs()[0].Title, got[0].Title)
	assert.Equal(t, testBlogs()[0].ID, got[0].ID)
	assert.Zero(t, inner.calls, "inner repository should not be called on hit")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestList_CacheMiss はキャッシュミス時にDBから取得してキャッシュに保存することを検証します。
func TestList_CacheMiss(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	inner := &mockBlogRepository{listFn: func(ctx context.Context) ([]entity.Blog, error) {
		return testBlogs(), nil
	}}
	repo := NewCachingBlogRepository(rdb, 0, inner, "")

	expectedJSON, err := json.Marshal(testBlogs())
	require.NoError(t, err)
	mock.ExpectGet("blogs:all").RedisNil()
	mock.ExpectSet("blogs:all", expectedJSON, 5*time.Minute).SetVal("OK")

	got, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestList_CorruptedEntry は破損したキャッシュを削除してDBから再取得することを検証します。
func TestList_CorruptedEntry(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	inner := &mockBlogRepository{listFn: func(ctx context.Context) ([]entity.Blog, error) {
		return testBlogs(), nil
	}}
	repo := NewCachingBlogRepository(rdb, time.Minute, inner, "blogs")

	expectedJSON, err := json.Marshal(testBlogs())
	require.NoError(t, err)
	mock.ExpectGet("blogs:all").SetVal("invalid json")
	mock.ExpectDel("blogs:all").SetVal(1)
	mock.ExpectSet("blogs:all", expectedJSON, time.Minute).SetVal("OK")

	got, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestList_InnerError は内部リポジトリのエラーがそのまま返されることを検証します。
func TestList_InnerError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	dbErr := errors.New("db down")
	repo := NewCachingBlogRepository(rdb, time.Minute, &mockBlogRepository{listFn: func(ctx context.Context) ([]entity.Blog, error) {
		return nil, dbErr
	}}, "blogs")

	mock.ExpectGet("blogs:all").RedisNil()

	_, err := repo.List(context.Background())

	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestList_NilRedis はRedis未設定時にキャッシュを経由しないことを検証します。
func TestList_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockBlogRepository{listFn: func(ctx context.Context) ([]entity.Blog, error) {
		return testBlogs(), nil
	}}
	repo := NewCachingBlogRepository(nil, time.Minute, inner, "blogs")

	got, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, inner.calls)
}

// TestWrites_InvalidateList は書き込み成功時に一覧キャッシュが削除されることを検証します。
func TestWrites_InvalidateList(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := NewCachingBlogRepository(rdb, time.Minute, &mockBlogRepository{}, "blogs")
	ctx := context.Background()
	id := uuid.New()

	mock.ExpectDel("blogs:all").SetVal(1)
	mock.ExpectDel("blogs:all").SetVal(0)
	mock.ExpectDel("blogs:all").SetVal(0)
	mock.ExpectDel("blogs:all").SetVal(0)

	require.NoError(t, repo.Create(ctx, &entity.Blog{Title: "t", URL: "u"}))
	require.NoError(t, repo.Update(ctx, id, entity.BlogPatch{}))
	require.NoError(t, repo.Delete(ctx, id))
	require.NoError(t, repo.AppendComment(ctx, id, &entity.Comment{Text: "hi"}))

	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestWrites_FailureKeepsCache は書き込み失敗時にキャッシュを削除しないことを検証します。
func TestWrites_FailureKeepsCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	writeErr := errors.New("write failed")
	repo := NewCachingBlogRepository(rdb, time.Minute, &mockBlogRepository{
		createFn: func(ctx context.Context, blog *entity.Blog) error { return writeErr },
		deleteFn: func(ctx context.Context, id uuid.UUID) error { return writeErr },
	}, "blogs")

	assert.ErrorIs(t, repo.Create(context.Background(), &entity.Blog{}), writeErr)
	assert.ErrorIs(t, repo.Delete(context.Background(), uuid.New()), writeErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
