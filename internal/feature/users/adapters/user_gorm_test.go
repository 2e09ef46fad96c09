package adapters

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"blog_backend/internal/feature/users/domain/entity"
	"blog_backend/internal/feature/users/usecase"
	"blog_backend/internal/shared/apperr"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&UserModel{}, &UserBlogModel{}), "failed to migrate tables")
	return db
}

func createUser(t *testing.T, repo *userGorm, username string) *entity.User {
	t.Helper()
	u := &entity.User{Username: username, Name: username + " name", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserGorm_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and timestamps", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		u := &entity.User{Username: "root", PasswordHash: "hash"}

		require.NoError(t, repo.Create(ctx, u))
		assert.NotEqual(t, uuid.Nil, u.ID)
		assert.False(t, u.CreatedAt.IsZero())
		assert.NotNil(t, u.BlogIDs)
		assert.Empty(t, u.BlogIDs)
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		createUser(t, repo, "root")

		err := repo.Create(ctx, &entity.User{Username: "root", PasswordHash: "other"})
		assert.ErrorIs(t, err, usecase.ErrUsernameTaken)
	})

	t.Run("usernames are case-sensitive", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		createUser(t, repo, "root")

		assert.NoError(t, repo.Create(ctx, &entity.User{Username: "Root", PasswordHash: "hash"}))
	})

	t.Run("nil user", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		assert.Error(t, repo.Create(ctx, nil))
	})
}

func TestUserGorm_Find(t *testing.T) {
	ctx := context.Background()
	repo := NewUserGorm(setupTestDB(t))
	root := createUser(t, repo, "root")

	got, err := repo.FindByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, root.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	got, err = repo.FindByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, "root", got.Username)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}

func TestUserGorm_BlogSet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserGorm(setupTestDB(t))
	root := createUser(t, repo, "root")
	other := createUser(t, repo, "other")
	b1, b2 := uuid.New(), uuid.New()

	require.NoError(t, repo.AddBlog(ctx, root.ID, b1))
	require.NoError(t, repo.AddBlog(ctx, root.ID, b2))
	require.NoError(t, repo.AddBlog(ctx, root.ID, b1), "adding twice is a no-op")

	got, err := repo.FindByID(ctx, root.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{b1, b2}, got.BlogIDs)

	require.NoError(t, repo.RemoveBlog(ctx, root.ID, b1))
	require.NoError(t, repo.RemoveBlog(ctx, other.ID, b2), "removing from another user leaves root untouched")

	got, err = repo.FindByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b2}, got.BlogIDs)

	assert.ErrorIs(t, repo.AddBlog(ctx, uuid.New(), b1), usecase.ErrUserNotFound)
}

func TestUserGorm_ListAndFindByIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewUserGorm(setupTestDB(t))

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	a := createUser(t, repo, "alice")
	b := createUser(t, repo, "bob")
	blogID := uuid.New()
	require.NoError(t, repo.AddBlog(ctx, b.ID, blogID))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	byName := map[string]*entity.User{}
	for _, u := range users {
		byName[u.Username] = u
	}
	assert.Empty(t, byName["alice"].BlogIDs)
	assert.Equal(t, []uuid.UUID{blogID}, byName["bob"].BlogIDs)

	found, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "alice", found[0].Username)

	none, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
