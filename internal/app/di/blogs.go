// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	blogadapters "blog_backend/internal/feature/blogs/adapters"
	"blog_backend/internal/feature/blogs/usecase"
	"blog_backend/internal/platform/cache"
)

// NewBlogRepository creates a BlogRepository implementation.
// If Redis is available, the GORM repository is wrapped with the list cache.
func NewBlogRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.BlogRepository {
	repo := blogadapters.NewBlogGorm(db)
	if rdb != nil {
		return cache.NewCachingBlogRepository(rdb, ttl, repo, "blogs")
	}
	return repo
}
