// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"blog_backend/internal/feature/blogs/domain/entity"
	"blog_backend/internal/feature/blogs/usecase"
)

// CachingBlogRepository decorates a BlogRepository with a Redis read-through cache of the blog list.
// Every write invalidates the list entry. Redis failures never fail the request.
type CachingBlogRepository struct {
	inner     usecase.BlogRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.BlogRepository = (*CachingBlogRepository)(nil)

// NewCachingBlogRepository decorates a BlogRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "blogs".
func NewCachingBlogRepository(rdb *redis.Client, ttl time.Duration, inner usecase.BlogRepository, namespace string) *CachingBlogRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "blogs"
	}
	return &CachingBlogRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// List returns the cached blog list, falling back to the inner repository on a miss.
func (c *CachingBlogRepository) List(ctx context.Context) ([]entity.Blog, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	key := c.listKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Blog
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// FindByID is not cached.
func (c *CachingBlogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error) {
	return c.inner.FindByID(ctx, id)
}

// FindByIDs is not cached.
func (c *CachingBlogRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Blog, error) {
	return c.inner.FindByIDs(ctx, ids)
}

// Create writes through and invalidates the list.
func (c *CachingBlogRepository) Create(ctx context.Context, blog *entity.Blog) error {
	if err := c.inner.Create(ctx, blog); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update writes through and invalidates the list.
func (c *CachingBlogRepository) Update(ctx context.Context, id uuid.UUID, patch entity.BlogPatch) error {
	if err := c.inner.Update(ctx, id, patch); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete writes through and invalidates the list.
func (c *CachingBlogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// AppendComment writes through and invalidates the list.
func (c *CachingBlogRepository) AppendComment(ctx context.Context, blogID uuid.UUID, comment *entity.Comment) error {
	if err := c.inner.AppendComment(ctx, blogID, comment); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachingBlogRepository) listKey() string {
	return safe(c.namespace) + ":all"
}

// invalidate drops the list entry. Best effort: a failed delete only leaves a stale entry until its TTL.
func (c *CachingBlogRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.listKey()).Err()
}
