// Package adapters provides repository implementations for the blogs feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blog_backend/internal/feature/blogs/domain/entity"
	"blog_backend/internal/feature/blogs/usecase"
)

// blogGorm is a GORM implementation of the BlogRepository interface.
type blogGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure blogGorm implements BlogRepository.
var _ usecase.BlogRepository = (*blogGorm)(nil)

// NewBlogGorm creates a new instance of blogGorm.
func NewBlogGorm(db *gorm.DB) *blogGorm {
	return &blogGorm{db: db}
}

func (r *blogGorm) withComments(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("comments.id ASC")
	})
}

// List returns every blog in creation order with its comments in insertion order.
func (r *blogGorm) List(ctx context.Context) ([]entity.Blog, error) {
	var models []BlogModel
	if err := r.withComments(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return toEntities(models), nil
}

// FindByID retrieves a blog by its ID.
func (r *blogGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error) {
	var m BlogModel
	if err := r.withComments(ctx).Where("id = ?", id.String()).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrBlogNotFound
		}
		return nil, err
	}
	b := m.ToEntity()
	return &b, nil
}

// FindByIDs retrieves the blogs with the given IDs, ignoring unknown IDs.
func (r *blogGorm) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Blog, error) {
	if len(ids) == 0 {
		return []entity.Blog{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	var models []BlogModel
	if err := r.withComments(ctx).Where("id IN ?", keys).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return toEntities(models), nil
}

// Create persists a new blog, assigning an ID when none is set.
func (r *blogGorm) Create(ctx context.Context, b *entity.Blog) error {
	if b == nil {
		return errors.New("blog is nil")
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	m := BlogModelFromEntity(b)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	b.CreatedAt = m.CreatedAt
	b.UpdatedAt = m.UpdatedAt
	return nil
}

// Update replaces the non-nil fields of patch. The owner column is never touched.
func (r *blogGorm) Update(ctx context.Context, id uuid.UUID, patch entity.BlogPatch) error {
	fields := map[string]any{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Author != nil {
		fields["author"] = *patch.Author
	}
	if patch.URL != nil {
		fields["url"] = *patch.URL
	}
	if patch.Likes != nil {
		fields["likes"] = *patch.Likes
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&BlogModel{}).Where("id = ?", id.String()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return usecase.ErrBlogNotFound
	}
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&BlogModel{}).Where("id = ?", id.String()).Updates(fields).Error
}

// Delete removes a blog and its comments in one transaction.
func (r *blogGorm) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// コメントはブログへの外部キーを持つため先に削除する
		if err := tx.Where("blog_id = ?", id.String()).Delete(&CommentModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id.String()).Delete(&BlogModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return usecase.ErrBlogNotFound
		}
		return nil
	})
}

// AppendComment adds a comment at the end of the blog's comment sequence.
func (r *blogGorm) AppendComment(ctx context.Context, blogID uuid.UUID, c *entity.Comment) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	m := &CommentModel{
		BlogID:    blogID.String(),
		UserID:    c.UserID.String(),
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func toEntities(models []BlogModel) []entity.Blog {
	out := make([]entity.Blog, len(models))
	for i := range models {
		out[i] = models[i].ToEntity()
	}
	return out
}
