package adapters

import (
	"time"

	"github.com/google/uuid"

	"blog_backend/internal/feature/blogs/domain/entity"
)

// BlogModel is the GORM model for the blogs table.
type BlogModel struct {
	ID        string         `gorm:"primaryKey;size:36"`
	Title     string         `gorm:"size:512;not null"`
	Author    string         `gorm:"size:255"`
	URL       string         `gorm:"size:2048;not null"`
	Likes     int            `gorm:"not null;default:0"`
	UserID    string         `gorm:"size:36;index;not null"`
	Comments  []CommentModel `gorm:"foreignKey:BlogID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (BlogModel) TableName() string {
	return "blogs"
}

// CommentModel is the GORM model for the comments table.
// The auto-increment ID defines insertion order.
type CommentModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	BlogID    string    `gorm:"size:36;index;not null"`
	UserID    string    `gorm:"size:36;not null"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (CommentModel) TableName() string {
	return "comments"
}

// ToEntity converts the GORM model to a domain entity.
func (m *BlogModel) ToEntity() entity.Blog {
	comments := make([]entity.Comment, len(m.Comments))
	for i, c := range m.Comments {
		comments[i] = entity.Comment{
			Text:      c.Text,
			UserID:    uuid.MustParse(c.UserID),
			CreatedAt: c.CreatedAt,
		}
	}
	return entity.Blog{
		ID:        uuid.MustParse(m.ID),
		Title:     m.Title,
		Author:    m.Author,
		URL:       m.URL,
		Likes:     m.Likes,
		OwnerID:   uuid.MustParse(m.UserID),
		Comments:  comments,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// BlogModelFromEntity converts a domain entity to a GORM model. Comments are written separately.
func BlogModelFromEntity(b *entity.Blog) *BlogModel {
	return &BlogModel{
		ID:        b.ID.String(),
		Title:     b.Title,
		Author:    b.Author,
		URL:       b.URL,
		Likes:     b.Likes,
		UserID:    b.OwnerID.String(),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
