package adapters

import (
	"time"

	"github.com/google/uuid"

	"blog_backend/internal/feature/users/domain/entity"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Username     string `gorm:"uniqueIndex;size:255;not null"`
	Name         string `gorm:"size:255"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// UserBlogModel is one entry of a user's blog-id set (the user -> blogs back-reference).
type UserBlogModel struct {
	UserID    string    `gorm:"primaryKey;size:36"`
	BlogID    string    `gorm:"primaryKey;size:36;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (UserBlogModel) TableName() string {
	return "user_blogs"
}

// ToEntity converts the GORM model to a domain entity. The blog-id set is filled by the caller.
func (m *UserModel) ToEntity(blogIDs []uuid.UUID) *entity.User {
	if blogIDs == nil {
		blogIDs = []uuid.UUID{}
	}
	return &entity.User{
		ID:           uuid.MustParse(m.ID),
		Username:     m.Username,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		BlogIDs:      blogIDs,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// UserModelFromEntity converts a domain entity to a GORM model.
func UserModelFromEntity(u *entity.User) *UserModel {
	return &UserModel{
		ID:           u.ID.String(),
		Username:     u.Username,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
