package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	blogentity "blog_backend/internal/feature/blogs/domain/entity"
	"blog_backend/internal/feature/users/domain/entity"
	"blog_backend/internal/shared/apperr"
	"blog_backend/internal/shared/validation"
)

// UserRepository abstracts the persistence layer for user entities.
// Interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user and assigns its ID.
	// It returns ErrUsernameTaken if the username already exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername returns ErrUserNotFound if no user has the exact username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// List returns every user with its blog-id set loaded.
	List(ctx context.Context) ([]*entity.User, error)
}

// BlogDirectory resolves blog ids to blogs for the user listing.
type BlogDirectory interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]blogentity.Blog, error)
}

// CreateUserInput is the registration payload.
type CreateUserInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Name     string `json:"name"`
	Password string `json:"password" validate:"required,min=3"`
}

// UserWithBlogs is a user together with its owned blogs resolved.
type UserWithBlogs struct {
	User  *entity.User
	Blogs []blogentity.Blog
}

var createUserMessages = validation.Messages{
	"username.required": "username is required",
	"username.min":      "username must be at least 3 characters long",
	"password.required": "please enter a password that is at least 3 characters long",
	"password.min":      "please enter a password that is at least 3 characters long",
}

const usernameNotUnique = "expected `username` to be unique"

type userUsecase struct {
	users      UserRepository
	blogs      BlogDirectory
	validator  *validation.Validator
	bcryptCost int
}

// NewUserUsecase creates a new userUsecase. A non-positive cost falls back to bcrypt.DefaultCost.
func NewUserUsecase(users UserRepository, blogs BlogDirectory, bcryptCost int) *userUsecase {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userUsecase{
		users:      users,
		blogs:      blogs,
		validator:  validation.New(),
		bcryptCost: bcryptCost,
	}
}

// CreateUser validates the input, hashes the password and persists the user.
func (u *userUsecase) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	if err := u.validator.Struct(in, createUserMessages); err != nil {
		return nil, err
	}

	existing, err := u.users.FindByUsername(ctx, in.Username)
	switch {
	case err == nil && existing != nil:
		return nil, apperr.NewValidationError("username", usernameNotUnique)
	case err != nil && !errors.Is(err, ErrUserNotFound):
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:     in.Username,
		Name:         in.Name,
		PasswordHash: string(hashed),
		BlogIDs:      []uuid.UUID{},
	}
	if err := u.users.Create(ctx, user); err != nil {
		// 事前チェックと作成の間に同名ユーザーが作られた場合
		if errors.Is(err, ErrUsernameTaken) {
			return nil, apperr.NewValidationError("username", usernameNotUnique)
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns every user with its blogs resolved in one extra query.
func (u *userUsecase) ListUsers(ctx context.Context) ([]UserWithBlogs, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	for _, user := range users {
		ids = append(ids, user.BlogIDs...)
	}

	byID := make(map[uuid.UUID]blogentity.Blog, len(ids))
	if len(ids) > 0 {
		blogs, err := u.blogs.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, b := range blogs {
			byID[b.ID] = b
		}
	}

	out := make([]UserWithBlogs, 0, len(users))
	for _, user := range users {
		owned := make([]blogentity.Blog, 0, len(user.BlogIDs))
		for _, id := range user.BlogIDs {
			if b, ok := byID[id]; ok {
				owned = append(owned, b)
			}
		}
		out = append(out, UserWithBlogs{User: user, Blogs: owned})
	}
	return out, nil
}
