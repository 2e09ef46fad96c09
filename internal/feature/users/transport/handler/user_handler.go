// Package handler provides HTTP handlers for the users feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"blog_backend/internal/feature/users/domain/entity"
	"blog_backend/internal/feature/users/transport/http/dto"
	"blog_backend/internal/feature/users/usecase"
	"blog_backend/internal/shared/apperr"
)

// UserUsecase defines the user operations the handler needs.
type UserUsecase interface {
	CreateUser(ctx context.Context, in usecase.CreateUserInput) (*entity.User, error)
	ListUsers(ctx context.Context) ([]usecase.UserWithBlogs, error)
}

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	users  UserUsecase
	logger logrus.FieldLogger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserUsecase, logger logrus.FieldLogger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// Create handles POST /users and returns 201 with the created user.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperr.NewValidationError("body", "malformatted request body"))
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), usecase.CreateUserInput{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"username":    req.Username,
			"remote_addr": c.ClientIP(),
		}).Warn("user creation failed")
		_ = c.Error(err)
		return
	}

	h.logger.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user created")
	c.JSON(http.StatusCreated, dto.NewUserRes(user, nil))
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	out := make([]dto.UserRes, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserRes(u.User, u.Blogs))
	}
	c.JSON(http.StatusOK, out)
}
