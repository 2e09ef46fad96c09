// Package handler はblogsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"blog_backend/internal/feature/blogs/domain/entity"
	"blog_backend/internal/feature/blogs/transport/http/dto"
	"blog_backend/internal/feature/blogs/usecase"
	jwtmw "blog_backend/internal/platform/jwt"
	"blog_backend/internal/shared/apperr"
)

// BlogUsecase はブログ操作のユースケースを定義します。
// インターフェースはコンシューマー（handler）が定義します。
type BlogUsecase interface {
	List(ctx context.Context) ([]entity.Blog, error)
	Get(ctx context.Context, id string) (*entity.Blog, error)
	Create(ctx context.Context, ownerID uuid.UUID, in usecase.CreateBlogInput) (*entity.Blog, error)
	Delete(ctx context.Context, actorID uuid.UUID, id string) error
	Update(ctx context.Context, id string, in usecase.UpdateBlogInput) (*entity.Blog, error)
	AddComment(ctx context.Context, authorID uuid.UUID, id string, in usecase.CommentInput) (*entity.Blog, error)
}

// BlogHandler はブログ操作のHTTPリクエストを処理します。
type BlogHandler struct {
	blogs  BlogUsecase
	logger logrus.FieldLogger
}

// NewBlogHandler はBlogHandlerの新しいインスタンスを生成します。
func NewBlogHandler(blogs BlogUsecase, logger logrus.FieldLogger) *BlogHandler {
	return &BlogHandler{blogs: blogs, logger: logger}
}

var errMalformedBody = apperr.NewValidationError("body", "malformatted request body")

// List は GET /blogs を処理します（認証不要）。
func (h *BlogHandler) List(c *gin.Context) {
	blogs, err := h.blogs.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBlogResList(blogs))
}

// Get は GET /blogs/:id を処理します（認証不要）。
func (h *BlogHandler) Get(c *gin.Context) {
	blog, err := h.blogs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBlogRes(blog))
}

// Create は POST /blogs を処理します。UserExtractor で解決されたユーザーが所有者になります。
func (h *BlogHandler) Create(c *gin.Context) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		_ = c.Error(apperr.ErrTokenMissingOrInvalid)
		return
	}

	var req dto.CreateBlogReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(errMalformedBody)
		return
	}

	blog, err := h.blogs.Create(c.Request.Context(), user.ID, usecase.CreateBlogInput{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.WithFields(logrus.Fields{"blog_id": blog.ID, "user_id": user.ID}).Info("blog created")
	c.JSON(http.StatusCreated, dto.NewBlogRes(blog))
}

// Delete は DELETE /blogs/:id を処理します。所有者のみ削除でき、成功時は204を返します。
func (h *BlogHandler) Delete(c *gin.Context) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		_ = c.Error(apperr.ErrTokenMissingOrInvalid)
		return
	}

	if err := h.blogs.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		if errors.Is(err, apperr.ErrForbidden) {
			h.logger.WithFields(logrus.Fields{"blog_id": c.Param("id"), "user_id": user.ID}).Warn("blog deletion by non-owner rejected")
		}
		_ = c.Error(err)
		return
	}

	h.logger.WithFields(logrus.Fields{"blog_id": c.Param("id"), "user_id": user.ID}).Info("blog deleted")
	c.Status(http.StatusNoContent)
}

// Update は PUT /blogs/:id を処理します。「いいね」用のため誰でも呼び出せます。
func (h *BlogHandler) Update(c *gin.Context) {
	var req dto.UpdateBlogReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(errMalformedBody)
		return
	}

	blog, err := h.blogs.Update(c.Request.Context(), c.Param("id"), usecase.UpdateBlogInput{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBlogRes(blog))
}

// AddComment は POST /blogs/:id/comments を処理します。
func (h *BlogHandler) AddComment(c *gin.Context) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		_ = c.Error(apperr.ErrTokenMissingOrInvalid)
		return
	}

	var req dto.CommentReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(errMalformedBody)
		return
	}

	blog, err := h.blogs.AddComment(c.Request.Context(), user.ID, c.Param("id"), usecase.CommentInput{Text: req.Text})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBlogRes(blog))
}
