// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"blog_backend/internal/feature/auth/transport/http/dto"
	"blog_backend/internal/feature/auth/usecase"
	"blog_backend/internal/shared/apperr"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Login はユーザーを認証し、成功時にトークンとユーザー情報を返します。
	Login(ctx context.Context, username, password string) (*usecase.LoginResult, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth   AuthUsecase
	logger logrus.FieldLogger
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase, logger logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - 必須フィールド欠落・不正なボディも認証失敗と同じく401
// - 認証失敗時は401（ユーザー名とパスワードのどちらが誤りかは区別しない）
// - 成功時はトークン・ユーザー名・表示名付きで200
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).WithField("remote_addr", c.ClientIP()).Warn("login validation failed")
		_ = c.Error(apperr.ErrInvalidCredentials)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"username":    req.Username,
			"remote_addr": c.ClientIP(),
		}).Warn("login failed")
		_ = c.Error(err)
		return
	}

	h.logger.WithFields(logrus.Fields{"username": res.Username, "remote_addr": c.ClientIP()}).Info("user login successful")
	c.JSON(http.StatusOK, dto.LoginRes{Token: res.Token, Username: res.Username, Name: res.Name})
}
