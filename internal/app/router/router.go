package router

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	authhandler "blog_backend/internal/feature/auth/transport/handler"
	bloghandler "blog_backend/internal/feature/blogs/transport/handler"
	userhandler "blog_backend/internal/feature/users/transport/handler"
	"blog_backend/internal/platform/http/handler"
	"blog_backend/internal/platform/http/middleware"
	jwtmw "blog_backend/internal/platform/jwt"
)

// Options carries the cross-cutting pieces the router needs.
type Options struct {
	Logger logrus.FieldLogger
	// CORSOrigins lists allowed origins; "*" or an empty list allows any origin.
	CORSOrigins []string
	// RequireUser resolves the bearer token to a user and rejects the request otherwise.
	RequireUser gin.HandlerFunc
}

// NewRouter はミドルウェアとルーティングを設定したgin.Engineを返します。
// /healthz 以外のAPIは /api 配下に配置します。
func NewRouter(opts Options, authHandler *authhandler.AuthHandler, users *userhandler.UserHandler,
	blogs *bloghandler.BlogHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(corsMiddleware(opts.CORSOrigins))
	r.Use(middleware.ErrorHandler(opts.Logger))
	// トークンの抽出のみ（検証はしない）。全リクエストに適用
	r.Use(jwtmw.TokenExtractor())

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)

	api := r.Group("/api")
	{
		// 認証不要
		api.POST("/login", authHandler.Login)
		api.POST("/users", users.Create)
		api.GET("/users", users.List)
		api.GET("/blogs", blogs.List)
		api.GET("/blogs/:id", blogs.Get)
		// 「いいね」用の更新は誰でも実行可能
		api.PUT("/blogs/:id", blogs.Update)

		// 認証必須のルート
		auth := api.Group("/")
		auth.Use(opts.RequireUser)
		{
			auth.POST("/blogs", blogs.Create)
			auth.DELETE("/blogs/:id", blogs.Delete)
			auth.POST("/blogs/:id/comments", blogs.AddComment)
		}
	}

	r.NoRoute(middleware.UnknownEndpoint)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
