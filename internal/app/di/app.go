package di

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"blog_backend/internal/app/router"
	authhandler "blog_backend/internal/feature/auth/transport/handler"
	authusecase "blog_backend/internal/feature/auth/usecase"
	bloghandler "blog_backend/internal/feature/blogs/transport/handler"
	blogusecase "blog_backend/internal/feature/blogs/usecase"
	useradapters "blog_backend/internal/feature/users/adapters"
	userhandler "blog_backend/internal/feature/users/transport/handler"
	userusecase "blog_backend/internal/feature/users/usecase"
	"blog_backend/internal/platform/config"
	jwtmw "blog_backend/internal/platform/jwt"
)

// NewEngine wires repositories, usecases and handlers into a ready gin engine.
// rdb may be nil, in which case the blog list is served without a cache.
func NewEngine(cfg *config.Config, db *gorm.DB, rdb *redis.Client, logger logrus.FieldLogger) *gin.Engine {
	// Repository
	userRepo := useradapters.NewUserGorm(db)
	blogRepo := NewBlogRepository(rdb, db, cfg.CacheTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, jwtmw.NewGenerator(cfg.JWTSecret, cfg.TokenTTL), jwtmw.NewVerifier(cfg.JWTSecret))
	userUC := userusecase.NewUserUsecase(userRepo, blogRepo, cfg.BcryptCost)
	blogUC := blogusecase.NewBlogUsecase(blogRepo, userRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, logger)
	userH := userhandler.NewUserHandler(userUC, logger)
	blogH := bloghandler.NewBlogHandler(blogUC, logger)

	return router.NewRouter(router.Options{
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins(),
		RequireUser: jwtmw.UserExtractor(authUC),
	}, authH, userH, blogH)
}
