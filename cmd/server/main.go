package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"blog_backend/internal/app/di"
	"blog_backend/internal/platform/config"
	infradb "blog_backend/internal/platform/db"
	"blog_backend/internal/platform/logger"
	infraredis "blog_backend/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// ロガー生成前なので標準エラーに出力
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.AppName, cfg.Env)
	if cfg.Env != config.EnvDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db
	db, err := infradb.Open(cfg.DBDriver, cfg.DSN(), cfg.DBConnectTimeout, cfg.RunMigrations)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer func() {
		if err := infradb.Close(db); err != nil {
			log.WithError(err).Error("failed to close database")
		}
	}()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log); err != nil {
		if !errors.Is(err, infraredis.ErrDisabled) {
			log.Warn("Redis unavailable. Running without cache.")
		}
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.WithError(err).Error("failed to close Redis client")
			}
		}()
	}

	engine := di.NewEngine(cfg, db, rdb, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	log.Info("server exited properly")
}
