package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"blog_backend/internal/feature/blogs/adapters"
	"blog_backend/internal/feature/stats"
	"blog_backend/internal/platform/config"
	"blog_backend/internal/platform/db"
	"blog_backend/internal/platform/logger"
)

// stats は保存済みの全ブログを読み込み、集計レポートをJSONで標準出力に書き出します。
func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.AppName+"-stats", cfg.Env)
	log.Out = os.Stderr

	gdb, err := db.Open(cfg.DBDriver, cfg.DSN(), cfg.DBConnectTimeout, false)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer func() { _ = db.Close(gdb) }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	blogs, err := adapters.NewBlogGorm(gdb).List(ctx)
	if err != nil {
		log.WithError(err).Fatal("failed to load blogs")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(stats.Compute(blogs)); err != nil {
		log.WithError(err).Fatal("failed to write report")
	}
	log.WithField("blogs", len(blogs)).Info("report ok")
}
