// Package db はデータベース接続の確立とライフサイクル管理を提供します。
package db

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	blogadapters "blog_backend/internal/feature/blogs/adapters"
	useradapters "blog_backend/internal/feature/users/adapters"
)

// retryInterval は接続リトライの間隔です。
var retryInterval = 3 * time.Second

// Opener はDSNからgorm.DBを生成する関数です。テストで差し替え可能にするため関数型で受け取ります。
type Opener func(dsn string) (*gorm.DB, error)

// Dialector はドライバー名に対応するgormのDialectorを返します。
// postgres のDSNは pgx で解析し、pgx の database/sql ドライバー経由で接続します。
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		connConfig, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse postgres dsn: %w", err)
		}
		return postgres.New(postgres.Config{Conn: stdlib.OpenDB(*connConfig)}), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// NewOpener はドライバー固有のOpenerを返します。
// 一意制約違反を gorm.ErrDuplicatedKey として扱えるよう TranslateError を有効にします。
func NewOpener(driver string) (Opener, error) {
	if driver != "postgres" && driver != "sqlite" {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return func(dsn string) (*gorm.DB, error) {
		dialector, err := Dialector(driver, dsn)
		if err != nil {
			return nil, err
		}
		return gorm.Open(dialector, &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		})
	}, nil
}

// ConnectWithRetry は接続に成功するかタイムアウトするまで open を繰り返し呼び出します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		logrus.WithError(err).Warn("db connect failed, retrying")
		time.Sleep(retryInterval)
	}
}

// Migrate はユーザーとブログのスキーマを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&useradapters.UserModel{},
		&useradapters.UserBlogModel{},
		&blogadapters.BlogModel{},
		&blogadapters.CommentModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Open は設定されたドライバーで接続し、必要ならマイグレーションを実行します。
func Open(driver, dsn string, timeout time.Duration, runMigrations bool) (*gorm.DB, error) {
	opener, err := NewOpener(driver)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(dsn, timeout, opener)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// SQLite は単一の書き込みコネクションに制限する（:memory: はコネクション毎に別DBになるため）
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if runMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Close は基盤となる接続プールを閉じます。
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
