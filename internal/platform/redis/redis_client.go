// Package redis はRedisクライアントの生成を提供します。
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrDisabled は REDIS_ADDR が未設定でキャッシュが無効な場合に返されます。
var ErrDisabled = errors.New("redis disabled")

// NewRedisClient は接続確認済みのクライアントを返します。
// addr が空の場合は ErrDisabled を返し、呼び出し側はキャッシュなしで動作します。
func NewRedisClient(ctx context.Context, addr, password string, db int, logger logrus.FieldLogger) (*redis.Client, error) {
	if addr == "" {
		return nil, ErrDisabled
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.WithError(err).WithField("address", addr).Error("Redis connection failed")
		_ = rdb.Close()
		return nil, err
	}

	logger.WithField("address", addr).Info("Redis connection successful")
	return rdb, nil
}
