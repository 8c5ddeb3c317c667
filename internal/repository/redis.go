package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ghaggin/policy-portal/internal/config"
)

// RedisStore keeps sessions in Redis so several portal instances can share
// them.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedis(cfg config.RedisStore, log *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("unable to reach redis", zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		log.Info("connected to redis", zap.String("addr", cfg.Addr))
	}

	return NewRedisWithClient(client, cfg.Prefix)
}

func NewRedisWithClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) stop(_ context.Context) error {
	return r.client.Close()
}

func (r *RedisStore) Find(token string) ([]byte, bool, error) {
	b, err := r.client.Get(context.Background(), r.prefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *RedisStore) Commit(token string, b []byte, expiry time.Time) error {
	ttl := time.Until(expiry)
	if ttl <= 0 {
		return r.Delete(token)
	}
	return r.client.Set(context.Background(), r.prefix+token, b, ttl).Err()
}

func (r *RedisStore) Delete(token string) error {
	return r.client.Del(context.Background(), r.prefix+token).Err()
}
