// Package redissvc bundles the shared redis client with its base context so
// the stats cache and the alert digest talk to the same connection.
package redissvc

import (
	"context"

	"github.com/redis/go-redis/v9"
)

type RedisService struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisService(rdb *redis.Client, ctx context.Context) *RedisService {
	return &RedisService{rdb: rdb, ctx: ctx}
}

func (s *RedisService) Rdb() *redis.Client {
	return s.rdb
}

func (s *RedisService) Ctx() context.Context {
	return s.ctx
}
