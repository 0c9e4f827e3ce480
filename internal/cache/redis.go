package cache

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisPayloadKey = "newsnow:payload"
	redisSavedAtKey = "newsnow:saved_at"
	redisOpTimeout  = 3 * time.Second
)

// RedisStore 是服务器部署用的缓存后端。
// Redis 不提供写入时间元数据，所以旁放一个显式的 saved_at 键当新鲜度时钟。
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("warn: redis ping failed: %v", err)
	}
	return &RedisStore{rdb: rdb}
}

func (r *RedisStore) Load() ([]byte, time.Time, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	payload, err := r.rdb.Get(ctx, redisPayloadKey).Bytes()
	if err != nil || len(payload) == 0 {
		return nil, time.Time{}, false
	}

	savedAt := time.Time{}
	if s, err := r.rdb.Get(ctx, redisSavedAtKey).Result(); err == nil {
		if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
			savedAt = time.Unix(unix, 0)
		}
	}
	return payload, savedAt, true
}

func (r *RedisStore) Save(payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := r.rdb.Set(ctx, redisPayloadKey, payload, 0).Err(); err != nil {
		return err
	}
	return r.rdb.Set(ctx, redisSavedAtKey, strconv.FormatInt(time.Now().Unix(), 10), 0).Err()
}
