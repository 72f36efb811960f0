package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/campaign-share/backend/internal/domain"
)

var ErrCacheMiss = errors.New("缓存未命中")

// Cache 缓存成功生成的内容，避免同一主题重复调用
type Cache interface {
	Get(ctx context.Context, topic string, platform domain.Platform) (Content, error)
	Set(ctx context.Context, topic string, platform domain.Platform, c Content) error
}

type RedisCache struct {
	client     *redis.Client
	expiration time.Duration
}

func NewRedisCache(client *redis.Client, expiration time.Duration) *RedisCache {
	return &RedisCache{
		client:     client,
		expiration: expiration,
	}
}

func cacheKey(topic string, platform domain.Platform) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(topic))))
	return fmt.Sprintf("generation_%s_%s", platform, hex.EncodeToString(sum[:]))
}

func (c *RedisCache) Get(ctx context.Context, topic string, platform domain.Platform) (Content, error) {
	data, err := c.client.Get(ctx, cacheKey(topic, platform)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Content{}, ErrCacheMiss
		}
		return Content{}, err
	}

	content := Content{}
	if err := json.Unmarshal(data, &content); err != nil {
		return Content{}, err
	}

	return content, nil
}

func (c *RedisCache) Set(ctx context.Context, topic string, platform domain.Platform, content Content) error {
	data, err := json.Marshal(content)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, cacheKey(topic, platform), data, c.expiration).Err()
}
