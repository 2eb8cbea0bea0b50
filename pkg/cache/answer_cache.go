package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// AnswerCache stores finished answers keyed by namespace and question so
// repeated identical questions skip the embed/retrieve/generate round trip.
type AnswerCache interface {
	Get(ctx context.Context, namespace, question string) (string, bool)
	Set(ctx context.Context, namespace, question, answer string)
}

const answerTTL = 10 * time.Minute

type RedisAnswerCache struct {
	client *redis.Client
}

func NewRedisAnswerCache(redisURL string) (*RedisAnswerCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisAnswerCache{client: redis.NewClient(opts)}, nil
}

func (c *RedisAnswerCache) Get(ctx context.Context, namespace, question string) (string, bool) {
	val, err := c.client.Get(ctx, answerKey(namespace, question)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *RedisAnswerCache) Set(ctx context.Context, namespace, question, answer string) {
	c.client.Set(ctx, answerKey(namespace, question), answer, answerTTL)
}

func (c *RedisAnswerCache) Close() error {
	return c.client.Close()
}

func answerKey(namespace, question string) string {
	sum := sha256.Sum256([]byte(namespace + "\x00" + question))
	return "answer:" + namespace + ":" + hex.EncodeToString(sum[:])
}
