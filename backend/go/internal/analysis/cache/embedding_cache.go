// Package cache provides a Redis-backed decorator for embedding models, so
// repeated texts (notably the shared query of a parallel prompt run) are
// embedded once.
package cache

import (
	"VaultMind/backend/go/internal/analysis/interfaces"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"VaultMind/backend/go/pkg/logger"
)

const keyPrefix = "vaultmind:embedding:"

// EmbeddingCache wraps an EmbeddingModel with a Redis read-through cache.
// Cache failures are logged and fall through to the inner model, never
// failing the caller.
type EmbeddingCache struct {
	inner interfaces.EmbeddingModel
	rdb   *redis.Client
	ttl   time.Duration
	log   *logger.Logger
}

// NewEmbeddingCache creates a cache decorator around the given model.
func NewEmbeddingCache(inner interfaces.EmbeddingModel, rdb *redis.Client, ttl time.Duration, log *logger.Logger) *EmbeddingCache {
	return &EmbeddingCache{inner: inner, rdb: rdb, ttl: ttl, log: log}
}

// Embed returns the cached embedding for the text, or computes and stores it.
func (c *EmbeddingCache) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(text)

	if cached, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var embedding []float32
		if err := json.Unmarshal(cached, &embedding); err == nil {
			return embedding, nil
		}
		c.log.Warn(fmt.Sprintf("Discarding undecodable cache entry %s", key))
	} else if err != redis.Nil {
		c.log.WithError(err).Warn("Embedding cache read failed, falling through to model")
	}

	embedding, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, embedding)
	return embedding, nil
}

// EmbedBatch embeds a batch of texts, serving cached entries and only sending
// the misses to the inner model.
func (c *EmbeddingCache) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))

	var missTexts []string
	var missIndexes []int
	for i, text := range texts {
		cached, err := c.rdb.Get(ctx, cacheKey(text)).Bytes()
		if err == nil {
			var embedding []float32
			if err := json.Unmarshal(cached, &embedding); err == nil {
				embeddings[i] = embedding
				continue
			}
		} else if err != redis.Nil {
			c.log.WithError(err).Warn("Embedding cache read failed, falling through to model")
		}
		missTexts = append(missTexts, text)
		missIndexes = append(missIndexes, i)
	}

	if len(missTexts) == 0 {
		return embeddings, nil
	}

	computed, err := c.inner.EmbedBatch(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	for j, embedding := range computed {
		embeddings[missIndexes[j]] = embedding
		c.store(ctx, cacheKey(missTexts[j]), embedding)
	}
	return embeddings, nil
}

func (c *EmbeddingCache) store(ctx context.Context, key string, embedding []float32) {
	encoded, err := json.Marshal(embedding)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		c.log.WithError(err).Warn("Embedding cache write failed")
	}
}

func cacheKey(text string) string {
	digest := sha256.Sum256([]byte(text))
	return keyPrefix + hex.EncodeToString(digest[:])
}

// compile-time check to ensure EmbeddingCache implements the EmbeddingModel interface
var _ interfaces.EmbeddingModel = (*EmbeddingCache)(nil)
