package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "emb:query:"

// CachedProvider memoizes query embeddings in process (L1) and optionally in Redis (L2).
// Document embeddings bypass the cache since each passage is embedded once.
// Cache failures fall through to the wrapped provider.
type CachedProvider struct {
	next      EmbeddingProvider
	namespace string
	local     *gocache.Cache
	redis     redis.Cmdable
	ttl       time.Duration
}

// NewCachedProvider wraps next; rdb may be nil to disable the shared tier.
// namespace identifies the provider and model so vectors from a previous
// model are never served after a switch.
func NewCachedProvider(next EmbeddingProvider, namespace string, rdb redis.Cmdable, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &CachedProvider{
		next:      next,
		namespace: namespace,
		local:     gocache.New(ttl, 2*ttl),
		redis:     rdb,
		ttl:       ttl,
	}
}

func (c *CachedProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	if taskType != TaskRetrievalQuery {
		return c.next.Generate(ctx, text, taskType)
	}

	key := cacheKey(c.namespace, taskType, text)

	if v, ok := c.local.Get(key); ok {
		return wrap(v.([]float32)), nil
	}

	if c.redis != nil {
		if blob, err := c.redis.Get(ctx, key).Bytes(); err == nil {
			if values, err := DecodeVector(blob); err == nil && len(values) > 0 {
				c.local.SetDefault(key, values)
				return wrap(values), nil
			}
		}
	}

	res, err := c.next.Generate(ctx, text, taskType)
	if err != nil {
		return nil, err
	}
	if res == nil || len(res.Embedding.Values) == 0 {
		return res, nil
	}

	values := make([]float32, len(res.Embedding.Values))
	copy(values, res.Embedding.Values)
	c.local.SetDefault(key, values)
	if c.redis != nil {
		_ = c.redis.Set(ctx, key, EncodeVector(values), c.ttl).Err()
	}
	return res, nil
}

func cacheKey(namespace, taskType, text string) string {
	sum := sha256.Sum256([]byte(namespace + "\x00" + taskType + "\x00" + text))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func wrap(values []float32) *EmbeddingResponse {
	out := make([]float32, len(values))
	copy(out, values)
	return &EmbeddingResponse{Embedding: EmbeddingResponseEmbedding{Values: out}}
}
