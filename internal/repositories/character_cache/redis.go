package charactercache

import (
	"context"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/ddb-converter/internal/errors"
	"github.com/KirkDiggler/ddb-converter/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/ddb-converter/internal/redis"
)

const (
	// Key pattern: ddb_character:{character_id}
	keyPrefix  = "ddb_character:"
	defaultTTL = 10 * time.Minute

	fieldData      = "data"
	fieldFetchedAt = "fetched_at"

	errCharacterIDEmpty = "character ID cannot be empty"
	errDataEmpty        = "character data cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
	TTL    time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	if c.TTL < 0 {
		return errors.InvalidArgument("TTL cannot be negative")
	}
	if c.TTL == 0 {
		c.TTL = defaultTTL
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis repository for character documents
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		ttl:    cfg.TTL,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Put stores the document and its fetch time in a hash with an expiry
func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if len(input.Data) == 0 {
		return nil, errors.InvalidArgument(errDataEmpty)
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = r.ttl
	}
	now := r.clock.Now()
	key := buildKey(input.CharacterID)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fieldData, input.Data, fieldFetchedAt, now.UnixMilli())
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to cache character %s", input.CharacterID)
	}

	return &PutOutput{
		Entry: &Entry{
			CharacterID: input.CharacterID,
			Data:        input.Data,
			FetchedAt:   now,
			ExpiresAt:   now.Add(ttl),
		},
	}, nil
}

// Get returns the cached document
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	key := buildKey(input.CharacterID)

	var (
		fields *redis.MapStringStringCmd
		ttl    *redis.DurationCmd
	)
	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		fields = pipe.HGetAll(ctx, key)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil && err != redis.Nil {
		return nil, errors.Wrapf(err, "failed to read cached character %s", input.CharacterID)
	}

	values := fields.Val()
	data, ok := values[fieldData]
	if !ok || data == "" {
		return nil, errors.NotFoundf("character %s not cached", input.CharacterID)
	}

	entry := &Entry{
		CharacterID: input.CharacterID,
		Data:        []byte(data),
	}
	if ms, err := strconv.ParseInt(values[fieldFetchedAt], 10, 64); err == nil {
		entry.FetchedAt = time.UnixMilli(ms)
	}
	if remaining := ttl.Val(); remaining > 0 {
		entry.ExpiresAt = r.clock.Now().Add(remaining)
	}

	return &GetOutput{Entry: entry}, nil
}

// Delete evicts the document
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	n, err := r.client.Del(ctx, buildKey(input.CharacterID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to evict character %s", input.CharacterID)
	}

	return &DeleteOutput{Deleted: n > 0}, nil
}

func buildKey(characterID string) string {
	return keyPrefix + characterID
}
