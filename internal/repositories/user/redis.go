package user

import (
	"context"
	"encoding/json"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/errors"
	"github.com/dmtable/sheet-api/internal/pkg/clock"
	redisclient "github.com/dmtable/sheet-api/internal/redis"
)

const (
	userKeyPrefix = "sheet:user:"

	errUserNil    = "user cannot be nil"
	errUserIDZero = "user ID cannot be zero"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis user repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed user repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func userKey(id int64) string {
	return userKeyPrefix + strconv.FormatInt(id, 10)
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == 0 {
		return nil, errors.InvalidArgument(errUserIDZero)
	}

	result, err := r.client.Get(ctx, userKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("user with ID %d not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get user")
	}

	var u entities.User
	if err := json.Unmarshal([]byte(result), &u); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal user")
	}

	return &GetOutput{User: &u}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.User == nil {
		return nil, errors.InvalidArgument(errUserNil)
	}
	if input.User.ID == 0 {
		return nil, errors.InvalidArgument(errUserIDZero)
	}

	now := r.clock.Now().Unix()
	u := *input.User
	if u.CreatedAt == 0 {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	data, err := json.Marshal(&u)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal user")
	}

	if err := r.client.Set(ctx, userKey(u.ID), data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save user")
	}

	return &SaveOutput{User: &u}, nil
}
