package character

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/errors"
	"github.com/dmtable/sheet-api/internal/pkg/clock"
	redisclient "github.com/dmtable/sheet-api/internal/redis"
)

const (
	characterKeyPrefix = "sheet:character:"
	ownerIndexPrefix   = "sheet:character:owner:"
	allIndexKey        = "sheet:character:all"
	sequenceKey        = "sheet:character:seq"

	// Error messages
	errCharacterNil    = "character cannot be nil"
	errCharacterIDZero = "character ID cannot be zero"
	errOwnerIDZero     = "owner ID cannot be zero"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis character repository.
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

// NewRedis creates a new Redis-backed character repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Use real clock if none provided
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func characterKey(id int64) string {
	return characterKeyPrefix + strconv.FormatInt(id, 10)
}

func ownerIndexKey(ownerID int64) string {
	return ownerIndexPrefix + strconv.FormatInt(ownerID, 10)
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.OwnerID == 0 {
		return nil, errors.InvalidArgument(errOwnerIDZero)
	}

	id, err := r.client.Incr(ctx, sequenceKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to allocate character ID")
	}

	now := r.clock.Now().Unix()
	ch := *input.Character
	ch.ID = id
	ch.Version = 1
	ch.CreatedAt = now
	ch.UpdatedAt = now

	data, err := json.Marshal(&ch)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, characterKey(id), data, 0) // No TTL for characters
	pipe.SAdd(ctx, ownerIndexKey(ch.OwnerID), id)
	pipe.SAdd(ctx, allIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create character")
	}

	return &CreateOutput{Character: &ch}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == 0 {
		return nil, errors.InvalidArgument(errCharacterIDZero)
	}

	result, err := r.client.Get(ctx, characterKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character with ID %d not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	var ch entities.Character
	if err := json.Unmarshal([]byte(result), &ch); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal character")
	}

	return &GetOutput{Character: &ch}, nil
}

// Update writes under WATCH so the version check and the write are atomic.
// A character whose stored version moved on during the transaction fails
// with FailedPrecondition and the caller re-reads.
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.ID == 0 {
		return nil, errors.InvalidArgument(errCharacterIDZero)
	}

	key := characterKey(input.Character.ID)
	var updated entities.Character

	txErr := r.client.Watch(ctx, func(tx *redis.Tx) error {
		result, err := tx.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return errors.NotFoundf("character with ID %d not found", input.Character.ID)
			}
			return errors.Wrapf(err, "failed to get character")
		}

		var existing entities.Character
		if err := json.Unmarshal([]byte(result), &existing); err != nil {
			return errors.Wrapf(err, "failed to unmarshal existing character")
		}

		if existing.Version != input.Character.Version {
			return errors.FailedPreconditionf(
				"character %d version mismatch: have %d, stored %d",
				input.Character.ID, input.Character.Version, existing.Version)
		}

		updated = *input.Character
		updated.Version = existing.Version + 1
		updated.CreatedAt = existing.CreatedAt
		updated.UpdatedAt = r.clock.Now().Unix()

		data, err := json.Marshal(&updated)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal character")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			if existing.OwnerID != updated.OwnerID {
				pipe.SRem(ctx, ownerIndexKey(existing.OwnerID), updated.ID)
				pipe.SAdd(ctx, ownerIndexKey(updated.OwnerID), updated.ID)
			}
			return nil
		})
		return err
	}, key)

	if txErr != nil {
		if txErr == redis.TxFailedErr {
			return nil, errors.FailedPreconditionf(
				"character %d modified concurrently", input.Character.ID)
		}
		if _, ok := txErr.(*errors.Error); ok {
			return nil, txErr
		}
		return nil, errors.Wrapf(txErr, "failed to update character")
	}

	return &UpdateOutput{Character: &updated}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == 0 {
		return nil, errors.InvalidArgument(errCharacterIDZero)
	}

	// Get character to find its owner index
	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}
	ch := getOutput.Character

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, characterKey(input.ID))
	pipe.SRem(ctx, ownerIndexKey(ch.OwnerID), input.ID)
	pipe.SRem(ctx, allIndexKey, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByOwnerID(
	ctx context.Context,
	input ListByOwnerIDInput,
) (*ListByOwnerIDOutput, error) {
	if input.OwnerID == 0 {
		return nil, errors.InvalidArgument(errOwnerIDZero)
	}

	indexKey := ownerIndexKey(input.OwnerID)
	characters, err := r.listByIndex(ctx, indexKey)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list characters by owner index",
			"owner_id", input.OwnerID,
			"index_key", indexKey,
			"error", err.Error())
		return nil, err
	}

	return &ListByOwnerIDOutput{Characters: characters}, nil
}

func (r *redisRepository) ListAll(ctx context.Context, _ ListAllInput) (*ListAllOutput, error) {
	characters, err := r.listByIndex(ctx, allIndexKey)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list all characters",
			"index_key", allIndexKey,
			"error", err.Error())
		return nil, err
	}

	return &ListAllOutput{Characters: characters}, nil
}

// listByIndex resolves an ID set into characters, pruning index members
// whose character is gone.
func (r *redisRepository) listByIndex(ctx context.Context, indexKey string) ([]*entities.Character, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read index %s", indexKey)
	}

	characters := make([]*entities.Character, 0, len(ids))
	for _, rawID := range ids {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			slog.WarnContext(ctx, "removing malformed index member",
				"index_key", indexKey,
				"member", rawID)
			r.client.SRem(ctx, indexKey, rawID)
			continue
		}

		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "character missing, cleaning up index",
					"character_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, rawID)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get character %d", id)
		}
		characters = append(characters, getOutput.Character)
	}

	return characters, nil
}
