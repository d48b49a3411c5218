package template

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
	templateKeyPrefix = "sheet:template:"
	ownerIndexPrefix  = "sheet:template:owner:"
	sequenceKey       = "sheet:template:seq"

	errTemplateNil    = "template cannot be nil"
	errTemplateIDZero = "template ID cannot be zero"
	errOwnerIDZero    = "owner ID cannot be zero"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis template repository.
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

// NewRedis creates a new Redis-backed template repository
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

func templateKey(id int64) string {
	return templateKeyPrefix + strconv.FormatInt(id, 10)
}

func ownerIndexKey(ownerID int64) string {
	return ownerIndexPrefix + strconv.FormatInt(ownerID, 10)
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Template == nil {
		return nil, errors.InvalidArgument(errTemplateNil)
	}
	if input.Template.OwnerID == 0 {
		return nil, errors.InvalidArgument(errOwnerIDZero)
	}

	id, err := r.client.Incr(ctx, sequenceKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to allocate template ID")
	}

	now := r.clock.Now().Unix()
	tmpl := *input.Template
	tmpl.ID = id
	tmpl.CreatedAt = now
	tmpl.UpdatedAt = now

	data, err := json.Marshal(&tmpl)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal template")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, templateKey(id), data, 0)
	pipe.SAdd(ctx, ownerIndexKey(tmpl.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create template")
	}

	return &CreateOutput{Template: &tmpl}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == 0 {
		return nil, errors.InvalidArgument(errTemplateIDZero)
	}

	result, err := r.client.Get(ctx, templateKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("template with ID %d not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get template")
	}

	var tmpl entities.SheetTemplate
	if err := json.Unmarshal([]byte(result), &tmpl); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal template")
	}

	return &GetOutput{Template: &tmpl}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Template == nil {
		return nil, errors.InvalidArgument(errTemplateNil)
	}
	if input.Template.ID == 0 {
		return nil, errors.InvalidArgument(errTemplateIDZero)
	}

	existing, err := r.Get(ctx, GetInput{ID: input.Template.ID})
	if err != nil {
		return nil, err
	}

	tmpl := *input.Template
	tmpl.CreatedAt = existing.Template.CreatedAt
	tmpl.UpdatedAt = r.clock.Now().Unix()

	data, err := json.Marshal(&tmpl)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal template")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, templateKey(tmpl.ID), data, 0)
	if existing.Template.OwnerID != tmpl.OwnerID {
		pipe.SRem(ctx, ownerIndexKey(existing.Template.OwnerID), tmpl.ID)
		pipe.SAdd(ctx, ownerIndexKey(tmpl.OwnerID), tmpl.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to update template")
	}

	return &UpdateOutput{Template: &tmpl}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == 0 {
		return nil, errors.InvalidArgument(errTemplateIDZero)
	}

	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, templateKey(input.ID))
	pipe.SRem(ctx, ownerIndexKey(getOutput.Template.OwnerID), input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete template")
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
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read index %s", indexKey)
	}

	templates := make([]*entities.SheetTemplate, 0, len(ids))
	for _, rawID := range ids {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			r.client.SRem(ctx, indexKey, rawID)
			continue
		}

		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "template missing, cleaning up index",
					"template_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, rawID)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get template %d", id)
		}
		templates = append(templates, getOutput.Template)
	}

	return &ListByOwnerIDOutput{Templates: templates}, nil
}
