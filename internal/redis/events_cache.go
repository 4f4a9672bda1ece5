package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aquarion/docket-sub000/internal/config"
	"github.com/aquarion/docket-sub000/internal/model"
	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

const eventsCachePrefix = "events_cache:"

// EventsCacheRepository memoizes aggregation results keyed by the exact
// source set, time window and merge table (callers compute the key).
type EventsCacheRepository struct {
	pool   *redis.Pool
	logger *zap.SugaredLogger
}

func NewEventsCacheRepository(pool *redis.Pool, logger *zap.SugaredLogger) *EventsCacheRepository {
	return &EventsCacheRepository{
		pool:   pool,
		logger: logger,
	}
}

func (r *EventsCacheRepository) Get(ctx context.Context, key string) ([]*model.MergedEvent, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	data, err := redis.Bytes(conn.Do("GET", eventsCachePrefix+key))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("GET: %w", err)
	}

	var events []*model.MergedEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("unmarshal cached events: %w", err)
	}

	return events, nil
}

func (r *EventsCacheRepository) Put(ctx context.Context, key string, events []*model.MergedEvent) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}

	ttl := int(config.CacheTTL().Seconds())
	if _, err := conn.Do("SETEX", eventsCachePrefix+key, ttl, data); err != nil {
		return fmt.Errorf("SETEX: %w", err)
	}

	return nil
}
