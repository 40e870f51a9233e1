package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-user-approval/internal/application/approval"
	"github.com/oksasatya/go-ddd-user-approval/pkg/helpers"
)

const (
	runKeyPrefix     = "approval:run:"
	requestKeyPrefix = "approval:request:"
)

// RunStore keeps approval runs as JSON values that expire after ttl. Runs of one request
// are indexed in a sorted set scored by start time.
type RunStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRunStore(rdb *redis.Client, ttl time.Duration) *RunStore {
	return &RunStore{rdb: rdb, ttl: ttl}
}

func runKey(id string) string     { return runKeyPrefix + id }
func requestKey(id string) string { return requestKeyPrefix + id }

func (s *RunStore) Save(ctx context.Context, run *approval.Run) error {
	if err := helpers.RedisSetJSON(ctx, s.rdb, runKey(run.ID), run, s.ttl); err != nil {
		return err
	}
	key := requestKey(run.RequestID)
	pipe := s.rdb.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(run.StartedAt.UnixNano()), Member: run.ID})
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RunStore) Get(ctx context.Context, id string) (*approval.Run, error) {
	var run approval.Run
	found, err := helpers.RedisGetJSON(ctx, s.rdb, runKey(id), &run)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, approval.ErrRunNotFound
	}
	return &run, nil
}

// ListByRequest skips runs whose record expired before the index did.
func (s *RunStore) ListByRequest(ctx context.Context, requestID string) ([]*approval.Run, error) {
	ids, err := s.rdb.ZRange(ctx, requestKey(requestID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*approval.Run, 0, len(ids))
	for _, id := range ids {
		run, err := s.Get(ctx, id)
		if errors.Is(err, approval.ErrRunNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, nil
}
