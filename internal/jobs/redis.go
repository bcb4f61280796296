package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	queueKey   = "queue:generate"
	recentKey  = "list:recent"
	popTimeout = time.Second
)

func jobKey(id string) string {
	return "job:" + id
}

// RedisQueue keeps job records and the pending queue in Redis, so jobs can be
// enqueued from one process and worked by another.
type RedisQueue struct {
	rdb *redis.Client
}

// NewRedisQueue connects to addr and verifies the connection.
func NewRedisQueue(ctx context.Context, addr string) (*RedisQueue, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisQueue{rdb: rdb}, nil
}

var _ Queue = (*RedisQueue)(nil)

func (q *RedisQueue) Close() error {
	return q.rdb.Close()
}

// Enqueue stores the job and pushes it onto the queue and the recent list in
// one round trip.
func (q *RedisQueue) Enqueue(ctx context.Context, job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	id := job.ID.String()

	pipe := q.rdb.Pipeline()
	pipe.Set(ctx, jobKey(id), data, 0)
	pipe.LPush(ctx, queueKey, id)
	pipe.LPush(ctx, recentKey, id)
	pipe.LTrim(ctx, recentKey, 0, recentLimit-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (q *RedisQueue) Update(ctx context.Context, job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.rdb.Set(ctx, jobKey(job.ID.String()), data, 0).Err()
}

func (q *RedisQueue) Get(ctx context.Context, id uuid.UUID) (*Job, error) {
	val, err := q.rdb.Get(ctx, jobKey(id.String())).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	var job Job
	if err := json.Unmarshal(val, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (q *RedisQueue) List(ctx context.Context, limit int) ([]Job, error) {
	if limit <= 0 || limit > recentLimit {
		limit = recentLimit
	}
	ids, err := q.rdb.LRange(ctx, recentKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	jobs := make([]Job, 0, len(ids))
	for _, id := range ids {
		val, err := q.rdb.Get(ctx, jobKey(id)).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		} else if err != nil {
			return nil, err
		}
		var j Job
		if err := json.Unmarshal(val, &j); err == nil {
			jobs = append(jobs, j)
		}
	}
	return jobs, nil
}

// Pop waits for a job in the queue. It blocks until one arrives or ctx ends.
func (q *RedisQueue) Pop(ctx context.Context) (uuid.UUID, error) {
	for {
		// Short BRPOP timeouts so cancellation is noticed between polls
		result, err := q.rdb.BRPop(ctx, popTimeout, queueKey).Result()
		if errors.Is(err, redis.Nil) {
			if ctx.Err() != nil {
				return uuid.Nil, ctx.Err()
			}
			continue
		}
		if err != nil {
			return uuid.Nil, err
		}
		return uuid.Parse(result[1])
	}
}
