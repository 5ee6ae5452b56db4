package obstaclestore

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-slam/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// default prefix for redis keys
	defaultPrefix = "slam"

	logKeyFmt  = "%s:run:%s:obstacles"
	lockKeyFmt = "%s:run:%s:writer"

	lockExpiry = 30 * time.Second
)

var (
	ErrMalformedEntry = errors.New("malformed obstacle entry")
)

// RedisObstacleStore keeps each run's obstacle log in a Redis list with TTL support.
type RedisObstacleStore struct {
	client *redis.Client
	locker *redsync.Redsync
	prefix string
	ttl    time.Duration
}

// NewRedisObstacleStore initializes a RedisObstacleStore with the provided Redis client and TTL.
func NewRedisObstacleStore(client *redis.Client, ttlSeconds int) (i.ObstacleStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	store := &RedisObstacleStore{
		client: client,
		prefix: defaultPrefix,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	store.locker = redsync.New(pool)
	return store, nil
}

func (s *RedisObstacleStore) logKey(runID uuid.UUID) string {
	return fmt.Sprintf(logKeyFmt, s.prefix, runID)
}

// Append pushes points to the tail of the run's list and refreshes its expiry.
func (s *RedisObstacleStore) Append(ctx context.Context, runID uuid.UUID, pts []image.Point) error {
	if len(pts) == 0 {
		return nil
	}

	members := make([]any, len(pts))
	for idx, p := range pts {
		members[idx] = encodePoint(p)
	}

	key := s.logKey(runID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, members...)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Range returns the run's whole list in insertion order.
func (s *RedisObstacleStore) Range(ctx context.Context, runID uuid.UUID) ([]image.Point, error) {
	entries, err := s.client.LRange(ctx, s.logKey(runID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	pts := make([]image.Point, 0, len(entries))
	for _, e := range entries {
		p, err := decodePoint(e)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// Claim takes a distributed lock so only one process writes a run's log.
// The lock is extended in the background until released or ctx ends.
func (s *RedisObstacleStore) Claim(ctx context.Context, runID uuid.UUID) (func(), error) {
	mutex := s.locker.NewMutex(fmt.Sprintf(lockKeyFmt, s.prefix, runID), redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(lockExpiry / 2)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := mutex.ExtendContext(ctx); err != nil {
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			_, _ = mutex.Unlock()
		})
	}, nil
}

func encodePoint(p image.Point) string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

func decodePoint(s string) (image.Point, error) {
	var p image.Point
	var rest string
	n, _ := fmt.Sscanf(s, "%d,%d%s", &p.X, &p.Y, &rest)
	if n != 2 {
		return image.Point{}, fmt.Errorf("%w: %q", ErrMalformedEntry, s)
	}
	return p, nil
}
