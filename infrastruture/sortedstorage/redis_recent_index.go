package sortedstorage

import (
	"context"
	"fmt"
	"time"

	"github.com/beka-birhanu/backtracking-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockExpiry = 2 * time.Second

var _ i.MazeIndex = &RedisRecentIndex{}

// RedisRecentIndex keeps the newest maze IDs in a Redis sorted set scored by creation time.
type RedisRecentIndex struct {
	client *redis.Client
	locker *redsync.Redsync
	key    string
	limit  int64
}

// NewRedisRecentIndex initializes an index under key holding at most limit members.
func NewRedisRecentIndex(client *redis.Client, key string, limit int64) (*RedisRecentIndex, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("recent index limit must be positive, got %d", limit)
	}
	index := &RedisRecentIndex{
		client: client,
		key:    key,
		limit:  limit,
	}
	pool := goredis.NewPool(client)
	index.locker = redsync.New(pool)
	return index, nil
}

// Push adds a maze ID and drops the oldest members beyond the limit.
// Trimming runs under a distributed lock so concurrent instances never trim twice.
func (x *RedisRecentIndex) Push(ctx context.Context, id uuid.UUID, score float64) error {
	if err := x.client.ZAdd(ctx, x.key, redis.Z{Score: score, Member: id.String()}).Err(); err != nil {
		return err
	}

	mutex := x.locker.NewMutex(x.key+":trim_lock", redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	size, err := x.client.ZCard(ctx, x.key).Result()
	if err != nil {
		return err
	}
	if size <= x.limit {
		return nil
	}
	// Ranks are ascending by score, so the oldest sit at the front.
	return x.client.ZRemRangeByRank(ctx, x.key, 0, -x.limit-1).Err()
}

// Latest returns up to n IDs, newest first. Members that are not valid UUIDs are skipped.
func (x *RedisRecentIndex) Latest(ctx context.Context, n int64) ([]uuid.UUID, error) {
	members, err := x.client.ZRevRange(ctx, x.key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

