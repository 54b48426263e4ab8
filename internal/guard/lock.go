// Package guard serializes concurrent submissions on the same transaction
// reference. The pipeline must never race two processing attempts for one
// reference, and no lock is held across the network call on other references.
package guard

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Locker interface {
	// Acquire takes the submission lock for reference; false means another
	// submission holds it.
	Acquire(ctx context.Context, reference string) (bool, error)
	Release(ctx context.Context, reference string)
}

// RedisLocker takes a SET NX lock with a TTL, so a crashed submitter cannot
// hold a reference hostage forever.
type RedisLocker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{rdb: rdb, ttl: ttl}
}

func (l *RedisLocker) Acquire(ctx context.Context, reference string) (bool, error) {
	return l.rdb.SetNX(ctx, lockKey(reference), "1", l.ttl).Result()
}

func (l *RedisLocker) Release(ctx context.Context, reference string) {
	l.rdb.Del(ctx, lockKey(reference))
}

func lockKey(reference string) string {
	return "zcredit:submit:" + reference
}

// MemoryLocker is a single-process locker for tests and mock deployments.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]bool)}
}

func (l *MemoryLocker) Acquire(_ context.Context, reference string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[reference] {
		return false, nil
	}
	l.held[reference] = true
	return true, nil
}

func (l *MemoryLocker) Release(_ context.Context, reference string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, reference)
}
