package locker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"auction-engine/internal/biddingerrors"
	"auction-engine/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// luaReleaseIfOwner deletes the lease only while it still carries our token,
// so an expired holder can never drop a lease that now belongs to someone else.
const luaReleaseIfOwner = `
local key = KEYS[1]
local token = ARGV[1]
if redis.call('GET', key) == token then
  return redis.call('DEL', key)
end
return 0
`

const defaultRetryInterval = 10 * time.Millisecond

// Redis is a lease-based Locker shared by every process talking to the same redis
type Redis struct {
	client  redis.Cmdable
	prefix  string
	ttl     time.Duration
	timeout time.Duration
	retry   time.Duration
}

// RedisOptions configures a Redis locker
type RedisOptions struct {
	Prefix        string
	LeaseTTL      time.Duration
	Timeout       time.Duration
	RetryInterval time.Duration
}

// NewRedis creates a Redis locker on top of an existing client
func NewRedis(client redis.Cmdable, opts RedisOptions) *Redis {
	r := &Redis{
		client:  client,
		prefix:  opts.Prefix,
		ttl:     opts.LeaseTTL,
		timeout: opts.Timeout,
		retry:   opts.RetryInterval,
	}
	if r.prefix == "" {
		r.prefix = "auction:lock:"
	}
	if r.ttl <= 0 {
		r.ttl = 5 * time.Second
	}
	if r.retry <= 0 {
		r.retry = defaultRetryInterval
	}
	return r
}

// Acquire implements Locker
func (r *Redis) Acquire(ctx context.Context, key string) (func(), error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	lockKey := r.prefix + key
	token := uuid.NewString()
	ticker := time.NewTicker(r.retry)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, lockKey, token, r.ttl).Result()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return nil, fmt.Errorf("locker: acquire %s: %w", key, biddingerrors.ErrLockTimeout)
			}
			return nil, fmt.Errorf("locker: acquire %s: %w", key, err)
		}
		if ok {
			return r.releaser(lockKey, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("locker: acquire %s: %w", key, biddingerrors.ErrLockTimeout)
		case <-ticker.C:
		}
	}
}

func (r *Redis) releaser(lockKey, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			// the caller's ctx may already be done; the lease must still go
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if _, err := r.client.Eval(ctx, luaReleaseIfOwner, []string{lockKey}, token).Int(); err != nil {
				utils.Warn("Failed to release listing lease", map[string]any{
					"key":   lockKey,
					"error": err.Error(),
				})
			}
		})
	}
}
