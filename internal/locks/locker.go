// Package locks serializes invoice-mutating operations per customer. The
// store enforces no cross-document invariants, so two concurrent generate
// calls for the same customer could otherwise race; a short-lived redis lock
// keyed by customer id closes that window when redis is configured.
package locks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/dairydesk/dairydesk/internal/config"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const lockReleaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

const customerLockTTL = 30 * time.Second

var ErrNotAcquired = errors.New("lock_not_acquired")

type Locker struct {
	client *redis.Client
	script *redis.Script
}

// Module provides the optional redis client and the customer locker. Both
// are nil when REDIS_ADDR is unset; callers must treat a nil Locker as
// "locking disabled".
var Module = fx.Module("locks",
	fx.Provide(NewClient),
	fx.Provide(NewLocker),
)

func NewClient(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func NewLocker(client *redis.Client) *Locker {
	if client == nil {
		return nil
	}
	return &Locker{
		client: client,
		script: redis.NewScript(lockReleaseScript),
	}
}

// WithCustomer runs fn while holding the customer's lock. A nil Locker runs
// fn directly. ErrNotAcquired means another operation holds the lock.
func (l *Locker) WithCustomer(ctx context.Context, customerID snowflake.ID, fn func() error) error {
	if l == nil || l.client == nil {
		return fn()
	}

	key := fmt.Sprintf("dairydesk:customer-lock:%s", customerID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, customerLockTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAcquired
	}
	defer func() {
		_ = l.script.Run(ctx, l.client, []string{key}, token).Err()
	}()

	return fn()
}
