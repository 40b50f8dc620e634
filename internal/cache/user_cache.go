package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mybudget/internal/model"
	"mybudget/internal/token"
)

// UserCache is a read-through cache in front of the user store, used by the
// authentication gate to avoid one DB lookup per authenticated request.
// Accounts are immutable once created, so entries only need a TTL bound.
type UserCache struct {
	rdb   *redis.Client
	store token.UserFinder
	ttl   time.Duration
}

func NewUserCache(rdb *redis.Client, store token.UserFinder, ttl time.Duration) *UserCache {
	return &UserCache{rdb: rdb, store: store, ttl: ttl}
}

// FindByID returns the cached user, falling back to the store on a miss.
// When redis is unavailable the lookup degrades to a plain store read.
// The password hash is excluded from serialization and is therefore never
// cached; credential checks must read the store directly.
func (c *UserCache) FindByID(ctx context.Context, id int64) (*model.User, error) {
	key := fmt.Sprintf("user:%d", id)

	if data, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var u model.User
		if err := json.Unmarshal(data, &u); err == nil {
			return &u, nil
		}
	}

	u, err := c.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(u); err == nil {
		_ = c.rdb.Set(ctx, key, data, c.ttl).Err()
	}

	return u, nil
}
