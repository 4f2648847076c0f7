package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"filedrop/internal/model"
)

// userTTL bounds how long an admin lookup may serve a stale user row.
const userTTL = 5 * time.Minute

// Client caches user rows in Redis and fails safe: connectivity and decode
// errors read as cache misses so lookups fall through to MySQL.
type Client struct {
	client *redis.Client
}

// New creates a new Redis-backed user cache.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

func userKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}

// GetUser returns the cached user row, or nil on a miss.
func (c *Client) GetUser(ctx context.Context, id uuid.UUID) *model.User {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := c.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors both count as a miss
		return nil
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil
	}
	return &user
}

// SetUser stores a user row for userTTL, ignoring redis errors. The password
// hash never serializes, so cached rows carry no credentials.
func (c *Client) SetUser(ctx context.Context, user *model.User) {
	if c == nil || c.client == nil || user == nil {
		return
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return
	}
	c.client.Set(ctx, userKey(user.ID), payload, userTTL)
}

// Invalidate drops the cached row for a user, ignoring redis errors. Every
// write path calls this so a cached row never outlives an update.
func (c *Client) Invalidate(ctx context.Context, id uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, userKey(id))
}
