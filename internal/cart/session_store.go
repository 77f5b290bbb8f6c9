package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/voltmart-backend/pkg/redis"
)

// DefaultSessionTTL applies when the store is built without a TTL.
const DefaultSessionTTL = 72 * time.Hour

// SessionStore loads and persists carts by session id.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type sessionBackend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// RedisSessionStore keeps each cart as a JSON document under
// <namespace>:cart:<session>. Every save slides the TTL forward.
type RedisSessionStore struct {
	backend sessionBackend
	ttl     time.Duration
	now     func() time.Time
}

// NewRedisSessionStore builds a session store over the redis client.
func NewRedisSessionStore(backend sessionBackend, ttl time.Duration) (*RedisSessionStore, error) {
	if backend == nil {
		return nil, fmt.Errorf("redis backend required")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisSessionStore{backend: backend, ttl: ttl, now: time.Now}, nil
}

// Load returns the session's cart, or an empty cart when none is stored.
func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("session id required")
	}
	raw, err := s.backend.Get(ctx, s.backend.CartKey(sessionID))
	if errors.Is(err, redis.Nil) {
		return New(sessionID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	cart.SessionID = sessionID
	if cart.Lines == nil {
		cart.Lines = []Line{}
	}
	return &cart, nil
}

// Save writes the cart. An empty cart deletes the key instead.
func (s *RedisSessionStore) Save(ctx context.Context, cart *Cart) error {
	if cart == nil || strings.TrimSpace(cart.SessionID) == "" {
		return fmt.Errorf("cart with session id required")
	}
	if cart.IsEmpty() {
		return s.Delete(ctx, cart.SessionID)
	}
	cart.UpdatedAt = s.now().UTC()
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.backend.Set(ctx, s.backend.CartKey(cart.SessionID), payload, s.ttl); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Delete removes the session's cart.
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.backend.Del(ctx, s.backend.CartKey(sessionID)); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
