package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/ariahq/aria/pkg/apperr"
	"github.com/ariahq/aria/pkg/config"
)

// DefaultSessionTTL bounds how long an issued session stays valid without
// refresh
const DefaultSessionTTL = 24 * time.Hour

// SessionStore maps hashed bearer tokens to principals in Redis
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore connects to Redis and verifies the connection
func NewSessionStore(cfg config.RedisConfig) (*SessionStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB >= 0 {
		opts.DB = cfg.DB
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &SessionStore{client: client, ttl: DefaultSessionTTL}, nil
}

// NewSessionStoreWithClient wraps an existing client; used by tests
func NewSessionStoreWithClient(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, ttl: DefaultSessionTTL}
}

// Client exposes the underlying connection for health checks
func (s *SessionStore) Client() *redis.Client {
	return s.client
}

func sessionKey(tokenHash string) string {
	return "session:" + tokenHash
}

// Create stores a session for the hashed token
func (s *SessionStore) Create(ctx context.Context, tokenHash string, p *Principal) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode principal: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(tokenHash), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Resolve looks up the principal for a hashed token. Unknown or expired
// tokens yield an authentication error.
func (s *SessionStore) Resolve(ctx context.Context, tokenHash string) (*Principal, error) {
	data, err := s.client.Get(ctx, sessionKey(tokenHash)).Result()
	if err == redis.Nil {
		return nil, apperr.Unauthenticated("unknown or expired token")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var p Principal
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &p, nil
}

// Revoke removes a session
func (s *SessionStore) Revoke(ctx context.Context, tokenHash string) error {
	if err := s.client.Del(ctx, sessionKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
