package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lawbot360/web/internal/core/domain"
	"github.com/lawbot360/web/internal/core/ports"
	"github.com/lawbot360/web/internal/core/session"
)

const sessionPrefix = "lawbot:session:"

// SessionStore keeps each session as a Redis hash with two fields,
// access_token and user. Key format: lawbot:session:<id>
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.SessionStore = (*SessionStore)(nil)

// NewSessionStore wraps client. Sessions expire ttl after their last write;
// a non-positive ttl disables expiry.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Load(ctx context.Context, id string) (domain.Session, error) {
	entries, err := s.client.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return domain.Session{}, fmt.Errorf("session load: %w", err)
	}
	return session.Decode(entries), nil
}

// Save replaces both fields atomically.
func (s *SessionStore) Save(ctx context.Context, id string, sess domain.Session) error {
	entries, err := session.Encode(sess)
	if err != nil {
		return err
	}

	key := s.key(id)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(entries) == 0 {
			return nil
		}
		pipe.HSet(ctx, key, entries)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStore) key(id string) string {
	return sessionPrefix + id
}
