package session

import (
	"context"       // Context for Redis operations
	"crypto/subtle" // Constant-time comparison

	"github.com/google/uuid"       // Token generation
	"github.com/redis/go-redis/v9" // Redis client
)

// csrfKey builds the Redis key for a session's anti-forgery token
func csrfKey(sessionID string) string {
	return "csrf:" + sessionID
}

// IssueToken returns the anti-forgery token bound to the session,
// generating one if none exists yet. Tokens share the session's idle window.
func (s *Store) IssueToken(ctx context.Context, sessionID string) (string, error) {
	key := csrfKey(sessionID)
	token, err := s.rdb.Get(ctx, key).Result() // Reuse an existing token
	if err == nil {
		return token, nil
	}
	if err != redis.Nil {
		return "", err // Redis error
	}
	token = uuid.NewString() // Fresh per-session secret
	if err := s.rdb.Set(ctx, key, token, IdleTimeout).Err(); err != nil {
		return "", err // Redis write failed
	}
	return token, nil
}

// VerifyToken reports whether the supplied token matches the one
// bound to the session
func (s *Store) VerifyToken(ctx context.Context, sessionID, supplied string) bool {
	if supplied == "" {
		return false // Nothing presented
	}
	token, err := s.rdb.Get(ctx, csrfKey(sessionID)).Result()
	if err != nil {
		return false // No token issued or Redis error
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(supplied)) == 1
}
