package session

import (
	"context" // Context for Redis operations
	"errors"  // Sentinel errors
	"strconv" // User id encoding
	"time"    // TTL durations

	"github.com/google/uuid"       // Opaque identifiers
	"github.com/redis/go-redis/v9" // Redis client
)

// IdleTimeout is the rolling idle expiry of a session
const IdleTimeout = 30 * time.Minute

// CookieName is the session cookie presented by the client
const CookieName = "session_id"

// ErrNotFound is returned when a session id does not resolve
var ErrNotFound = errors.New("session not found")

// Store holds server-side sessions in Redis, keyed by an opaque identifier.
// The client only ever sees the identifier; the user id stays server-side.
type Store struct {
	rdb *redis.Client // Backing Redis client
}

// NewStore creates a session store on top of a Redis client
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// sessionKey builds the Redis key for a session id
func sessionKey(id string) string {
	return "session:" + id
}

// Create issues a new session for the given user id and returns its identifier
func (s *Store) Create(ctx context.Context, userID uint) (string, error) {
	id := uuid.NewString() // Opaque, unguessable identifier
	err := s.rdb.Set(ctx, sessionKey(id), strconv.FormatUint(uint64(userID), 10), IdleTimeout).Err()
	if err != nil {
		return "", err // Redis write failed
	}
	return id, nil
}

// Resolve maps a session id back to its user id and refreshes the idle window
func (s *Store) Resolve(ctx context.Context, id string) (uint, error) {
	val, err := s.rdb.Get(ctx, sessionKey(id)).Result() // Look up the session
	if err == redis.Nil {
		return 0, ErrNotFound // Unknown or expired session
	} else if err != nil {
		return 0, err // Redis error
	}
	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrNotFound // Corrupt value, treat as missing
	}
	// Rolling window: every authenticated request extends the session
	// and its CSRF token together
	s.rdb.Expire(ctx, sessionKey(id), IdleTimeout)
	s.rdb.Expire(ctx, csrfKey(id), IdleTimeout)
	return uint(userID), nil
}

// Destroy invalidates a session and its CSRF token immediately
func (s *Store) Destroy(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKey(id), csrfKey(id)).Err()
}
