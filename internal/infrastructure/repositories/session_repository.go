package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kenc01/MediChain-PH/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository using Redis.
// Sessions are keyed by the SHA-256 digest of the bearer token, so a dump
// of the store never yields raw credentials. A per-user set tracks live
// session keys so a security reset can revoke everything at once.
type SessionRepositoryImpl struct {
	client     *redis.Client
	prefix     string
	userPrefix string
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(client *redis.Client) domain.SessionRepository {
	return &SessionRepositoryImpl{
		client:     client,
		prefix:     "session:",
		userPrefix: "user_sessions:",
	}
}

func (r *SessionRepositoryImpl) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return r.prefix + hex.EncodeToString(sum[:])
}

// Create implements domain.SessionRepository. The key TTL mirrors the
// session expiry so Redis reaps expired sessions on its own.
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired at creation")
	}

	key := r.key(session.Token)
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, ttl)
	userKey := r.userPrefix + session.UserID
	pipe.SAdd(ctx, userKey, key)
	pipe.Expire(ctx, userKey, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// FindByToken implements domain.SessionRepository. Missing and expired
// sessions are indistinguishable to the caller.
func (r *SessionRepositoryImpl) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	key := r.key(token)
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	// Redis TTL already bounds the key lifetime, but the expiry instant is
	// authoritative: a key read at exactly its deadline is still rejected.
	if !session.ExpiresAt.After(time.Now()) {
		r.client.Del(ctx, key)
		return nil, domain.ErrSessionNotFound
	}

	return &session, nil
}

// Delete implements domain.SessionRepository.
func (r *SessionRepositoryImpl) Delete(ctx context.Context, token string) error {
	key := r.key(token)

	// Look up the owner so the per-user set stays tidy; a missing key is
	// still a successful logout.
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err == nil {
		r.client.SRem(ctx, r.userPrefix+session.UserID, key)
	}
	return r.client.Del(ctx, key).Err()
}

// DeleteAllForUser implements domain.SessionRepository.
func (r *SessionRepositoryImpl) DeleteAllForUser(ctx context.Context, userID string) error {
	userKey := r.userPrefix + userID
	keys, err := r.client.SMembers(ctx, userKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return err
	}
	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	return r.client.Del(ctx, userKey).Err()
}
