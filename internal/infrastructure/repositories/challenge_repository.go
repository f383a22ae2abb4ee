package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kenc01/MediChain-PH/domain"
)

// ChallengeRepositoryImpl implements domain.ChallengeRepository using Redis.
// Each challenge lives under a key scoped to the full (user, action, code
// digest) triple, so codes for one action can never verify another and any
// number of outstanding challenges coexist until their TTL reaps them.
type ChallengeRepositoryImpl struct {
	client *redis.Client
	prefix string
}

// NewChallengeRepository creates a new step-up challenge repository.
func NewChallengeRepository(client *redis.Client) domain.ChallengeRepository {
	return &ChallengeRepositoryImpl{client: client, prefix: "challenge:"}
}

func (r *ChallengeRepositoryImpl) key(userID, action, codeHash string) string {
	return fmt.Sprintf("%s%s:%s:%s", r.prefix, userID, action, codeHash)
}

// Store implements domain.ChallengeRepository.
func (r *ChallengeRepositoryImpl) Store(ctx context.Context, userID, action, codeHash string, ttl time.Duration) error {
	return r.client.Set(ctx, r.key(userID, action, codeHash), time.Now().Unix(), ttl).Err()
}

// Consume implements domain.ChallengeRepository. GETDEL is the atomic
// test-and-delete: two concurrent verifications of the same code see
// exactly one hit. Not-found, expired and already-consumed are one and the
// same outcome.
func (r *ChallengeRepositoryImpl) Consume(ctx context.Context, userID, action, codeHash string) (bool, error) {
	_, err := r.client.GetDel(ctx, r.key(userID, action, codeHash)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
