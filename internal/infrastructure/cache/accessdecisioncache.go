package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/packlane-io/packlane/internal/domain/entitlement"
	"github.com/packlane-io/packlane/internal/domain/purchase"
)

const (
	accessDecisionPrefix  = "access:decision:"
	accessDecisionUserSet = "access:decision:user:"
)

// decisionRecord is the Redis serialization of an access decision.
type decisionRecord struct {
	Granted   bool   `json:"granted"`
	Status    string `json:"status"`
	RequestID uint   `json:"request_id,omitempty"`
	Inherited bool   `json:"inherited,omitempty"`
}

// AccessDecisionCache caches resolved access decisions in Redis. Each decision
// key is tracked in a per-user set so all of a user's entries can be dropped
// when their requests change.
type AccessDecisionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAccessDecisionCache creates a new AccessDecisionCache instance
func NewAccessDecisionCache(client *redis.Client, ttl time.Duration) *AccessDecisionCache {
	return &AccessDecisionCache{client: client, ttl: ttl}
}

func decisionKey(userID uint, target purchase.UnitRef) string {
	return fmt.Sprintf("%s%d:%s:%d", accessDecisionPrefix, userID, target.Kind, target.ID)
}

func userSetKey(userID uint) string {
	return fmt.Sprintf("%s%d", accessDecisionUserSet, userID)
}

// Get retrieves a cached decision, returning false on a miss.
func (c *AccessDecisionCache) Get(ctx context.Context, userID uint, target purchase.UnitRef) (entitlement.AccessDecision, bool, error) {
	val, err := c.client.Get(ctx, decisionKey(userID, target)).Result()
	if err == redis.Nil {
		return entitlement.AccessDecision{}, false, nil
	}
	if err != nil {
		return entitlement.AccessDecision{}, false, fmt.Errorf("failed to get cached decision: %w", err)
	}

	var record decisionRecord
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return entitlement.AccessDecision{}, false, fmt.Errorf("failed to unmarshal cached decision: %w", err)
	}

	return entitlement.AccessDecision{
		Granted:   record.Granted,
		Status:    entitlement.AccessStatus(record.Status),
		RequestID: record.RequestID,
		Inherited: record.Inherited,
	}, true, nil
}

// Set stores a decision for the configured TTL and registers the key in the
// user's tracking set.
func (c *AccessDecisionCache) Set(ctx context.Context, userID uint, target purchase.UnitRef, d entitlement.AccessDecision) error {
	data, err := json.Marshal(decisionRecord{
		Granted:   d.Granted,
		Status:    d.Status.String(),
		RequestID: d.RequestID,
		Inherited: d.Inherited,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal decision: %w", err)
	}

	key := decisionKey(userID, target)
	setKey := userSetKey(userID)

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, setKey, key)
	// The tracking set outlives its members slightly so invalidation can
	// still find expired keys.
	pipe.Expire(ctx, setKey, c.ttl+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache decision: %w", err)
	}

	return nil
}

// InvalidateUser drops all cached decisions for a user.
func (c *AccessDecisionCache) InvalidateUser(ctx context.Context, userID uint) error {
	setKey := userSetKey(userID)

	keys, err := c.client.SMembers(ctx, setKey).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to list cached decision keys: %w", err)
	}

	keys = append(keys, setKey)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached decisions: %w", err)
	}

	return nil
}
