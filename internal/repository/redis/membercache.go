package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora-api/internal/domain"
)

const (
	memberCachePrefix = "members:"
	memberCacheTTL    = 5 * time.Minute
)

// MemberCache caches resolved member lists per workspace. Entries are
// invalidated on every membership mutation, so the TTL only bounds
// staleness across process boundaries.
type MemberCache struct {
	client *Client
}

// NewMemberCache creates a new member cache
func NewMemberCache(client *Client) *MemberCache {
	return &MemberCache{client: client}
}

// Get retrieves the cached member list for a workspace
func (c *MemberCache) Get(ctx context.Context, workspaceID uuid.UUID) ([]domain.Membership, error) {
	key := fmt.Sprintf("%s%s", memberCachePrefix, workspaceID.String())

	data, err := c.client.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, nil // Cache miss
	}

	var members []domain.Membership
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("failed to unmarshal members: %w", err)
	}

	return members, nil
}

// Set caches the member list for a workspace
func (c *MemberCache) Set(ctx context.Context, workspaceID uuid.UUID, members []domain.Membership) error {
	key := fmt.Sprintf("%s%s", memberCachePrefix, workspaceID.String())

	data, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("failed to marshal members: %w", err)
	}

	return c.client.rdb.Set(ctx, key, data, memberCacheTTL).Err()
}

// Invalidate removes the cached member list for a workspace
func (c *MemberCache) Invalidate(ctx context.Context, workspaceID uuid.UUID) error {
	key := fmt.Sprintf("%s%s", memberCachePrefix, workspaceID.String())
	return c.client.rdb.Del(ctx, key).Err()
}
