package cache

import (
	"context"
	"fmt"
	"time"
)

const userKeyPrefix = "user:%d"

// UserTTL bounds the staleness window of the denormalized user replica.
const UserTTL = 5 * time.Minute

// UserKey returns the cache key for a user id.
func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

// InvalidateUser drops the cached copy of a user after a mutation.
func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
