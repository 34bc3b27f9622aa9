package cache

import (
	"context"
	"log/slog"
)

// SafeInvalidatePattern invalidates a pattern and only logs a failure
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes keys and only logs a failure
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateSessionCache drops every cached session query
func InvalidateSessionCache(ctx context.Context, cm *CacheManager) {
	SafeInvalidatePattern(ctx, cm.Session, "query:*")
}
