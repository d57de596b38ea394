package service

import (
	"context"

	"campus-housing-backend/internal/logger"
)

// publish sends an event after the change it describes has been committed.
// The change stands even if the broker is unavailable.
func publish(ctx context.Context, events EventPublisher, routingKey string, payload any) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, routingKey, payload); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", "routing_key", routingKey, "error", err)
	}
}

func invalidateSearches(ctx context.Context, cache ListingCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		logger.WarnContext(ctx, "Failed to invalidate listing search cache", "error", err)
	}
}
