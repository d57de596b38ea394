package jobs

import (
	"context"

	"campus-housing-backend/internal/events"
	"campus-housing-backend/internal/logger"
	"campus-housing-backend/internal/utils"
)

// DeactivateExpiredListings hides listings whose availability window ended
// before today so they stop showing up in searches.
func (jr *JobRunner) DeactivateExpiredListings() {
	jr.runWithRecovery("DeactivateExpiredListings", func() {
		ctx := context.Background()
		now := jr.now().UTC()

		ids, err := jr.listings.DeactivateExpired(ctx, utils.CalendarDate(now))
		if err != nil {
			logger.Error("Failed to deactivate expired listings", "error", err)
			return
		}
		logger.Info("Deactivated expired listings", "count", len(ids))
		if len(ids) == 0 {
			return
		}

		if jr.cache != nil {
			if err := jr.cache.Invalidate(ctx); err != nil {
				logger.Warn("Failed to invalidate listing search cache", "error", err)
			}
		}
		if jr.events != nil {
			event := events.ListingsDeactivatedEvent{ListingIDs: ids, OccurredAt: now}
			if err := jr.events.Publish(ctx, events.ListingsDeactivated, event); err != nil {
				logger.Warn("Failed to publish listing deactivation", "error", err)
			}
		}
	})
}
