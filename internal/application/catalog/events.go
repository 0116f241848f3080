package catalog

import (
	"context"

	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// eventSource is an aggregate that records domain events
type eventSource interface {
	PullEvents() []shared.DomainEvent
}

// dispatch publishes the events an aggregate recorded. It runs after the
// write has committed, so a publish failure is logged and never undoes it.
func dispatch(ctx context.Context, publisher shared.EventPublisher, source eventSource) {
	events := source.PullEvents()
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish domain events",
			zap.Int("count", len(events)),
			zap.Error(err),
		)
	}
}
