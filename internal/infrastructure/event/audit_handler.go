package event

import (
	"context"
	"encoding/json"

	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AuditLogHandler writes every registered catalog event to the log with its
// JSON payload
type AuditLogHandler struct {
	serializer *EventSerializer
	logger     *zap.Logger
}

// NewAuditLogHandler creates an audit handler for the types known to serializer
func NewAuditLogHandler(serializer *EventSerializer, log *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		serializer: serializer,
		logger:     log.Named("audit"),
	}
}

// Handle logs one event
func (h *AuditLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	payload, err := h.serializer.Serialize(event)
	if err != nil {
		return err
	}

	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
		zap.Any("payload", json.RawMessage(payload)),
	}
	if admin := logger.GetAdmin(ctx); admin != "" {
		fields = append(fields, zap.String("admin", admin))
	}
	logger.WithTraceContext(ctx, h.logger).Info("Catalog event", fields...)
	return nil
}

// EventTypes returns the registered catalog event types
func (h *AuditLogHandler) EventTypes() []string {
	return h.serializer.RegisteredTypes()
}

var _ shared.EventHandler = (*AuditLogHandler)(nil)
