package worker

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/utility-service/internal/events"
	"github.com/spec-kit/utility-service/internal/persistence"
)

// LifecyclePublisher forwards issue lifecycle events to a log line and a
// Redis channel for external consumers. Delivery is fire-and-forget; a
// failed publish never affects the request that produced the event.
type LifecyclePublisher struct {
	redis   *persistence.Redis
	channel string
	logger  *zap.Logger
}

// NewLifecyclePublisher constructs the publisher.
func NewLifecyclePublisher(redis *persistence.Redis, channel string, logger *zap.Logger) *LifecyclePublisher {
	return &LifecyclePublisher{redis: redis, channel: channel, logger: logger}
}

// Register subscribes the publisher to all issue lifecycle event types.
func (p *LifecyclePublisher) Register(dispatcher events.Dispatcher) {
	if p == nil || dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventIssueCreated,
		events.EventIssueStatusChanged,
		events.EventIssueAssigned,
	} {
		dispatcher.Subscribe(eventType, p.handle)
	}
}

func (p *LifecyclePublisher) handle(ctx context.Context, event events.Event) error {
	p.logger.Info("issue lifecycle event",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.Int64("issue_id", event.IssueID),
	)

	if p.redis == nil || p.redis.Client == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("marshal lifecycle event", zap.Error(err))
		return nil
	}
	if err := p.redis.Client.Publish(ctx, p.channel, payload).Err(); err != nil {
		p.logger.Warn("publish lifecycle event", zap.Error(err))
	}
	return nil
}
