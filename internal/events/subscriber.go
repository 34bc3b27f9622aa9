package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
)

// LogEvents consumes topic and writes every event to the log until ctx is done.
// Sync failures are logged at warn level.
func LogEvents(ctx context.Context, subscriber message.Subscriber, topic string, logger *slog.Logger) error {
	messages, err := subscriber.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	go func() {
		for msg := range messages {
			eventType := msg.Metadata.Get("event_type")
			level := slog.LevelInfo
			if eventType == MemberSyncFailed {
				level = slog.LevelWarn
			}
			logger.Log(ctx, level, "Event received", "event_id", msg.UUID, "event_type", eventType, "payload", string(msg.Payload))
			msg.Ack()
		}
	}()

	return nil
}
