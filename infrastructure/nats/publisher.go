package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"tasktrack/domain/ports"
	"tasktrack/pkg/logger"
)

// Publisher publishes fired reminders to JetStream
type Publisher struct {
	js jetstream.JetStream
}

var _ ports.ReminderPublisherPort = (*Publisher)(nil)

func NewPublisher(client *Client) *Publisher {
	return &Publisher{js: client.js}
}

// PublishReminder message id makes JetStream drop duplicates of the same (task, user, fire time)
func (p *Publisher) PublishReminder(ctx context.Context, event *ports.ReminderEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder: %w", err)
	}

	msgID := fmt.Sprintf("%s:%s:%d", event.TaskID, event.UserID, event.FireAt.Unix())
	ack, err := p.js.Publish(ctx, SubjectReminderDue, data, jetstream.WithMsgID(msgID))
	if err != nil {
		logger.ErrorContext(ctx, "Failed to publish reminder",
			"task_id", event.TaskID,
			"user_id", event.UserID,
			"error", err,
		)
		return fmt.Errorf("failed to publish reminder: %w", err)
	}

	logger.InfoContext(ctx, "Reminder published to JetStream",
		"task_id", event.TaskID,
		"user_id", event.UserID,
		"stream", ack.Stream,
		"sequence", ack.Sequence,
		"duplicate", ack.Duplicate,
	)
	return nil
}
