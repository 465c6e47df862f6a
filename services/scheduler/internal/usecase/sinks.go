package usecase

import (
	"context"

	"orbit-scheduler/pkg/activity"
	"orbit-scheduler/pkg/queue"
)

// queueNotificationSink forwards notifications onto the post event queue,
// where the notification service picks them up for delivery.
type queueNotificationSink struct {
	queueClient *queue.Client
}

func NewQueueNotificationSink(queueClient *queue.Client) NotificationSink {
	return &queueNotificationSink{queueClient: queueClient}
}

func (s *queueNotificationSink) Emit(ctx context.Context, ownerID, message, severity string) error {
	return s.queueClient.PublishPostEvent(queue.PostEvent{
		Type:     "post_published",
		OwnerID:  ownerID,
		Message:  message,
		Severity: severity,
	})
}

// redisActivityLog adapts the shared capped activity feed to the
// reconciler's ActivityLog interface.
type redisActivityLog struct {
	log *activity.Log
}

func NewRedisActivityLog(log *activity.Log) ActivityLog {
	return &redisActivityLog{log: log}
}

func (l *redisActivityLog) Append(ctx context.Context, entryType, description string) error {
	return l.log.Append(ctx, entryType, description)
}
