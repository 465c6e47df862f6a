package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"orbit-scheduler/pkg/activity"
	"orbit-scheduler/pkg/logger"
	"orbit-scheduler/pkg/queue"
	"orbit-scheduler/services/notification/internal/entity"

	"github.com/redis/go-redis/v9"
)

const (
	notificationRetention = 30 * 24 * time.Hour
	notificationCap       = 100
)

type NotificationUseCase interface {
	StoreEvent(event queue.PostEvent) (*entity.Notification, error)
	GetNotifications(ownerID string, limit, offset int) ([]entity.Notification, int64, error)
	GetRecentActivity(ctx context.Context, limit int) ([]activity.Entry, error)
}

type notificationUseCase struct {
	redisClient *redis.Client
	activityLog *activity.Log
	logger      *logger.Logger
}

func NewNotificationUseCase(redisClient *redis.Client, activityLog *activity.Log, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{
		redisClient: redisClient,
		activityLog: activityLog,
		logger:      logger,
	}
}

// StoreEvent turns a post lifecycle event into a notification for the post
// owner. The notification lands in the owner's capped Redis list and is
// published to their pub/sub channel for connected clients.
func (uc *notificationUseCase) StoreEvent(event queue.PostEvent) (*entity.Notification, error) {
	if event.OwnerID == "" {
		return nil, fmt.Errorf("event has no owner")
	}

	severity := event.Severity
	if severity == "" {
		severity = "info"
	}

	notification := &entity.Notification{
		OwnerID:   event.OwnerID,
		PostID:    event.PostID,
		Provider:  event.Provider,
		Message:   event.Message,
		Severity:  severity,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	notificationJSON, err := json.Marshal(notification)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification: %w", err)
	}

	ctx := context.Background()
	key := fmt.Sprintf("notifications:%s", notification.OwnerID)
	if err := uc.redisClient.LPush(ctx, key, notificationJSON).Err(); err != nil {
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}
	uc.redisClient.LTrim(ctx, key, 0, notificationCap-1)
	uc.redisClient.Expire(ctx, key, notificationRetention)

	if err := uc.redisClient.Publish(ctx, key, notificationJSON).Err(); err != nil {
		uc.logger.Warn("Failed to publish notification for user %s: %v", notification.OwnerID, err)
	}

	uc.logger.Info("Notification stored for user %s: %s", notification.OwnerID, notification.Message)
	return notification, nil
}

func (uc *notificationUseCase) GetNotifications(ownerID string, limit, offset int) ([]entity.Notification, int64, error) {
	ctx := context.Background()
	key := fmt.Sprintf("notifications:%s", ownerID)

	raw, err := uc.redisClient.LRange(ctx, key, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get notifications: %w", err)
	}

	var notifications []entity.Notification
	for _, item := range raw {
		var notification entity.Notification
		if err := json.Unmarshal([]byte(item), &notification); err == nil {
			notifications = append(notifications, notification)
		}
	}

	totalCount, _ := uc.redisClient.LLen(ctx, key).Result()

	return notifications, totalCount, nil
}

func (uc *notificationUseCase) GetRecentActivity(ctx context.Context, limit int) ([]activity.Entry, error) {
	return uc.activityLog.Recent(ctx, limit)
}
