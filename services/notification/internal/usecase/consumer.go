package usecase

import (
	"encoding/json"

	"orbit-scheduler/pkg/logger"
	"orbit-scheduler/pkg/queue"
)

// Consumer drains post lifecycle events off the queue and fans them into
// notifications. Delivery failures are logged and dropped; event handling is
// fire-and-forget and must never block the publishing side.
type Consumer struct {
	queueClient   *queue.Client
	notifications NotificationUseCase
	logger        *logger.Logger
	stopChan      chan struct{}
}

func NewConsumer(queueClient *queue.Client, notifications NotificationUseCase, logger *logger.Logger) *Consumer {
	return &Consumer{
		queueClient:   queueClient,
		notifications: notifications,
		logger:        logger,
		stopChan:      make(chan struct{}),
	}
}

func (c *Consumer) Start() error {
	deliveries, err := c.queueClient.ConsumePostEvents()
	if err != nil {
		return err
	}

	c.logger.Info("Notification consumer started")

	for {
		select {
		case <-c.stopChan:
			c.logger.Info("Notification consumer stopped")
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				c.logger.Warn("Notification consumer channel closed")
				return nil
			}

			var event queue.PostEvent
			if err := json.Unmarshal(delivery.Body, &event); err != nil {
				c.logger.Error("Failed to decode post event: %v", err)
				continue
			}

			if _, err := c.notifications.StoreEvent(event); err != nil {
				c.logger.Error("Failed to store notification for event %s: %v", event.Type, err)
			}
		}
	}
}

func (c *Consumer) Stop() {
	close(c.stopChan)
}
