package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"orbit-scheduler/pkg/config"
	"orbit-scheduler/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	PostEventQueueName = "post_events_queue"
	PostEventExchange  = "post_events"
	PostEventRoutingKey = "post.lifecycle"
)

// PostEvent is the message published whenever a post crosses a lifecycle
// boundary (created, approved, blocked, published). The notification service
// consumes these and turns them into user-facing notifications.
type PostEvent struct {
	Type     string `json:"type"`
	PostID   string `json:"post_id"`
	OwnerID  string `json:"owner_id"`
	Provider string `json:"provider"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		PostEventExchange, // name
		"direct",          // type
		true,              // durable
		false,             // auto-deleted
		false,             // internal
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		PostEventQueueName, // name
		true,               // durable
		false,              // delete when unused
		false,              // exclusive
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		PostEventQueueName,  // queue name
		PostEventRoutingKey, // routing key
		PostEventExchange,   // exchange
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishPostEvent publishes a lifecycle event. Delivery is fire-and-forget
// from the caller's perspective: the publisher reports the error but callers
// must not treat a failed publish as a failed state transition.
func (c *Client) PublishPostEvent(event PostEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = c.channel.Publish(
		PostEventExchange,   // exchange
		PostEventRoutingKey, // routing key
		false,               // mandatory
		false,               // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish %s event for post %s: %v", event.Type, event.PostID, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// ConsumePostEvents returns a channel of deliveries from the post event
// queue. Messages are auto-acked; a dropped notification is acceptable.
func (c *Client) ConsumePostEvents() (<-chan amqp.Delivery, error) {
	deliveries, err := c.channel.Consume(
		PostEventQueueName, // queue
		"",                 // consumer
		true,               // auto-ack
		false,              // exclusive
		false,              // no-local
		false,              // no-wait
		nil,                // args
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}
	return deliveries, nil
}
