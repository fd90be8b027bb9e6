package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/YelzhanWeb/daily-orders/internal/adapter/logger"
	"github.com/YelzhanWeb/daily-orders/internal/interfaces"
)

type consumer struct {
	conn     Connection
	prefetch int
	retry    time.Duration
	logger   logger.Logger
}

func NewConsumer(conn Connection, prefetch int, logger logger.Logger) interfaces.MessageConsumer {
	return &consumer{conn: conn, prefetch: prefetch, retry: 5 * time.Second, logger: logger}
}

// ConsumeDayClosed blocks until ctx is done, reconnecting whenever the
// channel or connection drops.
func (c *consumer) ConsumeDayClosed(ctx context.Context, handler interfaces.NotificationHandler) error {
	for {
		err := c.consume(ctx, handler)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			return nil
		}

		c.logger.Error("rabbitmq_disconnected", "Day-close consumer disconnected, reconnecting", "", map[string]interface{}{
			"retry_in": c.retry.String(),
		}, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retry):
		}

		if c.conn.IsClosed() {
			if err := c.conn.Reconnect(); err != nil {
				c.logger.Error("rabbitmq_reconnect_failed", "Failed to reconnect", "", nil, err)
			}
		}
	}
}

func (c *consumer) consume(ctx context.Context, handler interfaces.NotificationHandler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	closeChan := ch.NotifyClose()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	queue, err := bindReportQueue(ch)
	if err != nil {
		return err
	}

	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.logger.Info("rabbitmq_consuming", "Waiting for closed days", "", map[string]interface{}{
		"queue": queue,
	})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-closeChan:
			if err != nil {
				return fmt.Errorf("channel closed: %w", err)
			}
			return fmt.Errorf("channel closed gracefully")

		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("messages channel closed")
			}

			// handler errors drop the report without requeue
			if err := handler(ctx, msg.Body); err != nil {
				msg.Nack(false, false)
			} else {
				msg.Ack(false)
			}
		}
	}
}
