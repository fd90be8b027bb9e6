package interfaces

import (
	"context"
	"time"
)

// Сообщения RabbitMQ
type DayClosedMessage struct {
	ClosedAt    time.Time       `json:"closed_at"`
	OpenedAt    time.Time       `json:"opened_at"`
	TotalItems  int             `json:"total_items"`
	TotalAmount int             `json:"total_amount"`
	Lines       []DayClosedLine `json:"lines"`
}

type DayClosedLine struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"`
	Total    int    `json:"total"`
}

type DayClosePublisher interface {
	PublishDayClosed(ctx context.Context, msg DayClosedMessage) error
}

type MessageConsumer interface {
	ConsumeDayClosed(ctx context.Context, handler NotificationHandler) error
}

type NotificationHandler func(ctx context.Context, body []byte) error
