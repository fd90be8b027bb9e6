package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/YelzhanWeb/daily-orders/internal/config"
)

const (
	connectionName = "daily-orders"
	heartbeat      = 10 * time.Second
)

var ErrConnectionClosed = errors.New("rabbitmq connection closed")

// Connection is the broker session shared by the publisher and the consumer.
type Connection interface {
	Channel() (Channel, error)
	Close() error
	IsClosed() bool
	Reconnect() error
}

// Channel is the subset of *amqp.Channel the day-close flow uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Qos(prefetchCount, prefetchSize int, global bool) error
	Close() error
	NotifyClose() <-chan *amqp.Error
}

type Queue struct {
	Name string
}

// URL builds the broker address from the config. Credentials are escaped.
func URL(cfg config.RabbitMQConfig) string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/",
	}
	return u.String()
}

type session struct {
	addr string

	mu       sync.RWMutex
	conn     *amqp.Connection
	shutdown bool
}

func Connect(cfg config.RabbitMQConfig) (Connection, error) {
	s := &session{addr: URL(cfg)}

	conn, err := s.dial()
	if err != nil {
		return nil, err
	}
	s.conn = conn

	return s, nil
}

func (s *session) dial() (*amqp.Connection, error) {
	conn, err := amqp.DialConfig(s.addr, amqp.Config{
		Heartbeat:  heartbeat,
		Properties: amqp.Table{"connection_name": connectionName},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return conn, nil
}

func (s *session) Channel() (Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.shutdown {
		return nil, ErrConnectionClosed
	}

	ch, err := s.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	return channel{ch}, nil
}

func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shutdown = true
	if s.conn.IsClosed() {
		return nil
	}
	return s.conn.Close()
}

func (s *session) IsClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shutdown || s.conn.IsClosed()
}

// Reconnect replaces a dropped connection. It refuses after Close.
func (s *session) Reconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shutdown {
		return ErrConnectionClosed
	}

	conn, err := s.dial()
	if err != nil {
		return err
	}
	s.conn = conn
	return nil
}

// channel adapts *amqp.Channel; only QueueDeclare and NotifyClose differ.
type channel struct {
	*amqp.Channel
}

func (c channel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (Queue, error) {
	q, err := c.Channel.QueueDeclare(name, durable, autoDelete, exclusive, noWait, args)
	if err != nil {
		return Queue{}, err
	}
	return Queue{Name: q.Name}, nil
}

func (c channel) NotifyClose() <-chan *amqp.Error {
	return c.Channel.NotifyClose(make(chan *amqp.Error, 1))
}
