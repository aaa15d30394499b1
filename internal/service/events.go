package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

// Ключи маршрутизации событий
const (
	EventReservationRegistered = "reservation.registered"
	EventReservationCancelled  = "reservation.cancelled"
)

// Event событие о зафиксированном изменении броней
type Event struct {
	Type       string          `json:"type"`
	CourtID    int64           `json:"court_id,omitempty"`
	ClientID   int64           `json:"client_id,omitempty"`
	IDs        []int64         `json:"ids,omitempty"`
	GroupID    *int64          `json:"group_id,omitempty"`
	Starts     []time.Time     `json:"starts,omitempty"`
	Cost       decimal.Decimal `json:"cost"`
	Deleted    int64           `json:"deleted,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// EventPublisher получает события только после фиксации транзакции
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher отбрасывает события, когда брокер не настроен
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// AMQPPublisher публикует события в topic exchange RabbitMQ
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ch.PublishWithContext(ctx, p.exchange, event.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
}

func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
