package mailqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/HomeCare-BookingService/internal/domain"
)

// Config параметры публикации
type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	Queue      string
	AdminEmail string
}

// Publisher публикует письма в очередь RabbitMQ
type Publisher struct {
	conn       *amqp.Connection
	channel    Channel
	exchange   string
	routingKey string
	adminEmail string
	log        Logger

	mu sync.Mutex
}

// NewPublisher подключается к брокеру и объявляет очередь писем
func NewPublisher(cfg Config, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	routingKey, err := declareTopology(channel, cfg)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	log.Info("MailQueue: connected, exchange=%q, routing_key=%q", cfg.Exchange, routingKey)

	p := NewPublisherWithChannel(channel, cfg, log)
	p.conn = conn
	p.routingKey = routingKey
	return p, nil
}

// NewPublisherWithChannel создает публикатор поверх уже открытого канала
func NewPublisherWithChannel(channel Channel, cfg Config, log Logger) *Publisher {
	routingKey := cfg.RoutingKey
	if cfg.Exchange == "" {
		routingKey = cfg.Queue
	}
	return &Publisher{
		channel:    channel,
		exchange:   cfg.Exchange,
		routingKey: routingKey,
		adminEmail: cfg.AdminEmail,
		log:        log,
	}
}

func declareTopology(channel *amqp.Channel, cfg Config) (string, error) {
	if _, err := channel.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		return "", fmt.Errorf("%w: queue %s: %v", ErrSetup, cfg.Queue, err)
	}

	// Без exchange публикуем в default exchange, ключ = имя очереди
	if cfg.Exchange == "" {
		return cfg.Queue, nil
	}

	if err := channel.ExchangeDeclare(cfg.Exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return "", fmt.Errorf("%w: exchange %s: %v", ErrSetup, cfg.Exchange, err)
	}
	if err := channel.QueueBind(cfg.Queue, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		return "", fmt.Errorf("%w: bind %s -> %s: %v", ErrSetup, cfg.Exchange, cfg.Queue, err)
	}
	return cfg.RoutingKey, nil
}

// SendBookingEmail публикует письмо по бронированию
func (p *Publisher) SendBookingEmail(ctx context.Context, booking *domain.Booking, kind domain.EmailKind, extra map[string]string) error {
	msg := NewEmailMessage(booking, kind, extra, p.adminEmail, time.Now().UTC())

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	// amqp.Channel нельзя использовать из нескольких горутин одновременно
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID.String(),
		Timestamp:    msg.CreatedAt,
		Type:         string(kind),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: booking %s, kind %s: %v", ErrPublish, booking.BookingCode, kind, err)
	}

	p.log.Info("MailQueue: published kind=%s, booking=%s, message_id=%s", kind, booking.BookingCode, msg.ID)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if err := p.channel.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
