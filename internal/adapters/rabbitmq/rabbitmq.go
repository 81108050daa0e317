package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ecomstack/product-service/internal/adapters/config"
	"github.com/ecomstack/product-service/internal/core/domain"
	"github.com/ecomstack/product-service/internal/core/logger"
)

// RabbitMQAdapter publishes lifecycle events to a single exchange. Messages
// are routed by event name and keyed by the entity id via MessageId, so
// consumers can correlate every lifecycle message of one product.
type RabbitMQAdapter struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	config  config.RabbitMQConfig
}

func NewRabbitMQAdapter(cfg config.RabbitMQConfig) (*RabbitMQAdapter, error) {
	adapter := &RabbitMQAdapter{config: cfg}

	if err := adapter.connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	return adapter, nil
}

func (r *RabbitMQAdapter) connect() error {
	conn, err := amqp.Dial(r.config.URL)
	if err != nil {
		return fmt.Errorf("failed to dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	ec := r.config.Exchange
	if err := ch.ExchangeDeclare(ec.Name, ec.Type, ec.Durable, ec.AutoDelete, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("failed to declare exchange %s: %w", ec.Name, err)
	}

	r.conn = conn
	r.channel = ch
	return nil
}

func (r *RabbitMQAdapter) reconnect() error {
	if r.channel != nil {
		r.channel.Close()
		r.channel = nil
	}
	if r.conn != nil {
		r.conn.Close()
		r.conn = nil
	}
	return r.connect()
}

// Publish performs a single publish attempt. A fresh connection is
// established if the previous one broke, but a failed send is not repeated;
// the caller decides what a lost message means.
func (r *RabbitMQAdapter) Publish(ctx context.Context, event domain.Event) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		MessageId:    event.GetKey(),
		Type:         event.GetName(),
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}

	exchange := r.config.Exchange.Name
	routingKey := event.GetName()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.channel == nil {
		if err := r.reconnect(); err != nil {
			return fmt.Errorf("reconnect failed: %w", err)
		}
	}

	if err := r.channel.PublishWithContext(ctx, exchange, routingKey, false, false, msg); err != nil {
		r.channel = nil
		return fmt.Errorf("failed to publish to %s: %w", exchange, err)
	}

	logger.Debug(ctx, "event handed to broker", map[string]any{
		"exchange":    exchange,
		"routing_key": routingKey,
		"message_id":  msg.MessageId,
	})
	return nil
}

func (r *RabbitMQAdapter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing channel: %w", err))
		}
		r.channel = nil
	}
	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing connection: %w", err))
		}
		r.conn = nil
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ: %v", errs)
	}
	return nil
}

func (r *RabbitMQAdapter) HealthCheck() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil || r.conn.IsClosed() {
		return fmt.Errorf("connection is closed")
	}
	if r.channel == nil {
		return fmt.Errorf("channel is nil")
	}
	return nil
}
