package service

import (
	"context"
	"time"

	"github.com/ecomstack/product-service/internal/core/domain"
	"github.com/ecomstack/product-service/internal/core/logger"
	"github.com/ecomstack/product-service/internal/core/port"
)

const defaultSendTimeout = 5 * time.Second

// EventPublisher dispatches lifecycle events to the broker without blocking
// the caller. The outcome of the send is only logged: a catalog write is the
// source of truth and event delivery is best-effort, so publish failures are
// never surfaced or retried.
type EventPublisher struct {
	broker      port.BrokerPort
	sendTimeout time.Duration
}

func NewEventPublisher(broker port.BrokerPort, sendTimeout time.Duration) *EventPublisher {
	if sendTimeout <= 0 {
		sendTimeout = defaultSendTimeout
	}
	return &EventPublisher{broker: broker, sendTimeout: sendTimeout}
}

// Publish returns immediately; the send runs on a detached goroutine that
// outlives the request context.
func (p *EventPublisher) Publish(ctx context.Context, event *domain.ProductEvent) {
	logger.Info(ctx, "Publishing product event", map[string]any{
		"event_type": string(event.EventType),
		"product_id": string(event.ID),
	})

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.sendTimeout)

	go func() {
		defer cancel()

		if err := p.broker.Publish(sendCtx, event); err != nil {
			logger.Error(sendCtx, "Failed to publish product event", err, map[string]any{
				"event_type": string(event.EventType),
				"product_id": string(event.ID),
			})
			return
		}

		logger.Info(sendCtx, "Product event published successfully", map[string]any{
			"event_type": string(event.EventType),
			"product_id": string(event.ID),
			"event_name": event.GetName(),
		})
	}()
}
