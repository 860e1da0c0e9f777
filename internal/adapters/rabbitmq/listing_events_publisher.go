package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
	"listing-admin-service/internal/core/port"
)

const publishTimeout = 10 * time.Second

// Producer - то, что адаптеру нужно от rabbitmq_producer.Publisher.
type Producer interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// ListingEventPublisher реализует ListingEventPublisherPort поверх RabbitMQ.
type ListingEventPublisher struct {
	producer   Producer
	routingKey string
	appID      string
}

func NewListingEventPublisher(producer Producer, routingKey, appID string) (*ListingEventPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &ListingEventPublisher{producer: producer, routingKey: routingKey, appID: appID}, nil
}

func (a *ListingEventPublisher) PublishListingChanged(ctx context.Context, event domain.ListingChangedEvent) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "ListingEventPublisher",
		"routing_key": a.routingKey,
		"listing_id":  event.ListingID,
		"kind":        string(event.Kind),
	})

	body, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal listing changed event", err, nil)
		return fmt.Errorf("failed to marshal listing changed event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         "listing." + string(event.Kind),
		AppId:        a.appID,
		Headers:      amqp.Table{},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
		msg.CorrelationId = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	logger.Debug("Publishing listing changed event", nil)
	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		logger.Error("Failed to publish listing changed event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish event for listing %s: %w", event.ListingID, err)
	}

	logger.Info("Listing changed event published", port.Fields{"changed_fields": event.ChangedFields})
	return nil
}

// NoopListingEventPublisher используется, когда брокер не настроен.
type NoopListingEventPublisher struct{}

func (NoopListingEventPublisher) PublishListingChanged(ctx context.Context, event domain.ListingChangedEvent) error {
	contextkeys.LoggerFromContext(ctx).Debug("Event publishing disabled, dropping listing changed event", port.Fields{
		"listing_id": event.ListingID,
		"kind":       string(event.Kind),
	})
	return nil
}
