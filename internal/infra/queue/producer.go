package queue

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/usecase"
)

// publisher é o pedaço do *amqp.Channel usado pelo producer.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch  publisher
	Now func() time.Time
}

func NewProducer(ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch, Now: time.Now}
}

func (p *RabbitMQProducer) PublishIntake(ctx context.Context, input usecase.IntakeLeadInput, correlationID string) error {
	return p.publish(ctx, RoutingIntake, entity.EventLeadIntake, input, correlationID)
}

func (p *RabbitMQProducer) PublishStatusChanged(ctx context.Context, evt entity.LeadStatusChanged) error {
	return p.publish(ctx, RoutingStatusChanged, entity.EventLeadStatusChanged, evt, "")
}

func (p *RabbitMQProducer) PublishSale(ctx context.Context, evt entity.LeadSale) error {
	return p.publish(ctx, RoutingSale, entity.EventLeadSale, evt, "")
}

func (p *RabbitMQProducer) publish(ctx context.Context, routingKey, eventType string, data any, correlationID string) error {
	body, meta, err := NewEnvelope(eventType, data, correlationID, p.Now())
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		routingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    meta.ID,
			Type:         eventType,
			Timestamp:    meta.Time,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}
