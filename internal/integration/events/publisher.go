// Package events publishes plan change events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/finance-tracker/planner/internal/application/adapter"
	"github.com/finance-tracker/planner/internal/integration/persistence/model"
)

const publishTimeout = 5 * time.Second

// PlanChangedMessage is the JSON body of a plan change event.
type PlanChangedMessage struct {
	Kind       string              `json:"kind"`
	Scope      string              `json:"scope"`
	PlanID     string              `json:"planId"`
	Plan       *model.PlanDocument `json:"plan,omitempty"`
	OccurredAt time.Time           `json:"occurredAt"`
}

// NewPlanChangedMessage builds the message for a change.
func NewPlanChangedMessage(change adapter.PlanChange) PlanChangedMessage {
	msg := PlanChangedMessage{
		Kind:       string(change.Kind),
		Scope:      change.Scope,
		PlanID:     change.PlanID,
		OccurredAt: change.OccurredAt,
	}
	if change.Plan != nil {
		msg.Plan = model.PlanDocumentFromEntity(change.Plan)
	}
	return msg
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher sends plan change events to a topic exchange, routed by change kind.
type Publisher struct {
	conn     *amqp091.Connection
	channel  channel
	exchange string
}

// NewPublisher dials the broker and declares the exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
	}, nil
}

func newPublisherWithChannel(ch channel, exchange string) *Publisher {
	return &Publisher{channel: ch, exchange: exchange}
}

// PlanChanged publishes the change. It implements adapter.PlanChangeNotifier.
func (p *Publisher) PlanChanged(ctx context.Context, change adapter.PlanChange) error {
	body, err := json.Marshal(NewPlanChangedMessage(change))
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,          // exchange
		string(change.Kind), // routing key
		false,               // mandatory
		false,               // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    change.OccurredAt,
			MessageId:    change.PlanID + "@" + change.OccurredAt.Format(time.RFC3339Nano),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	slog.DebugContext(ctx, "Published plan change",
		"kind", change.Kind,
		"scope", change.Scope,
		"plan_id", change.PlanID,
		"exchange", p.exchange)

	return nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
