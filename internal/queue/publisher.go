package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends reservation events to RabbitMQ.  The broker URL is
// injected at construction; nothing here reads process-wide state.
// Publish errors are logged and returned so callers can ignore them
// without interrupting the request flow.
type Publisher struct {
	url string
}

// NewPublisher returns a Publisher for the given broker URL.
func NewPublisher(url string) *Publisher { return &Publisher{url: url} }

// PublishConfirmed sends a ReservationEvent to the confirmed queue.
func (p *Publisher) PublishConfirmed(ctx context.Context, ev ReservationEvent) error {
	return p.publish(ctx, ReservationConfirmedQueue, ev)
}

// PublishCancelled sends a ReservationEvent to the cancelled queue.
func (p *Publisher) PublishCancelled(ctx context.Context, ev ReservationEvent) error {
	return p.publish(ctx, ReservationCancelledQueue, ev)
}

// publish dials the broker, declares the durable queue and sends one
// persistent JSON message on the default exchange.
func (p *Publisher) publish(ctx context.Context, queueName string, ev ReservationEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish to %s failed: %v", queueName, err)
		return err
	}
	return nil
}
