package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Mailer is the outbound-mail dependency of the consumer.  Implemented
// by notification.Mailer; kept as an interface so the consumer can be
// exercised without an SMTP server.
type Mailer interface {
	SendConfirmation(ev ReservationEvent) error
	SendCancellation(ev ReservationEvent) error
}

// StartMailConsumer connects to RabbitMQ and consumes both reservation
// queues, handing each event to the mailer.  It runs a reconnect loop
// with exponential backoff and never returns under normal operation;
// processing errors are logged and the message is rejected without
// requeue so a poison message cannot wedge the queue.
func StartMailConsumer(url string, mailer Mailer) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("mail-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, mailer); err != nil {
			log.Printf("mail-consumer: consume loop ended: %v; reconnecting", err)
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, mailer Mailer) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		log.Printf("mail-consumer: set QoS failed: %v", err)
	}

	for _, name := range []string{ReservationConfirmedQueue, ReservationCancelledQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
	}

	confirmed, err := ch.Consume(ReservationConfirmedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", ReservationConfirmedQueue, err)
	}
	cancelled, err := ch.Consume(ReservationCancelledQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", ReservationCancelledQueue, err)
	}

	for {
		select {
		case d, ok := <-confirmed:
			if !ok {
				return errors.New("confirmed deliveries channel closed")
			}
			handle(d, mailer.SendConfirmation)
		case d, ok := <-cancelled:
			if !ok {
				return errors.New("cancelled deliveries channel closed")
			}
			handle(d, mailer.SendCancellation)
		}
	}
}

func handle(d amqp.Delivery, send func(ReservationEvent) error) {
	var ev ReservationEvent
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		log.Printf("mail-consumer: unmarshal failed: %v", err)
		_ = d.Nack(false, false) // reject, do not requeue
		return
	}
	if err := send(ev); err != nil {
		log.Printf("mail-consumer: send for reservation %d failed: %v", ev.ReservationID, err)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}
