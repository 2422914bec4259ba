// Package service holds the outbound integrations used by the handlers.
// Failures here are logged and returned, and callers are free to ignore
// them: a lost notification never fails the request that caused it.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/flavor-house/internal/queue"
)

// DialTimeout caps connecting to the broker, handshake included. A shorter
// deadline on the publish context wins.
const DialTimeout = 3 * time.Second

// ReservationEvents announces newly submitted reservations.
type ReservationEvents interface {
	PublishReservationCreated(ctx context.Context, ev queue.ReservationCreatedEvent) error
}

// RabbitPublisher publishes persistent JSON messages to the
// reservation.created queue, dialing per message.
type RabbitPublisher struct {
	url string
	log *slog.Logger
}

func NewRabbitPublisher(url string, log *slog.Logger) *RabbitPublisher {
	if log == nil {
		log = slog.Default()
	}
	return &RabbitPublisher{url: url, log: log.With("queue", queue.ReservationCreatedQueue)}
}

func (p *RabbitPublisher) PublishReservationCreated(ctx context.Context, ev queue.ReservationCreatedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	timeout := DialTimeout
	if dl, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(dl))
	}
	if timeout <= 0 {
		return context.DeadlineExceeded
	}
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		p.log.Warn("rabbitmq dial failed", "err", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("rabbitmq channel open failed", "err", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue.ReservationCreatedQueue, true, false, false, false, nil); err != nil {
		p.log.Warn("rabbitmq queue declare failed", "err", err)
		return err
	}
	err = ch.PublishWithContext(ctx, "", queue.ReservationCreatedQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    ev.ReservationID,
		Body:         body,
	})
	if err != nil {
		p.log.Warn("rabbitmq publish failed", "reservation_id", ev.ReservationID, "err", err)
	}
	return err
}

// LogPublisher stands in when no broker is configured; it only logs.
type LogPublisher struct{ Log *slog.Logger }

func (p LogPublisher) PublishReservationCreated(_ context.Context, ev queue.ReservationCreatedEvent) error {
	log := p.Log
	if log == nil {
		log = slog.Default()
	}
	log.Info("reservation created", "reservation_id", ev.ReservationID, "date", ev.Date, "time", ev.Time, "guests", ev.Guests)
	return nil
}
