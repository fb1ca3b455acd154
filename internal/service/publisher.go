// Package service publishes domain events to RabbitMQ.  Errors are logged
// and returned so the caller can ignore them without interrupting the
// request that produced the event.
package service

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/iliyamo/coach-seat-reservation/internal/queue"
)

// BookingPublisher sends booking.confirmed events to the broker at URL.
type BookingPublisher struct {
    URL string
}

// NewBookingPublisher targets the broker configured in the environment.
func NewBookingPublisher() *BookingPublisher {
    return &BookingPublisher{URL: q.BrokerURL()}
}

// PublishBookingConfirmed publishes a persistent message to the
// booking.confirmed queue, declaring the queue first (durable, idempotent).
// A connection is opened per call; bookings are rare enough for that.
func (p *BookingPublisher) PublishBookingConfirmed(ctx context.Context, event q.BookingConfirmedEvent) error {
    conn, err := amqp.Dial(p.URL)
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

    if _, err := ch.QueueDeclare(
        q.BookingQueueName, // name
        true,               // durable
        false,              // autoDelete
        false,              // exclusive
        false,              // noWait
        nil,                // args
    ); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    event.Reference,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", q.BookingQueueName, false, false, pub); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }
    return nil
}
