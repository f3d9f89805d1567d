package queue

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/storage-booking/internal/utils"
)

// Publisher sends booking events to RabbitMQ.  It dials per publish;
// booking volume is low and a broken connection never outlives one call.
type Publisher struct {
    url   string
    queue string
}

// NewPublisher returns nil when url is empty so callers can fall back to
// in-process dispatch.
func NewPublisher(url, queue string) *Publisher {
    if url == "" {
        return nil
    }
    return &Publisher{url: url, queue: queue}
}

// PublishBookingCreated publishes ev as a persistent JSON message on the
// durable booking queue.  Errors are logged and returned so the caller can
// choose to ignore them.
func (p *Publisher) PublishBookingCreated(ctx context.Context, ev BookingCreatedEvent) error {
    conn, err := amqp.Dial(p.url)
    if err != nil {
        utils.Logger.WithError(err).Warn("rabbitmq: dial failed")
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        utils.Logger.WithError(err).Warn("rabbitmq: channel open failed")
        return err
    }
    defer func() { _ = ch.Close() }()

    // Idempotent. Durable so messages survive broker restarts.
    if err := declare(ch, p.queue); err != nil {
        utils.Logger.WithError(err).Warn("rabbitmq: queue declare failed")
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        MessageId:    ev.BookingID,
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx,
        "",      // default exchange
        p.queue, // routing key = queue name
        false,   // mandatory
        false,   // immediate
        pub,
    ); err != nil {
        utils.Logger.WithError(err).Warn("rabbitmq: publish failed")
        return err
    }
    return nil
}

func declare(ch *amqp.Channel, name string) error {
    _, err := ch.QueueDeclare(
        name,
        true,  // durable
        false, // autoDelete
        false, // exclusive
        false, // noWait
        nil,
    )
    return err
}
