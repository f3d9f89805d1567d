package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/storage-booking/internal/utils"
)

// Consumer listens on the booking queue, hands every event to a
// BookingHandler and appends a one-line audit entry for it.
type Consumer struct {
    url     string
    queue   string
    handler BookingHandler
    audit   io.Writer
}

// NewConsumer builds a consumer.  audit may be nil.
func NewConsumer(url, queue string, handler BookingHandler, audit io.Writer) *Consumer {
    if audit == nil {
        audit = io.Discard
    }
    return &Consumer{url: url, queue: queue, handler: handler, audit: audit}
}

// Run connects, consumes and reconnects with backoff until ctx is
// cancelled.  It returns ctx.Err() on shutdown.
func (c *Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(c.url)
        if err != nil {
            utils.Logger.WithError(err).Warnf("booking-consumer: failed to dial broker; retrying in %s", backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        err = c.consumeLoop(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        utils.Logger.WithError(err).Warn("booking-consumer: consume loop ended; reconnecting")
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        utils.Logger.WithError(err).Warn("booking-consumer: set QoS failed")
    }
    if err := declare(ch, c.queue); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := c.handleMessage(ctx, d.Body); err != nil {
                utils.Logger.WithError(err).Warn("booking-consumer: handle message failed")
                _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// handleMessage decodes one delivery, writes the audit line and runs the
// handler.  Handler errors are logged but still ack the message: a
// notification that failed once is not retried.
func (c *Consumer) handleMessage(ctx context.Context, body []byte) error {
    var ev BookingCreatedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.BookingID == "" {
        return errors.New("event has no booking_id")
    }

    line := fmt.Sprintf("[%s] Booking created | booking_id=%s | unit=%q | physical_unit_id=%s | customer=%q | email=%s | period=%s | total=%.2f\n",
        ev.CreatedAt, ev.BookingID, ev.UnitName, ev.PhysicalUnitID, ev.CustomerName, ev.CustomerEmail, ev.PricingPeriod, ev.TotalPrice)
    if _, err := io.WriteString(c.audit, line); err != nil {
        return fmt.Errorf("write audit log: %w", err)
    }

    if c.handler != nil {
        if err := c.handler.HandleBookingCreated(ctx, ev); err != nil {
            utils.Logger.WithError(err).WithField("booking_id", ev.BookingID).Warn("booking-consumer: notification failed")
        }
    }
    return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
