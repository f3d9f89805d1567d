package config

import "os"

// BrokerConfig holds RabbitMQ settings for booking events.
type BrokerConfig struct {
	URL             string // empty disables the broker; notifications run in-process
	Queue           string // durable queue carrying booking.created events
	ConsumerEnabled bool   // run the notification consumer inside this process
	AuditLogPath    string // rotated audit trail written by the consumer
}

// LoadBrokerConfig reads RABBITMQ_URL (or AMQP_URL) and friends.  Unlike
// the other loaders there is no default URL: without one the service runs
// without a broker.
func LoadBrokerConfig() BrokerConfig {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		url = os.Getenv("AMQP_URL")
	}
	return BrokerConfig{
		URL:             url,
		Queue:           envStr("BOOKING_EVENTS_QUEUE", "booking.created"),
		ConsumerEnabled: envBool("NOTIFY_CONSUMER_ENABLED", true),
		AuditLogPath:    envStr("BOOKING_AUDIT_LOG", "logs/booking.log"),
	}
}
