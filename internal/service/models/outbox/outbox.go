package outbox

import (
	"time"
)

// Message is an order lifecycle event staged in the outbox table until the
// outbox worker publishes it to RabbitMQ.
type Message struct {
	ID           int64
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}
