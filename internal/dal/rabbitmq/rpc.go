package rabbitmq

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// RPC implements request/reply over AMQP: requests are published to a named
// queue with a correlation ID and a reply-to queue, replies are matched back
// to the waiting caller by correlation ID. Cancelling the context abandons
// the call; a late reply for an abandoned call is dropped.
type RPC struct {
	channel    *amqp.Channel
	replyQueue string

	mu      sync.Mutex
	pending map[string]chan amqp.Delivery
}

// NewRPC opens a dedicated channel with an exclusive reply queue and starts
// dispatching replies.
func NewRPC(client *Client) (*RPC, error) {
	channel, err := client.Connection().Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open rpc channel: %w", err)
	}

	queue, err := channel.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to declare reply queue: %w", err)
	}

	deliveries, err := channel.Consume(queue.Name, "", true, true, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to consume reply queue: %w", err)
	}

	r := &RPC{
		channel:    channel,
		replyQueue: queue.Name,
		pending:    make(map[string]chan amqp.Delivery),
	}

	go r.dispatch(deliveries)

	return r, nil
}

func (r *RPC) dispatch(deliveries <-chan amqp.Delivery) {
	for msg := range deliveries {
		r.mu.Lock()
		ch, ok := r.pending[msg.CorrelationId]
		if ok {
			delete(r.pending, msg.CorrelationId)
		}
		r.mu.Unlock()

		if ok {
			ch <- msg
		}
	}
}

// Call publishes a request to the given queue and waits for the reply.
func (r *RPC) Call(ctx context.Context, queue string, body []byte) ([]byte, error) {
	correlationID := uuid.NewString()

	replyCh := make(chan amqp.Delivery, 1)
	r.mu.Lock()
	r.pending[correlationID] = replyCh
	r.mu.Unlock()

	err := r.channel.Publish("", queue, false, false, amqp.Publishing{
		ContentType:   "application/json",
		CorrelationId: correlationID,
		ReplyTo:       r.replyQueue,
		Body:          body,
	})
	if err != nil {
		r.mu.Lock()
		delete(r.pending, correlationID)
		r.mu.Unlock()

		return nil, fmt.Errorf("failed to publish rpc request: %w", err)
	}

	select {
	case <-ctx.Done():
		r.mu.Lock()
		delete(r.pending, correlationID)
		r.mu.Unlock()

		return nil, ctx.Err()
	case msg := <-replyCh:
		return msg.Body, nil
	}
}

// Close closes the rpc channel.
func (r *RPC) Close() error {
	return r.channel.Close()
}
