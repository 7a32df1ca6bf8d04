package paymentsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/micromart/orders/internal/service/apperr"
	"github.com/micromart/orders/internal/service/models/payment"
	"github.com/spf13/viper"
)

// rpcCaller is the request/reply transport the client publishes over.
type rpcCaller interface {
	Call(ctx context.Context, queue string, body []byte) ([]byte, error)
}

// Client is a façade over the async checkout-session creation call of the
// payment service.
type Client struct {
	rpc     rpcCaller
	queue   string
	timeout time.Duration
}

// NewClient creates a new payment client.
func NewClient(rpc rpcCaller) *Client {
	queue := viper.GetString("rabbitmq.payment_queue")
	if queue == "" {
		queue = "payment.create_session"
	}

	timeoutSeconds := viper.GetInt("rabbitmq.rpc_timeout_seconds")
	if timeoutSeconds == 0 {
		timeoutSeconds = 5
	}

	return &Client{
		rpc:     rpc,
		queue:   queue,
		timeout: time.Duration(timeoutSeconds) * time.Second,
	}
}

type sessionReply struct {
	Status     int    `json:"status"`
	Message    string `json:"message"`
	URL        string `json:"url"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

// CreateSession creates a payment checkout session for an order. Line items
// are forwarded verbatim; no amount is recomputed locally.
func (c *Client) CreateSession(ctx context.Context, req payment.SessionRequest) (*payment.Session, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	replyBody, err := c.rpc.Call(ctx, c.queue, body)
	if err != nil {
		return nil, fmt.Errorf("payment session call failed: %w", err)
	}

	var reply sessionReply
	if err := json.Unmarshal(replyBody, &reply); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session reply: %w", err)
	}

	if reply.Status != 0 {
		return nil, apperr.New(reply.Status, "%s", reply.Message)
	}

	return &payment.Session{
		URL:        reply.URL,
		SuccessURL: reply.SuccessURL,
		CancelURL:  reply.CancelURL,
	}, nil
}
