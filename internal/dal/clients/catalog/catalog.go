package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/micromart/orders/internal/service/apperr"
	"github.com/micromart/orders/internal/service/models/product"
	"github.com/spf13/viper"
)

// rpcCaller is the request/reply transport the client publishes over.
type rpcCaller interface {
	Call(ctx context.Context, queue string, body []byte) ([]byte, error)
}

// Client is a synchronous-looking façade over the async validate_products
// call of the product-catalog service.
type Client struct {
	rpc     rpcCaller
	queue   string
	timeout time.Duration
}

// NewClient creates a new catalog client.
func NewClient(rpc rpcCaller) *Client {
	queue := viper.GetString("rabbitmq.catalog_queue")
	if queue == "" {
		queue = "catalog.validate_products"
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

type validateReply struct {
	Status   int               `json:"status"`
	Message  string            `json:"message"`
	Products []product.Product `json:"products"`
}

// Validate resolves product identifiers to price/name records. The reply is
// not required to cover every requested identifier; the caller must check
// coverage itself.
func (c *Client) Validate(ctx context.Context, productIDs []int64) ([]product.Product, error) {
	body, err := json.Marshal(productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal validate request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	replyBody, err := c.rpc.Call(ctx, c.queue, body)
	if err != nil {
		return nil, fmt.Errorf("catalog validate call failed: %w", err)
	}

	var reply validateReply
	if err := json.Unmarshal(replyBody, &reply); err != nil {
		return nil, fmt.Errorf("failed to unmarshal validate reply: %w", err)
	}

	if reply.Status != 0 {
		return nil, apperr.New(reply.Status, "%s", reply.Message)
	}

	return reply.Products, nil
}
