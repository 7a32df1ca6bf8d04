package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/micromart/orders/internal/service/apperr"
)

type stubRPC struct {
	gotQueue string
	gotBody  []byte
	reply    []byte
	err      error
}

func (s *stubRPC) Call(_ context.Context, queue string, body []byte) ([]byte, error) {
	s.gotQueue = queue
	s.gotBody = body

	return s.reply, s.err
}

func TestValidateSendsIDsAndDecodesProducts(t *testing.T) {
	rpc := &stubRPC{reply: []byte(`{"products":[{"id":1,"name":"Widget","priceCents":10}]}`)}
	client := NewClient(rpc)

	products, err := client.Validate(context.Background(), []int64{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rpc.gotQueue != "catalog.validate_products" {
		t.Fatalf("unexpected queue: %s", rpc.gotQueue)
	}

	var sent []int64
	if err := json.Unmarshal(rpc.gotBody, &sent); err != nil {
		t.Fatalf("request body is not an id list: %v", err)
	}
	if len(sent) != 2 || sent[0] != 1 || sent[1] != 2 {
		t.Fatalf("unexpected ids sent: %v", sent)
	}

	if len(products) != 1 || products[0].Name != "Widget" || products[0].PriceCents != 10 {
		t.Fatalf("unexpected products: %+v", products)
	}
}

func TestValidateRemoteErrorEnvelope(t *testing.T) {
	rpc := &stubRPC{reply: []byte(`{"status":404,"message":"products not found"}`)}
	client := NewClient(rpc)

	_, err := client.Validate(context.Background(), []int64{42})
	if err == nil {
		t.Fatal("expected error from remote envelope")
	}

	appErr := apperr.From(err)
	if appErr.Status != 404 || appErr.Message != "products not found" {
		t.Fatalf("unexpected app error: %+v", appErr)
	}
}

func TestValidateTransportError(t *testing.T) {
	transportErr := errors.New("rpc timed out")
	client := NewClient(&stubRPC{err: transportErr})

	_, err := client.Validate(context.Background(), []int64{1})
	if !errors.Is(err, transportErr) {
		t.Fatalf("expected transport error wrapped, got %v", err)
	}
}
