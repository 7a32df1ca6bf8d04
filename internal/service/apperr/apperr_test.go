package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestFromPreservesStatusThroughWrapping(t *testing.T) {
	err := fmt.Errorf("lookup failed: %w", OrderNotFound("o1"))

	appErr := From(err)
	if appErr.Status != 404 {
		t.Fatalf("expected 404, got %d", appErr.Status)
	}
	if appErr.Message != "order with id o1 not found" {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}
}

func TestFromDefaultsToBadRequest(t *testing.T) {
	appErr := From(errors.New("something broke"))

	if appErr.Status != 400 {
		t.Fatalf("expected default 400, got %d", appErr.Status)
	}
	if appErr.Message != "something broke" {
		t.Fatalf("expected raw error text as message, got %q", appErr.Message)
	}
}

func TestProductsNotFoundListsIdentifiers(t *testing.T) {
	err := ProductsNotFound([]int64{3, 42})

	if err.Status != 400 {
		t.Fatalf("expected 400, got %d", err.Status)
	}
	if err.Message != "products not found in catalog: [3 42]" {
		t.Fatalf("unexpected message: %q", err.Message)
	}
}
