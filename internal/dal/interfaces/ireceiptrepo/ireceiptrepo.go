package ireceiptrepo

import (
	"context"

	"github.com/micromart/orders/internal/service/models/receipt"
)

// IReceiptRepository is an interface for the receipt postgres repository.
type IReceiptRepository interface {
	// Upsert stores the receipt of an order. A repeated payment confirmation
	// replaces the receipt URL instead of creating a second row.
	Upsert(ctx context.Context, r receipt.Receipt) error
}
