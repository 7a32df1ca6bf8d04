package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/micromart/orders/internal/dal/postgres"
	"github.com/micromart/orders/internal/service/models/receipt"
)

// PostgresReceiptRepository represents a Postgres receipt repository.
type PostgresReceiptRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresReceiptRepository creates a new Postgres receipt repository.
func NewPostgresReceiptRepository(conn postgres.GenericConn) *PostgresReceiptRepository {
	return &PostgresReceiptRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Upsert stores the receipt of an order. order_id is the primary key, so a
// repeated payment confirmation replaces the URL instead of adding a row.
func (r *PostgresReceiptRepository) Upsert(ctx context.Context, rec receipt.Receipt) error {
	sql, args, err := r.sb.
		Insert("order_receipts").
		Columns("order_id", "receipt_url", "created_at", "updated_at").
		Values(rec.OrderID, rec.ReceiptURL, rec.CreatedAt, rec.UpdatedAt).
		Suffix("ON CONFLICT (order_id) DO UPDATE SET receipt_url = EXCLUDED.receipt_url, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to upsert receipt: %w", err)
	}

	return nil
}
