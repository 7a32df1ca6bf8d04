package postgresrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	"github.com/micromart/orders/internal/service/models/order"
)

const selectColumns = "SELECT id, status, total_items, total_amount_cents, paid, paid_at, stripe_charge_id, created_at, updated_at FROM orders"

func newMockRepo(t *testing.T) (*PostgresOrderRepository, pgxmockv3.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmockv3.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	return NewPostgresOrderRepository(mock), mock
}

func orderRows() *pgxmockv3.Rows {
	return pgxmockv3.NewRows([]string{
		"id", "status", "total_items", "total_amount_cents", "paid",
		"paid_at", "stripe_charge_id", "created_at", "updated_at",
	})
}

func TestInsertReturnsStoredOrder(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(orderRows().AddRow("o1", "PENDING", 2, int64(20), false, nil, nil, now, now))

	ord, err := repo.Insert(context.Background(), order.Order{
		ID:               "o1",
		Status:           order.StatusPending,
		TotalItems:       2,
		TotalAmountCents: 20,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ord.ID != "o1" || ord.Status != order.StatusPending || ord.TotalAmountCents != 20 {
		t.Fatalf("unexpected order: %+v", ord)
	}
	if ord.PaidAt != nil || ord.StripeChargeID != nil {
		t.Fatalf("expected unpaid order, got %+v", ord)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	paidAt := now.Add(-time.Hour)

	mock.ExpectQuery(selectColumns+" WHERE id =").
		WithArgs("o1").
		WillReturnRows(orderRows().AddRow("o1", "PAID", 1, int64(500), true, paidAt, "ch_123", now, now))

	ord, err := repo.GetByID(context.Background(), "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ord.Paid || ord.PaidAt == nil || !ord.PaidAt.Equal(paidAt) {
		t.Fatalf("expected paid fields scanned, got %+v", ord)
	}
	if ord.StripeChargeID == nil || *ord.StripeChargeID != "ch_123" {
		t.Fatalf("expected charge id ch_123, got %v", ord.StripeChargeID)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(selectColumns+" WHERE id =").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestQueryFiltersByStatus(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()
	status := order.StatusConfirmed

	mock.ExpectQuery(selectColumns+" WHERE status =").
		WithArgs(status).
		WillReturnRows(orderRows().
			AddRow("o2", "CONFIRMED", 1, int64(100), false, nil, nil, now, now).
			AddRow("o1", "CONFIRMED", 3, int64(300), false, nil, nil, now.Add(-time.Minute), now))

	orders, err := repo.Query(context.Background(), &order.QueryOrdersModel{Status: &status})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != "o2" || orders[1].ID != "o1" {
		t.Fatalf("expected rows in query order, got %+v", orders)
	}
}

func TestQueryEmptyResultIsEmptySlice(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(selectColumns).WillReturnRows(orderRows())

	orders, err := repo.Query(context.Background(), &order.QueryOrdersModel{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders == nil || len(orders) != 0 {
		t.Fatalf("expected empty slice, got %#v", orders)
	}
}

func TestCount(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT count").
		WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(int64(5)))

	total, err := repo.Count(context.Background(), &order.QueryOrdersModel{Limit: 2, Offset: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected count 5, got %d", total)
	}
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery("UPDATE orders SET status =").
		WithArgs(order.StatusDelivered, pgxmockv3.AnyArg(), "o1").
		WillReturnRows(orderRows().AddRow("o1", "DELIVERED", 1, int64(100), false, nil, nil, now, now))

	ord, err := repo.UpdateStatus(context.Background(), "o1", order.StatusDelivered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ord.Status != order.StatusDelivered {
		t.Fatalf("expected DELIVERED, got %s", ord.Status)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("UPDATE orders SET status =").
		WithArgs(order.StatusDelivered, pgxmockv3.AnyArg(), "missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.UpdateStatus(context.Background(), "missing", order.StatusDelivered)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMarkPaid(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery("UPDATE orders SET status =").
		WithArgs(order.StatusPaid, true, now, "ch_123", pgxmockv3.AnyArg(), "o1").
		WillReturnRows(orderRows().AddRow("o1", "PAID", 1, int64(100), true, now, "ch_123", now, now))

	ord, err := repo.MarkPaid(context.Background(), "o1", "ch_123", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ord.Status != order.StatusPaid || !ord.Paid {
		t.Fatalf("expected paid order, got %+v", ord)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
